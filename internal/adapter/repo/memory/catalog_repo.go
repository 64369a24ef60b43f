package memory

import (
	"context"

	"soulledger/internal/app/ports"
	"soulledger/internal/domain/catalog"
)

type CatalogRepo struct {
	store *Store
}

func NewCatalogRepo(store *Store) CatalogRepo {
	return CatalogRepo{store: store}
}

func (r CatalogRepo) CreateEvent(ctx context.Context, event catalog.Event) error {
	return r.store.do(ctx, func(tx *txState) error {
		if _, exists := r.store.events[event.Name]; exists {
			return ports.ErrConflict
		}
		r.store.events[event.Name] = event
		tx.onRollback(func() { delete(r.store.events, event.Name) })
		return nil
	})
}

func (r CatalogRepo) GetEvent(ctx context.Context, name string) (catalog.Event, error) {
	var out catalog.Event
	err := r.store.do(ctx, func(_ *txState) error {
		e, ok := r.store.events[name]
		if !ok {
			return ports.ErrNotFound
		}
		out = e
		return nil
	})
	return out, err
}

func (r CatalogRepo) SetEventActive(ctx context.Context, name string, active bool) error {
	return r.store.do(ctx, func(tx *txState) error {
		e, ok := r.store.events[name]
		if !ok {
			return ports.ErrNotFound
		}
		prev := e
		e.Active = active
		r.store.events[name] = e
		tx.onRollback(func() { r.store.events[name] = prev })
		return nil
	})
}

func (r CatalogRepo) CreateQuest(ctx context.Context, quest catalog.Quest) error {
	return r.store.do(ctx, func(tx *txState) error {
		if _, ok := r.store.events[quest.Event]; !ok {
			return ports.ErrNotFound
		}
		k := questKey(quest.Event, quest.Name)
		if _, exists := r.store.quests[k]; exists {
			return ports.ErrConflict
		}
		r.store.quests[k] = quest
		tx.onRollback(func() { delete(r.store.quests, k) })
		return nil
	})
}

func (r CatalogRepo) GetQuest(ctx context.Context, event, name string) (catalog.Quest, error) {
	var out catalog.Quest
	err := r.store.do(ctx, func(_ *txState) error {
		q, ok := r.store.quests[questKey(event, name)]
		if !ok {
			return ports.ErrNotFound
		}
		out = q
		return nil
	})
	return out, err
}
