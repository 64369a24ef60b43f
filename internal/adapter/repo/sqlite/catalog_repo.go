package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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
	_, err := r.store.q(ctx).ExecContext(ctx,
		`INSERT INTO events (name, authority, active, created_at) VALUES (?, ?, ?, ?)`,
		event.Name, event.Authority, event.Active, toMillis(event.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r CatalogRepo) GetEvent(ctx context.Context, name string) (catalog.Event, error) {
	var (
		e         catalog.Event
		createdAt int64
	)
	err := r.store.q(ctx).QueryRowContext(ctx,
		`SELECT name, authority, active, created_at FROM events WHERE name = ?`, name,
	).Scan(&e.Name, &e.Authority, &e.Active, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Event{}, ports.ErrNotFound
		}
		return catalog.Event{}, fmt.Errorf("get event: %w", err)
	}
	e.CreatedAt = fromMillis(createdAt)
	return e, nil
}

func (r CatalogRepo) SetEventActive(ctx context.Context, name string, active bool) error {
	res, err := r.store.q(ctx).ExecContext(ctx, `UPDATE events SET active = ? WHERE name = ?`, active, name)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if n == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r CatalogRepo) CreateQuest(ctx context.Context, quest catalog.Quest) error {
	if _, err := r.GetEvent(ctx, quest.Event); err != nil {
		return err
	}
	_, err := r.store.q(ctx).ExecContext(ctx,
		`INSERT INTO quests (event_name, name, xp_reward, created_at) VALUES (?, ?, ?, ?)`,
		quest.Event, quest.Name, formatUint(quest.XPReward), toMillis(quest.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return fmt.Errorf("create quest: %w", err)
	}
	return nil
}

func (r CatalogRepo) GetQuest(ctx context.Context, event, name string) (catalog.Quest, error) {
	var (
		q         catalog.Quest
		reward    string
		createdAt int64
	)
	err := r.store.q(ctx).QueryRowContext(ctx,
		`SELECT event_name, name, xp_reward, created_at FROM quests WHERE event_name = ? AND name = ?`,
		event, name,
	).Scan(&q.Event, &q.Name, &reward, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Quest{}, ports.ErrNotFound
		}
		return catalog.Quest{}, fmt.Errorf("get quest: %w", err)
	}
	if q.XPReward, err = parseUint("xp_reward", reward); err != nil {
		return catalog.Quest{}, err
	}
	q.CreatedAt = fromMillis(createdAt)
	return q, nil
}
