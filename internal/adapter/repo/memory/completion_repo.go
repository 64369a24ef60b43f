package memory

import (
	"context"
	"sort"

	"soulledger/internal/app/ports"
	"soulledger/internal/domain/soul"
)

type CompletionRepo struct {
	store *Store
}

func NewCompletionRepo(store *Store) CompletionRepo {
	return CompletionRepo{store: store}
}

func (r CompletionRepo) InsertIfAbsent(ctx context.Context, record soul.CompletionRecord) error {
	return r.store.do(ctx, func(tx *txState) error {
		k := completionKey(record.Quest, record.AssetID)
		if _, exists := r.store.completions[k]; exists {
			return ports.ErrConflict
		}
		r.store.completions[k] = record
		tx.onRollback(func() { delete(r.store.completions, k) })
		return nil
	})
}

func (r CompletionRepo) Get(ctx context.Context, quest soul.QuestKey, assetID string) (soul.CompletionRecord, error) {
	var out soul.CompletionRecord
	err := r.store.do(ctx, func(_ *txState) error {
		rec, ok := r.store.completions[completionKey(quest, assetID)]
		if !ok {
			return ports.ErrNotFound
		}
		out = rec
		return nil
	})
	return out, err
}

func (r CompletionRepo) ListByAssetID(ctx context.Context, assetID string) ([]soul.CompletionRecord, error) {
	out := []soul.CompletionRecord{}
	err := r.store.do(ctx, func(_ *txState) error {
		for _, rec := range r.store.completions {
			if rec.AssetID == assetID {
				out = append(out, rec)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CompletedAt.Equal(out[j].CompletedAt) {
			return out[i].CompletedAt.Before(out[j].CompletedAt)
		}
		return out[i].Quest.String() < out[j].Quest.String()
	})
	return out, err
}
