package memory

import (
	"context"

	"soulledger/internal/domain/soul"
)

type JournalRepo struct {
	store *Store
}

func NewJournalRepo(store *Store) JournalRepo {
	return JournalRepo{store: store}
}

func (r JournalRepo) Append(ctx context.Context, entries []soul.JournalEntry) error {
	return r.store.do(ctx, func(tx *txState) error {
		for _, e := range entries {
			assetID := e.AssetID
			prevLen := len(r.store.journal[assetID])
			r.store.journal[assetID] = append(r.store.journal[assetID], e)
			tx.onRollback(func() { r.store.journal[assetID] = r.store.journal[assetID][:prevLen] })
		}
		return nil
	})
}

// ListByAssetID returns entries newest first.
func (r JournalRepo) ListByAssetID(ctx context.Context, assetID string, limit int) ([]soul.JournalEntry, error) {
	out := []soul.JournalEntry{}
	err := r.store.do(ctx, func(_ *txState) error {
		entries := r.store.journal[assetID]
		for i := len(entries) - 1; i >= 0; i-- {
			if limit > 0 && len(out) >= limit {
				break
			}
			out = append(out, entries[i])
		}
		return nil
	})
	return out, err
}
