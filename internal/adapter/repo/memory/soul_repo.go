package memory

import (
	"context"

	"soulledger/internal/app/ports"
	"soulledger/internal/domain/soul"
)

type SoulRepo struct {
	store *Store
}

func NewSoulRepo(store *Store) SoulRepo {
	return SoulRepo{store: store}
}

func (r SoulRepo) GetByAssetID(ctx context.Context, assetID string) (soul.StatLedger, error) {
	var out soul.StatLedger
	err := r.store.do(ctx, func(_ *txState) error {
		l, ok := r.store.souls[assetID]
		if !ok {
			return ports.ErrNotFound
		}
		out = l
		return nil
	})
	return out, err
}

// GetForUpdate is a plain read: the store lock held by the transaction
// already excludes every other writer.
func (r SoulRepo) GetForUpdate(ctx context.Context, assetID string) (soul.StatLedger, error) {
	return r.GetByAssetID(ctx, assetID)
}

func (r SoulRepo) SaveWithVersion(ctx context.Context, ledger soul.StatLedger, expectedVersion int64) error {
	return r.store.do(ctx, func(tx *txState) error {
		current, ok := r.store.souls[ledger.AssetID]
		if !ok {
			if expectedVersion != 0 {
				return ports.ErrConflict
			}
			r.store.souls[ledger.AssetID] = ledger
			tx.onRollback(func() { delete(r.store.souls, ledger.AssetID) })
			return nil
		}
		if expectedVersion == 0 || current.Version != expectedVersion {
			return ports.ErrConflict
		}
		r.store.souls[ledger.AssetID] = ledger
		tx.onRollback(func() { r.store.souls[ledger.AssetID] = current })
		return nil
	})
}
