package memory

import (
	"context"

	"soulledger/internal/app/ports"
	"soulledger/internal/domain/soul"
)

type WalletLinkRepo struct {
	store *Store
}

func NewWalletLinkRepo(store *Store) WalletLinkRepo {
	return WalletLinkRepo{store: store}
}

func (r WalletLinkRepo) Upsert(ctx context.Context, link soul.WalletLink) error {
	return r.store.do(ctx, func(tx *txState) error {
		prev, existed := r.store.wallets[link.AssetID]
		r.store.wallets[link.AssetID] = link
		tx.onRollback(func() {
			if existed {
				r.store.wallets[link.AssetID] = prev
				return
			}
			delete(r.store.wallets, link.AssetID)
		})
		return nil
	})
}

func (r WalletLinkRepo) GetByAssetID(ctx context.Context, assetID string) (soul.WalletLink, error) {
	var out soul.WalletLink
	err := r.store.do(ctx, func(_ *txState) error {
		l, ok := r.store.wallets[assetID]
		if !ok {
			return ports.ErrNotFound
		}
		out = l
		return nil
	})
	return out, err
}
