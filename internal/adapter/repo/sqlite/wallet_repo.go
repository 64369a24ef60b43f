package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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
	_, err := r.store.q(ctx).ExecContext(ctx,
		`INSERT INTO wallet_links (asset_id, wallet, linked_by, linked_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(asset_id) DO UPDATE SET
		   wallet = excluded.wallet,
		   linked_by = excluded.linked_by,
		   linked_at = excluded.linked_at`,
		link.AssetID, link.Wallet, link.LinkedBy, toMillis(link.LinkedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert wallet link: %w", err)
	}
	return nil
}

func (r WalletLinkRepo) GetByAssetID(ctx context.Context, assetID string) (soul.WalletLink, error) {
	var (
		l        soul.WalletLink
		linkedAt int64
	)
	err := r.store.q(ctx).QueryRowContext(ctx,
		`SELECT asset_id, wallet, linked_by, linked_at FROM wallet_links WHERE asset_id = ?`, assetID,
	).Scan(&l.AssetID, &l.Wallet, &l.LinkedBy, &linkedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return soul.WalletLink{}, ports.ErrNotFound
		}
		return soul.WalletLink{}, fmt.Errorf("get wallet link: %w", err)
	}
	l.LinkedAt = fromMillis(linkedAt)
	return l, nil
}
