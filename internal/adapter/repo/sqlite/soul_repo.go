package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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
	row := r.store.q(ctx).QueryRowContext(ctx,
		`SELECT asset_id, xp, quests_completed, trading_volume, stage, version, updated_at
		   FROM souls
		  WHERE asset_id = ?`,
		assetID,
	)
	var (
		l         soul.StatLedger
		xp        string
		volume    string
		quests    int64
		stage     int64
		updatedAt int64
	)
	if err := row.Scan(&l.AssetID, &xp, &quests, &volume, &stage, &l.Version, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return soul.StatLedger{}, ports.ErrNotFound
		}
		return soul.StatLedger{}, fmt.Errorf("get soul: %w", err)
	}
	var err error
	if l.XP, err = parseUint("xp", xp); err != nil {
		return soul.StatLedger{}, err
	}
	if l.TradingVolume, err = parseUint("trading_volume", volume); err != nil {
		return soul.StatLedger{}, err
	}
	l.QuestsCompleted = uint32(quests)
	l.Stage = soul.Stage(stage)
	l.UpdatedAt = fromMillis(updatedAt)
	return l, nil
}

// GetForUpdate is a plain read: the store runs on a single connection, so
// the surrounding transaction already excludes other writers.
func (r SoulRepo) GetForUpdate(ctx context.Context, assetID string) (soul.StatLedger, error) {
	return r.GetByAssetID(ctx, assetID)
}

func (r SoulRepo) SaveWithVersion(ctx context.Context, l soul.StatLedger, expectedVersion int64) error {
	q := r.store.q(ctx)
	if expectedVersion == 0 {
		_, err := q.ExecContext(ctx,
			`INSERT INTO souls (asset_id, xp, quests_completed, trading_volume, stage, version, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			l.AssetID, formatUint(l.XP), int64(l.QuestsCompleted), formatUint(l.TradingVolume),
			int64(l.Stage), l.Version, toMillis(l.UpdatedAt),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return ports.ErrConflict
			}
			return fmt.Errorf("create soul: %w", err)
		}
		return nil
	}

	res, err := q.ExecContext(ctx,
		`UPDATE souls
		    SET xp = ?, quests_completed = ?, trading_volume = ?, stage = ?, version = ?, updated_at = ?
		  WHERE asset_id = ? AND version = ?`,
		formatUint(l.XP), int64(l.QuestsCompleted), formatUint(l.TradingVolume),
		int64(l.Stage), l.Version, toMillis(l.UpdatedAt),
		l.AssetID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("update soul: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update soul: %w", err)
	}
	if n == 0 {
		return ports.ErrConflict
	}
	return nil
}
