package gormrepo

import (
	"context"
	"errors"

	"soulledger/internal/adapter/repo/gorm/model"
	"soulledger/internal/app/ports"
	"soulledger/internal/domain/soul"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SoulRepo struct {
	db *gorm.DB
}

func NewSoulRepo(db *gorm.DB) SoulRepo {
	return SoulRepo{db: db}
}

func (r SoulRepo) GetByAssetID(ctx context.Context, assetID string) (soul.StatLedger, error) {
	return r.get(getDBFromCtx(ctx, r.db).WithContext(ctx), assetID)
}

// GetForUpdate takes a row lock held until the surrounding transaction ends.
func (r SoulRepo) GetForUpdate(ctx context.Context, assetID string) (soul.StatLedger, error) {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.get(db, assetID)
}

func (r SoulRepo) get(db *gorm.DB, assetID string) (soul.StatLedger, error) {
	var m model.Soul
	if err := db.Where("asset_id = ?", assetID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return soul.StatLedger{}, ports.ErrNotFound
		}
		return soul.StatLedger{}, err
	}
	return toLedger(m), nil
}

func (r SoulRepo) SaveWithVersion(ctx context.Context, ledger soul.StatLedger, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)
	if expectedVersion == 0 {
		m := fromLedger(ledger)
		if err := db.Create(&m).Error; err != nil {
			if isUniqueViolation(err) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	updates := map[string]any{
		"xp":               ledger.XP,
		"quests_completed": int64(ledger.QuestsCompleted),
		"trading_volume":   ledger.TradingVolume,
		"stage":            int16(ledger.Stage),
		"version":          ledger.Version,
		"updated_at":       ledger.UpdatedAt,
	}
	res := db.Model(&model.Soul{}).
		Where("asset_id = ? AND version = ?", ledger.AssetID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func toLedger(m model.Soul) soul.StatLedger {
	return soul.StatLedger{
		AssetID:         m.AssetID,
		XP:              m.Xp,
		QuestsCompleted: uint32(m.QuestsCompleted),
		TradingVolume:   m.TradingVolume,
		Stage:           soul.Stage(m.Stage),
		Version:         m.Version,
		UpdatedAt:       m.UpdatedAt,
	}
}

func fromLedger(l soul.StatLedger) model.Soul {
	return model.Soul{
		AssetID:         l.AssetID,
		Xp:              l.XP,
		QuestsCompleted: int64(l.QuestsCompleted),
		TradingVolume:   l.TradingVolume,
		Stage:           int16(l.Stage),
		Version:         l.Version,
		UpdatedAt:       l.UpdatedAt,
	}
}
