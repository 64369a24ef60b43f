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

type WalletLinkRepo struct {
	db *gorm.DB
}

func NewWalletLinkRepo(db *gorm.DB) WalletLinkRepo {
	return WalletLinkRepo{db: db}
}

func (r WalletLinkRepo) Upsert(ctx context.Context, link soul.WalletLink) error {
	m := model.WalletLink{
		AssetID:  link.AssetID,
		Wallet:   link.Wallet,
		LinkedBy: link.LinkedBy,
		LinkedAt: link.LinkedAt,
	}
	return getDBFromCtx(ctx, r.db).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "asset_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"wallet", "linked_by", "linked_at"}),
		}).
		Create(&m).Error
}

func (r WalletLinkRepo) GetByAssetID(ctx context.Context, assetID string) (soul.WalletLink, error) {
	var m model.WalletLink
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).Where("asset_id = ?", assetID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return soul.WalletLink{}, ports.ErrNotFound
		}
		return soul.WalletLink{}, err
	}
	return soul.WalletLink{
		AssetID:  m.AssetID,
		Wallet:   m.Wallet,
		LinkedBy: m.LinkedBy,
		LinkedAt: m.LinkedAt,
	}, nil
}
