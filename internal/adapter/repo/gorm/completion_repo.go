package gormrepo

import (
	"context"
	"errors"

	"soulledger/internal/adapter/repo/gorm/model"
	"soulledger/internal/app/ports"
	"soulledger/internal/domain/soul"

	"gorm.io/gorm"
)

type CompletionRepo struct {
	db *gorm.DB
}

func NewCompletionRepo(db *gorm.DB) CompletionRepo {
	return CompletionRepo{db: db}
}

// InsertIfAbsent relies on the composite primary key. Inside a postgres
// transaction a concurrent insert of the same key blocks until the other
// transaction ends and then fails with a unique violation.
func (r CompletionRepo) InsertIfAbsent(ctx context.Context, record soul.CompletionRecord) error {
	m := model.CompletionRecord{
		EventName:   record.Quest.Event,
		QuestName:   record.Quest.Name,
		AssetID:     record.AssetID,
		CompletedAt: record.CompletedAt,
	}
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r CompletionRepo) Get(ctx context.Context, quest soul.QuestKey, assetID string) (soul.CompletionRecord, error) {
	var m model.CompletionRecord
	err := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where("event_name = ? AND quest_name = ? AND asset_id = ?", quest.Event, quest.Name, assetID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return soul.CompletionRecord{}, ports.ErrNotFound
		}
		return soul.CompletionRecord{}, err
	}
	return toCompletion(m), nil
}

func (r CompletionRepo) ListByAssetID(ctx context.Context, assetID string) ([]soul.CompletionRecord, error) {
	rows := []model.CompletionRecord{}
	err := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where(&model.CompletionRecord{AssetID: assetID}).
		Order("completed_at ASC, event_name ASC, quest_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]soul.CompletionRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCompletion(row))
	}
	return out, nil
}

func toCompletion(m model.CompletionRecord) soul.CompletionRecord {
	return soul.CompletionRecord{
		Quest:       soul.QuestKey{Event: m.EventName, Name: m.QuestName},
		AssetID:     m.AssetID,
		CompletedAt: m.CompletedAt,
	}
}
