package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"soulledger/internal/adapter/repo/gorm/model"
	"soulledger/internal/domain/soul"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JournalRepo struct {
	db *gorm.DB
}

func NewJournalRepo(db *gorm.DB) JournalRepo {
	return JournalRepo{db: db}
}

func (r JournalRepo) Append(ctx context.Context, entries []soul.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]model.JournalEntry, 0, len(entries))
	for _, e := range entries {
		b, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("encode journal payload %s: %w", e.Type, err)
		}
		rows = append(rows, model.JournalEntry{
			EntryID:    e.ID,
			AssetID:    e.AssetID,
			Type:       e.Type,
			OccurredAt: e.OccurredAt,
			Payload:    datatypes.JSON(b),
		})
	}
	return getDBFromCtx(ctx, r.db).WithContext(ctx).Create(&rows).Error
}

// ListByAssetID returns entries newest first. An asset without entries
// yields an empty slice.
func (r JournalRepo) ListByAssetID(ctx context.Context, assetID string, limit int) ([]soul.JournalEntry, error) {
	rows := []model.JournalEntry{}
	query := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where(&model.JournalEntry{AssetID: assetID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "occurred_at"}, Desc: true},
				{Column: clause.Column{Name: "seq"}, Desc: true},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]soul.JournalEntry, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			if err := json.Unmarshal(row.Payload, &payload); err != nil {
				return nil, fmt.Errorf("decode journal payload %s: %w", row.EntryID, err)
			}
		}
		out = append(out, soul.JournalEntry{
			ID:         row.EntryID,
			AssetID:    row.AssetID,
			Type:       row.Type,
			OccurredAt: row.OccurredAt,
			Payload:    payload,
		})
	}
	return out, nil
}
