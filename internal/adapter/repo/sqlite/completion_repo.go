package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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
	_, err := r.store.q(ctx).ExecContext(ctx,
		`INSERT INTO completion_records (event_name, quest_name, asset_id, completed_at) VALUES (?, ?, ?, ?)`,
		record.Quest.Event, record.Quest.Name, record.AssetID, toMillis(record.CompletedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return fmt.Errorf("insert completion: %w", err)
	}
	return nil
}

func (r CompletionRepo) Get(ctx context.Context, quest soul.QuestKey, assetID string) (soul.CompletionRecord, error) {
	var completedAt int64
	err := r.store.q(ctx).QueryRowContext(ctx,
		`SELECT completed_at FROM completion_records WHERE event_name = ? AND quest_name = ? AND asset_id = ?`,
		quest.Event, quest.Name, assetID,
	).Scan(&completedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return soul.CompletionRecord{}, ports.ErrNotFound
		}
		return soul.CompletionRecord{}, fmt.Errorf("get completion: %w", err)
	}
	return soul.CompletionRecord{Quest: quest, AssetID: assetID, CompletedAt: fromMillis(completedAt)}, nil
}

func (r CompletionRepo) ListByAssetID(ctx context.Context, assetID string) ([]soul.CompletionRecord, error) {
	rows, err := r.store.q(ctx).QueryContext(ctx,
		`SELECT event_name, quest_name, completed_at
		   FROM completion_records
		  WHERE asset_id = ?
		  ORDER BY completed_at ASC, event_name ASC, quest_name ASC`,
		assetID,
	)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	out := []soul.CompletionRecord{}
	for rows.Next() {
		rec := soul.CompletionRecord{AssetID: assetID}
		var completedAt int64
		if err := rows.Scan(&rec.Quest.Event, &rec.Quest.Name, &completedAt); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		rec.CompletedAt = fromMillis(completedAt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completions: %w", err)
	}
	return out, nil
}
