package sqliterepo

import (
	"context"
	"encoding/json"
	"fmt"

	"soulledger/internal/domain/soul"
)

type JournalRepo struct {
	store *Store
}

func NewJournalRepo(store *Store) JournalRepo {
	return JournalRepo{store: store}
}

func (r JournalRepo) Append(ctx context.Context, entries []soul.JournalEntry) error {
	q := r.store.q(ctx)
	for _, e := range entries {
		payload, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("encode journal payload %s: %w", e.Type, err)
		}
		if _, err := q.ExecContext(ctx,
			`INSERT INTO journal_entries (entry_id, asset_id, type, occurred_at, payload) VALUES (?, ?, ?, ?, ?)`,
			e.ID, e.AssetID, e.Type, toMillis(e.OccurredAt), string(payload),
		); err != nil {
			return fmt.Errorf("append journal entry: %w", err)
		}
	}
	return nil
}

func (r JournalRepo) ListByAssetID(ctx context.Context, assetID string, limit int) ([]soul.JournalEntry, error) {
	query := `SELECT entry_id, type, occurred_at, payload
	            FROM journal_entries
	           WHERE asset_id = ?
	           ORDER BY occurred_at DESC, seq DESC`
	args := []any{assetID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.store.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	defer rows.Close()

	out := []soul.JournalEntry{}
	for rows.Next() {
		e := soul.JournalEntry{AssetID: assetID}
		var (
			occurredAt int64
			payload    string
		)
		if err := rows.Scan(&e.ID, &e.Type, &occurredAt, &payload); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		if payload != "" && payload != "null" {
			if err := json.Unmarshal([]byte(payload), &e.Payload); err != nil {
				return nil, fmt.Errorf("decode journal payload %s: %w", e.ID, err)
			}
		}
		e.OccurredAt = fromMillis(occurredAt)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return out, nil
}
