package history

import (
	"context"
	"errors"
	"strings"

	"soulledger/internal/app/ports"
	"soulledger/internal/domain/soul"
)

var ErrInvalidRequest = errors.New("invalid history request")

const maxLimit = 500

type UseCase struct {
	Journal ports.JournalRepository
}

// Execute lists journal entries newest first. The time window is applied
// before the limit.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.AssetID) == "" || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	if req.OccurredFrom > 0 && req.OccurredTo > 0 && req.OccurredFrom > req.OccurredTo {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit == 0 || limit > maxLimit {
		limit = maxLimit
	}

	fetch := limit
	if req.OccurredFrom > 0 || req.OccurredTo > 0 {
		fetch = 0
	}
	entries, err := u.Journal.ListByAssetID(ctx, req.AssetID, fetch)
	if err != nil {
		return Response{}, err
	}
	entries = filterByTimeWindow(entries, req.OccurredFrom, req.OccurredTo)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return Response{Entries: entries, Latest: reconstruct(entries)}, nil
}

func filterByTimeWindow(entries []soul.JournalEntry, from, to int64) []soul.JournalEntry {
	if from <= 0 && to <= 0 {
		return entries
	}
	out := make([]soul.JournalEntry, 0, len(entries))
	for _, e := range entries {
		ts := e.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, e)
	}
	return out
}

// reconstruct walks entries oldest to newest and keeps the last xp and stage
// each entry type reports.
func reconstruct(entries []soul.JournalEntry) Snapshot {
	var s Snapshot
	for i := len(entries) - 1; i >= 0; i-- {
		p := entries[i].Payload
		switch entries[i].Type {
		case soul.JournalQuestCompleted, soul.JournalXPGranted:
			if v, ok := num(p["xp_after"]); ok {
				s.XP = v
			}
		case soul.JournalSoulEvolved:
			if v, ok := num(p["stage_after"]); ok {
				s.Stage = soul.Stage(v)
			}
			if v, ok := num(p["xp"]); ok {
				s.XP = v
			}
		}
	}
	return s
}

// num accepts the numeric shapes a payload holds in memory and after a JSON
// round trip through storage.
func num(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case uint32:
		return uint64(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case float64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}
