package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"soulledger/internal/domain/soul"
)

func TestUseCase_ReconstructsLatestFromEntries(t *testing.T) {
	repo := fakeRepo{entries: []soul.JournalEntry{
		{Type: soul.JournalSoulEvolved, OccurredAt: time.Unix(30, 0), Payload: map[string]any{"stage_after": float64(1), "xp": float64(150)}},
		{Type: soul.JournalQuestCompleted, OccurredAt: time.Unix(20, 0), Payload: map[string]any{"xp_after": float64(150)}},
		{Type: soul.JournalXPGranted, OccurredAt: time.Unix(10, 0), Payload: map[string]any{"xp_after": uint64(100)}},
	}}

	out, err := UseCase{Journal: repo}.Execute(context.Background(), Request{AssetID: "asset-1", Limit: 10})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(out.Entries))
	}
	if out.Latest.XP != 150 || out.Latest.Stage != soul.StageActive {
		t.Fatalf("unexpected snapshot: %+v", out.Latest)
	}
}

func TestUseCase_FiltersWindowBeforeLimit(t *testing.T) {
	repo := fakeRepo{entries: []soul.JournalEntry{
		{ID: "e4", OccurredAt: time.Unix(40, 0)},
		{ID: "e3", OccurredAt: time.Unix(30, 0)},
		{ID: "e2", OccurredAt: time.Unix(20, 0)},
		{ID: "e1", OccurredAt: time.Unix(10, 0)},
	}}

	out, err := UseCase{Journal: repo}.Execute(context.Background(), Request{AssetID: "asset-1", Limit: 1, OccurredFrom: 10, OccurredTo: 25})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Entries) != 1 || out.Entries[0].ID != "e2" {
		t.Fatalf("unexpected entries: %+v", out.Entries)
	}
}

func TestUseCase_RejectsBadRequests(t *testing.T) {
	uc := UseCase{Journal: fakeRepo{}}
	for _, req := range []Request{
		{},
		{AssetID: "asset-1", Limit: -1},
		{AssetID: "asset-1", OccurredFrom: 50, OccurredTo: 10},
	} {
		if _, err := uc.Execute(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("req=%+v: expected ErrInvalidRequest, got %v", req, err)
		}
	}
}

func TestUseCase_EmptyJournalIsNotAnError(t *testing.T) {
	out, err := UseCase{Journal: fakeRepo{}}.Execute(context.Background(), Request{AssetID: "asset-1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Entries) != 0 {
		t.Fatalf("expected no entries")
	}
}

type fakeRepo struct {
	entries []soul.JournalEntry
}

func (r fakeRepo) Append(_ context.Context, _ []soul.JournalEntry) error {
	return nil
}

func (r fakeRepo) ListByAssetID(_ context.Context, _ string, limit int) ([]soul.JournalEntry, error) {
	if limit > 0 && limit < len(r.entries) {
		return r.entries[:limit], nil
	}
	return r.entries, nil
}
