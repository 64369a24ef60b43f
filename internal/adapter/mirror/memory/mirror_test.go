package memory

import (
	"context"
	"errors"
	"testing"
)

func TestMirror_LastWriteWinsPerKey(t *testing.T) {
	m := NewMirror()
	ctx := context.Background()
	if err := m.UpdateAttributes(ctx, "asset-1", map[string]string{"xp": "10", "aura": "red"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := m.UpdateAttributes(ctx, "asset-1", map[string]string{"xp": "20"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got := m.Attributes("asset-1")
	if got["xp"] != "20" || got["aura"] != "red" {
		t.Fatalf("unexpected attributes: %+v", got)
	}

	m.FailWith(errors.New("down"))
	if err := m.UpdateAttributes(ctx, "asset-1", map[string]string{"xp": "30"}); err == nil {
		t.Fatalf("expected failure")
	}
	if m.Attributes("asset-1")["xp"] != "20" {
		t.Fatalf("failed update must not apply")
	}
	if m.Calls() != 3 {
		t.Fatalf("calls=%d", m.Calls())
	}
}

func TestMirror_DropsOlderLedgerVersion(t *testing.T) {
	m := NewMirror()
	ctx := context.Background()
	if err := m.UpdateAttributes(ctx, "asset-1", map[string]string{"xp": "150", "ledger_version": "3"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := m.UpdateAttributes(ctx, "asset-1", map[string]string{"xp": "100", "ledger_version": "2"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := m.Attributes("asset-1"); got["xp"] != "150" || got["ledger_version"] != "3" {
		t.Fatalf("stale update applied: %+v", got)
	}
}
