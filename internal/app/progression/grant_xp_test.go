package progression

import (
	"context"
	"errors"
	"math"
	"testing"

	"soulledger/internal/app/authority"
	"soulledger/internal/domain/soul"
)

func TestGrantXP_RequiresBackendPrincipal(t *testing.T) {
	h := newHarness(t)
	h.seedSoul(t, testAsset, 0, soul.StageDormant)

	for _, caller := range []string{"", testScanner, testHolder} {
		_, err := h.uc.GrantXP(context.Background(), GrantXPRequest{Caller: caller, AssetID: testAsset, XP: 10})
		if !errors.Is(err, authority.ErrUnauthorized) {
			t.Fatalf("caller=%q: expected ErrUnauthorized, got %v", caller, err)
		}
	}
	if l := h.ledger(t, testAsset); l.XP != 0 {
		t.Fatalf("unauthorized grant mutated ledger: %+v", l)
	}
}

func TestGrantXP_BypassesActivationGateAndSkipsMirror(t *testing.T) {
	h := newHarness(t)
	h.seedSoul(t, testAsset, 0, soul.StageDormant)
	vol := uint64(4200)
	quests := uint32(1)

	out, err := h.uc.GrantXP(context.Background(), GrantXPRequest{
		Caller:  testBackend,
		AssetID: testAsset,
		XP:      40,
		Deltas:  soul.GrantDeltas{TradingVolume: &vol, QuestsCompleted: &quests},
	})
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if out.XP != 40 || out.TradingVolume != 4200 || out.QuestsCompleted != 1 {
		t.Fatalf("unexpected response: %+v", out)
	}
	l := h.ledger(t, testAsset)
	if l.Stage != soul.StageDormant {
		t.Fatalf("grant changed stage: %+v", l)
	}
	if h.mirror.Calls() != 0 {
		t.Fatalf("grant must not touch the mirror")
	}
}

func TestGrantXP_SaturatesNearMaximum(t *testing.T) {
	h := newHarness(t)
	h.seedSoul(t, testAsset, math.MaxUint64-5, soul.StageActive)

	prev := uint64(math.MaxUint64 - 5)
	for i := 0; i < 3; i++ {
		out, err := h.uc.GrantXP(context.Background(), GrantXPRequest{Caller: testBackend, AssetID: testAsset, XP: 4})
		if err != nil {
			t.Fatalf("grant %d: %v", i, err)
		}
		if out.XP < prev {
			t.Fatalf("xp decreased: %d -> %d", prev, out.XP)
		}
		prev = out.XP
	}
	if prev != math.MaxUint64 {
		t.Fatalf("expected saturation, got %d", prev)
	}
}

func TestGrantXP_ActionAddsTableReward(t *testing.T) {
	h := newHarness(t)
	h.seedSoul(t, testAsset, 0, soul.StageDormant)
	ctx := context.Background()

	out, err := h.uc.GrantXP(ctx, GrantXPRequest{Caller: testBackend, AssetID: testAsset, Action: "mint"})
	if err != nil {
		t.Fatalf("grant mint: %v", err)
	}
	if out.XP != 50 {
		t.Fatalf("mint xp got=%d want=50", out.XP)
	}
	out, err = h.uc.GrantXP(ctx, GrantXPRequest{Caller: testBackend, AssetID: testAsset, XP: 3, Action: "SWAP"})
	if err != nil {
		t.Fatalf("grant swap: %v", err)
	}
	if out.XP != 63 {
		t.Fatalf("swap xp got=%d want=63", out.XP)
	}

	entries, err := h.journal.ListByAssetID(ctx, testAsset, 1)
	if err != nil {
		t.Fatalf("journal: %v", err)
	}
	if len(entries) != 1 || entries[0].Payload["action"] != "SWAP" {
		t.Fatalf("expected action in journal payload, got %+v", entries)
	}
}

func TestGrantXP_UnknownActionRejected(t *testing.T) {
	h := newHarness(t)
	h.seedSoul(t, testAsset, 0, soul.StageDormant)

	_, err := h.uc.GrantXP(context.Background(), GrantXPRequest{Caller: testBackend, AssetID: testAsset, XP: 10, Action: "bridge"})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if l := h.ledger(t, testAsset); l.XP != 0 {
		t.Fatalf("rejected grant mutated ledger: %+v", l)
	}
}
