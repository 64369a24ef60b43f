package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"soulledger/internal/adapter/repo/memory"
	"soulledger/internal/app/ports"
	"soulledger/internal/domain/soul"
)

func TestUseCase_ReportsLedgerCompletionsAndWallet(t *testing.T) {
	store := memory.NewStore()
	store.SeedSoul(soul.StatLedger{AssetID: "asset-1", XP: 140, Stage: soul.StageActive, Version: 3})
	completions := memory.NewCompletionRepo(store)
	wallets := memory.NewWalletLinkRepo(store)
	ctx := context.Background()
	if err := completions.InsertIfAbsent(ctx, soul.CompletionRecord{
		Quest:       soul.QuestKey{Event: "solstice", Name: "main-stage"},
		AssetID:     "asset-1",
		CompletedAt: time.Unix(1700000000, 0),
	}); err != nil {
		t.Fatalf("seed completion: %v", err)
	}
	if err := wallets.Upsert(ctx, soul.WalletLink{AssetID: "asset-1", Wallet: "w1"}); err != nil {
		t.Fatalf("seed wallet: %v", err)
	}

	uc := UseCase{Souls: memory.NewSoulRepo(store), Completions: completions, Wallets: wallets}
	resp, err := uc.Execute(ctx, Request{AssetID: "asset-1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Status != "Active" || resp.Ledger.XP != 140 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.NextStage == nil || *resp.NextStage != soul.StageAscended || resp.XPToNext != 860 {
		t.Fatalf("unexpected next stage info: next=%v xp_to_next=%d", resp.NextStage, resp.XPToNext)
	}
	if len(resp.Completions) != 1 || resp.Completions[0].Quest.Name != "main-stage" {
		t.Fatalf("unexpected completions: %+v", resp.Completions)
	}
	if resp.Wallet == nil || resp.Wallet.Wallet != "w1" {
		t.Fatalf("unexpected wallet: %+v", resp.Wallet)
	}
}

func TestUseCase_AscendedHasNoNextStage(t *testing.T) {
	store := memory.NewStore()
	store.SeedSoul(soul.StatLedger{AssetID: "asset-1", XP: 5000, Stage: soul.StageAscended, Version: 1})
	uc := UseCase{Souls: memory.NewSoulRepo(store), Wallets: memory.NewWalletLinkRepo(store)}

	resp, err := uc.Execute(context.Background(), Request{AssetID: "asset-1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.NextStage != nil || resp.XPToNext != 0 || resp.Wallet != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUseCase_RejectsEmptyAssetID(t *testing.T) {
	uc := UseCase{}
	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUseCase_UnknownAsset(t *testing.T) {
	uc := UseCase{Souls: memory.NewSoulRepo(memory.NewStore())}
	if _, err := uc.Execute(context.Background(), Request{AssetID: "nope"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
