package progression

import (
	"context"
	"sync"
	"testing"
	"time"

	mirrormem "soulledger/internal/adapter/mirror/memory"
	oraclemem "soulledger/internal/adapter/oracle/memory"
	"soulledger/internal/adapter/repo/memory"
	"soulledger/internal/app/authority"
	"soulledger/internal/app/mirroring"
	"soulledger/internal/app/ownership"
	"soulledger/internal/domain/catalog"
	"soulledger/internal/domain/soul"
)

const (
	testScanner = "scanner-1"
	testBackend = "svc-backend"
	testHolder  = "holder-1"
	testAsset   = "asset-1"
	testEvent   = "solstice"
	testQuest   = "main-stage"
)

type harness struct {
	uc          UseCase
	store       *memory.Store
	souls       memory.SoulRepo
	completions memory.CompletionRepo
	catalog     memory.CatalogRepo
	journal     memory.JournalRepo
	oracle      *oraclemem.Oracle
	mirror      *mirrormem.Mirror
	metrics     *stubMetrics
}

type stubMetrics struct {
	mu        sync.Mutex
	success   map[string]int
	duplicate int
	rejected  map[string]int
	failure   int
	mirror    int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{success: map[string]int{}, rejected: map[string]int{}}
}

func (m *stubMetrics) RecordSuccess(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.success[op]++
}

func (m *stubMetrics) RecordDuplicate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duplicate++
}

func (m *stubMetrics) RecordRejected(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[op]++
}

func (m *stubMetrics) RecordFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure++
}

func (m *stubMetrics) RecordMirrorFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mirror++
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memory.NewStore()
	h := &harness{
		store:       store,
		souls:       memory.NewSoulRepo(store),
		completions: memory.NewCompletionRepo(store),
		catalog:     memory.NewCatalogRepo(store),
		journal:     memory.NewJournalRepo(store),
		oracle:      oraclemem.NewOracle(),
		mirror:      mirrormem.NewMirror(),
		metrics:     newStubMetrics(),
	}
	now := func() time.Time { return time.Unix(1700000000, 0) }
	h.uc = UseCase{
		TxManager:   memory.NewTxManager(store),
		Souls:       h.souls,
		Completions: h.completions,
		Catalog:     h.catalog,
		Journal:     h.journal,
		Registry:    authority.NewRegistry([]string{testBackend}),
		Owners:      ownership.Verifier{Oracle: h.oracle},
		Publisher:   mirroring.Publisher{Mirror: h.mirror, Journal: h.journal, Metrics: h.metrics, Now: now},
		Metrics:     h.metrics,
		Now:         now,
	}

	ctx := context.Background()
	if err := h.catalog.CreateEvent(ctx, catalog.Event{Name: testEvent, Authority: testScanner, Active: true}); err != nil {
		t.Fatalf("seed event: %v", err)
	}
	if err := h.catalog.CreateQuest(ctx, catalog.Quest{Event: testEvent, Name: testQuest, XPReward: 50}); err != nil {
		t.Fatalf("seed quest: %v", err)
	}
	h.oracle.SetOwner(testAsset, testHolder)
	return h
}

func (h *harness) seedSoul(t *testing.T, assetID string, xp uint64, stage soul.Stage) {
	t.Helper()
	l := soul.NewLedger(assetID, time.Unix(1690000000, 0))
	l.XP = xp
	l.Stage = stage
	if err := h.souls.SaveWithVersion(context.Background(), l, 0); err != nil {
		t.Fatalf("seed soul: %v", err)
	}
}

func (h *harness) ledger(t *testing.T, assetID string) soul.StatLedger {
	t.Helper()
	l, err := h.souls.GetByAssetID(context.Background(), assetID)
	if err != nil {
		t.Fatalf("get soul: %v", err)
	}
	return l
}

func completeReq() CompleteQuestRequest {
	return CompleteQuestRequest{
		Caller:    testScanner,
		Quest:     soul.QuestKey{Event: testEvent, Name: testQuest},
		AssetID:   testAsset,
		Recipient: testHolder,
	}
}

func questFixture(name string, xp uint64) catalog.Quest {
	return catalog.Quest{Event: testEvent, Name: name, XPReward: xp}
}
