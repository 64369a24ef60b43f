package memory

import (
	"context"
	"sync"

	"soulledger/internal/app/ports"
	"soulledger/internal/domain/catalog"
	"soulledger/internal/domain/soul"
)

type Store struct {
	mu          sync.Mutex
	souls       map[string]soul.StatLedger
	completions map[string]soul.CompletionRecord
	events      map[string]catalog.Event
	quests      map[string]catalog.Quest
	wallets     map[string]soul.WalletLink
	journal     map[string][]soul.JournalEntry
	credentials map[string]ports.PrincipalCredentialRecord
}

func NewStore() *Store {
	return &Store{
		souls:       make(map[string]soul.StatLedger),
		completions: make(map[string]soul.CompletionRecord),
		events:      make(map[string]catalog.Event),
		quests:      make(map[string]catalog.Quest),
		wallets:     make(map[string]soul.WalletLink),
		journal:     make(map[string][]soul.JournalEntry),
		credentials: make(map[string]ports.PrincipalCredentialRecord),
	}
}

func questKey(event, name string) string {
	return event + "\x00" + name
}

func completionKey(quest soul.QuestKey, assetID string) string {
	return quest.Event + "\x00" + quest.Name + "\x00" + assetID
}

// txState collects undo steps for the transaction running on the store.
type txState struct {
	undo []func()
}

func (t *txState) onRollback(fn func()) {
	if t == nil {
		return
	}
	t.undo = append(t.undo, fn)
}

func (t *txState) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

type txKeyType struct{}

var txKey = txKeyType{}

// do runs fn with the store locked. Inside RunInTx the lock is already held
// and fn joins the running transaction.
func (s *Store) do(ctx context.Context, fn func(tx *txState) error) error {
	if tx, ok := ctx.Value(txKey).(*txState); ok && tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(nil)
}

func (s *Store) SeedSoul(ledger soul.StatLedger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.souls[ledger.AssetID] = ledger
}
