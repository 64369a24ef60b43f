package ports

import (
	"context"
	"errors"
	"time"

	"soulledger/internal/domain/catalog"
	"soulledger/internal/domain/soul"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// TxManager runs fn in one storage transaction carried by the ctx passed to
// it. Repositories called with that ctx join the transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type SoulRepository interface {
	GetByAssetID(ctx context.Context, assetID string) (soul.StatLedger, error)
	// GetForUpdate reads the ledger and holds it for the surrounding
	// transaction so operations on one asset serialize.
	GetForUpdate(ctx context.Context, assetID string) (soul.StatLedger, error)
	// SaveWithVersion creates the row when expectedVersion is 0, otherwise
	// updates it only if the stored version still equals expectedVersion.
	SaveWithVersion(ctx context.Context, ledger soul.StatLedger, expectedVersion int64) error
}

type CompletionRepository interface {
	// InsertIfAbsent returns ErrConflict when the (quest, asset) key exists.
	InsertIfAbsent(ctx context.Context, record soul.CompletionRecord) error
	Get(ctx context.Context, quest soul.QuestKey, assetID string) (soul.CompletionRecord, error)
	ListByAssetID(ctx context.Context, assetID string) ([]soul.CompletionRecord, error)
}

type CatalogRepository interface {
	CreateEvent(ctx context.Context, event catalog.Event) error
	GetEvent(ctx context.Context, name string) (catalog.Event, error)
	SetEventActive(ctx context.Context, name string, active bool) error
	CreateQuest(ctx context.Context, quest catalog.Quest) error
	GetQuest(ctx context.Context, event, name string) (catalog.Quest, error)
}

type WalletLinkRepository interface {
	Upsert(ctx context.Context, link soul.WalletLink) error
	GetByAssetID(ctx context.Context, assetID string) (soul.WalletLink, error)
}

type JournalRepository interface {
	Append(ctx context.Context, entries []soul.JournalEntry) error
	ListByAssetID(ctx context.Context, assetID string, limit int) ([]soul.JournalEntry, error)
}

type PrincipalCredentialRecord struct {
	PrincipalID string
	KeySalt     []byte
	KeyHash     []byte
	Status      string
	CreatedAt   time.Time
}

type PrincipalCredentialRepository interface {
	Create(ctx context.Context, credential PrincipalCredentialRecord) error
	GetByPrincipalID(ctx context.Context, principalID string) (PrincipalCredentialRecord, error)
}
