package progression

import (
	"errors"
	"time"

	"soulledger/internal/app/authority"
	"soulledger/internal/app/mirroring"
	"soulledger/internal/app/ownership"
	"soulledger/internal/app/ports"
	"soulledger/internal/domain/asset"
	"soulledger/internal/domain/soul"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrInvalidRequest      = errors.New("invalid progression request")
	ErrEventInactive       = errors.New("event is not active")
	ErrNotActivated        = errors.New("soul is dormant and cannot earn quest xp")
	ErrDuplicateCompletion = errors.New("quest already completed for this asset")
)

const (
	opCompleteQuest = "complete_quest"
	opEvolve        = "evolve"
	opGrantXP       = "grant_xp"
)

var tracer = otel.Tracer("soulledger/internal/app/progression")

// UseCase is the completion and grant engine. Every ledger mutation runs in
// one transaction; mirror updates run after commit.
type UseCase struct {
	TxManager   ports.TxManager
	Souls       ports.SoulRepository
	Completions ports.CompletionRepository
	Catalog     ports.CatalogRepository
	Journal     ports.JournalRepository
	Registry    authority.Registry
	Owners      ownership.Verifier
	Publisher   mirroring.Publisher
	Metrics     ports.LedgerMetrics
	Now         func() time.Time
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now().UTC()
	}
	return u.Now().UTC()
}

func (u UseCase) journal(assetID, typ string, at time.Time, payload map[string]any) soul.JournalEntry {
	return soul.JournalEntry{
		ID:         uuid.NewString(),
		AssetID:    assetID,
		Type:       typ,
		OccurredAt: at,
		Payload:    payload,
	}
}

func (u UseCase) finish(span trace.Span, op string, err error) {
	defer span.End()
	if err == nil {
		if u.Metrics != nil {
			u.Metrics.RecordSuccess(op)
		}
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if u.Metrics == nil {
		return
	}
	switch {
	case errors.Is(err, ErrDuplicateCompletion):
		u.Metrics.RecordDuplicate()
	case isRejection(err):
		u.Metrics.RecordRejected(op)
	default:
		u.Metrics.RecordFailure()
	}
}

func isRejection(err error) bool {
	for _, target := range []error{
		ErrInvalidRequest,
		ErrEventInactive,
		ErrNotActivated,
		authority.ErrUnauthorized,
		ownership.ErrOwnershipMismatch,
		asset.ErrMalformedAssetData,
		soul.ErrInvalidStage,
		soul.ErrNotEnoughXP,
		ports.ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
