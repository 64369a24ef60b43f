package pass

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"soulledger/internal/app/authority"
	"soulledger/internal/app/mirroring"
	"soulledger/internal/app/ownership"
	"soulledger/internal/app/ports"
	"soulledger/internal/domain/catalog"
	"soulledger/internal/domain/soul"

	"github.com/google/uuid"
)

var (
	ErrInvalidRequest     = errors.New("invalid pass request")
	ErrInvalidInviteCode  = errors.New("invalid invite code")
	ErrEventInactive      = errors.New("event is not active")
	ErrAlreadyInitialized = errors.New("soul already initialized for asset")
)

// UseCase covers the pass lifecycle around the ledger: creating the dormant
// soul for a freshly issued asset and linking a holder wallet to it.
type UseCase struct {
	TxManager   ports.TxManager
	Souls       ports.SoulRepository
	Catalog     ports.CatalogRepository
	Wallets     ports.WalletLinkRepository
	Journal     ports.JournalRepository
	Registry    authority.Registry
	Owners      ownership.Verifier
	Publisher   mirroring.Publisher
	InviteCodes []string
	Now         func() time.Time
}

func (u UseCase) Initialize(ctx context.Context, req InitializeRequest) (InitializeResponse, error) {
	req.AssetID = strings.TrimSpace(req.AssetID)
	req.Owner = strings.TrimSpace(req.Owner)
	if req.AssetID == "" || req.Owner == "" {
		return InitializeResponse{}, ErrInvalidRequest
	}
	eventName, err := catalog.NormalizeName(req.Event)
	if err != nil {
		return InitializeResponse{}, ErrInvalidRequest
	}
	if err := u.Registry.AuthorizeBackend(strings.TrimSpace(req.Caller)); err != nil {
		return InitializeResponse{}, err
	}
	if !u.inviteAccepted(req.InviteCode) {
		return InitializeResponse{}, ErrInvalidInviteCode
	}
	event, err := u.Catalog.GetEvent(ctx, eventName)
	if err != nil {
		return InitializeResponse{}, fmt.Errorf("event %s: %w", eventName, err)
	}
	if !event.Active {
		return InitializeResponse{}, ErrEventInactive
	}
	if err := u.Owners.Verify(ctx, req.AssetID, req.Owner); err != nil {
		return InitializeResponse{}, err
	}

	now := u.now()
	ledger := soul.NewLedger(req.AssetID, now)
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.Souls.SaveWithVersion(txCtx, ledger, 0); err != nil {
			if errors.Is(err, ports.ErrConflict) {
				return ErrAlreadyInitialized
			}
			return err
		}
		return u.appendJournal(txCtx, req.AssetID, soul.JournalSoulInitialized, now, map[string]any{
			"owner":     req.Owner,
			"event":     eventName,
			"issued_by": req.Caller,
		})
	})
	if err != nil {
		return InitializeResponse{}, err
	}

	warning := u.Publisher.Publish(ctx, req.AssetID, soul.InitialAttributes())
	return InitializeResponse{
		AssetID:       req.AssetID,
		Owner:         req.Owner,
		Event:         eventName,
		Stage:         ledger.Stage,
		Status:        ledger.Stage.Label(),
		InitializedAt: now,
		MirrorWarning: warning,
	}, nil
}

// LinkWallet records the holder's wallet for an asset. Only the current
// owner may link, and relinking replaces the previous wallet.
func (u UseCase) LinkWallet(ctx context.Context, req LinkWalletRequest) (LinkWalletResponse, error) {
	req.Caller = strings.TrimSpace(req.Caller)
	req.AssetID = strings.TrimSpace(req.AssetID)
	req.Wallet = strings.TrimSpace(req.Wallet)
	if req.AssetID == "" || req.Wallet == "" {
		return LinkWalletResponse{}, ErrInvalidRequest
	}
	owner, err := u.Owners.Owner(ctx, req.AssetID)
	if err != nil {
		return LinkWalletResponse{}, err
	}
	if err := u.Registry.AuthorizeHolder(req.Caller, owner); err != nil {
		return LinkWalletResponse{}, err
	}

	now := u.now()
	link := soul.WalletLink{
		AssetID:  req.AssetID,
		Wallet:   req.Wallet,
		LinkedBy: req.Caller,
		LinkedAt: now,
	}
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := u.Souls.GetForUpdate(txCtx, req.AssetID); err != nil {
			return fmt.Errorf("soul %s: %w", req.AssetID, err)
		}
		if err := u.Wallets.Upsert(txCtx, link); err != nil {
			return err
		}
		return u.appendJournal(txCtx, req.AssetID, soul.JournalWalletLinked, now, map[string]any{
			"wallet":    req.Wallet,
			"linked_by": req.Caller,
		})
	})
	if err != nil {
		return LinkWalletResponse{}, err
	}
	return LinkWalletResponse{Link: link}, nil
}

func (u UseCase) inviteAccepted(code string) bool {
	if len(u.InviteCodes) == 0 {
		return true
	}
	code = strings.TrimSpace(code)
	for _, c := range u.InviteCodes {
		if c == code {
			return true
		}
	}
	return false
}

func (u UseCase) appendJournal(ctx context.Context, assetID, typ string, at time.Time, payload map[string]any) error {
	if u.Journal == nil {
		return nil
	}
	return u.Journal.Append(ctx, []soul.JournalEntry{{
		ID:         uuid.NewString(),
		AssetID:    assetID,
		Type:       typ,
		OccurredAt: at,
		Payload:    payload,
	}})
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now().UTC()
	}
	return u.Now().UTC()
}
