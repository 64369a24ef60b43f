package progression

import (
	"context"
	"fmt"
	"strings"

	"soulledger/internal/domain/soul"

	"go.opentelemetry.io/otel/attribute"
)

// GrantXP applies backend-verified XP and auxiliary counters. It bypasses the
// activation gate and does not touch the stage or the mirror.
func (u UseCase) GrantXP(ctx context.Context, req GrantXPRequest) (out GrantXPResponse, err error) {
	ctx, span := tracer.Start(ctx, "progression.GrantXP")
	span.SetAttributes(attribute.String("asset.id", req.AssetID))
	defer func() { u.finish(span, opGrantXP, err) }()

	req.AssetID = strings.TrimSpace(req.AssetID)
	if req.AssetID == "" {
		return GrantXPResponse{}, ErrInvalidRequest
	}
	amount := req.XP
	var action soul.Action
	if strings.TrimSpace(req.Action) != "" {
		if action, err = soul.ParseAction(req.Action); err != nil {
			return GrantXPResponse{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		amount = soul.SaturatingAdd64(amount, action.Reward())
	}
	if err := u.Registry.AuthorizeBackend(strings.TrimSpace(req.Caller)); err != nil {
		return GrantXPResponse{}, err
	}

	now := u.now()
	var ledger soul.StatLedger
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		l, err := u.Souls.GetForUpdate(txCtx, req.AssetID)
		if err != nil {
			return fmt.Errorf("soul %s: %w", req.AssetID, err)
		}
		l.ApplyGrant(amount, req.Deltas)
		expected := l.Touch(now)
		if err := u.Souls.SaveWithVersion(txCtx, l, expected); err != nil {
			return err
		}
		if u.Journal != nil {
			payload := map[string]any{
				"xp_amount":  amount,
				"xp_after":   l.XP,
				"granted_by": req.Caller,
			}
			if action != "" {
				payload["action"] = string(action)
			}
			if req.Deltas.TradingVolume != nil {
				payload["trading_volume_delta"] = *req.Deltas.TradingVolume
			}
			if req.Deltas.QuestsCompleted != nil {
				payload["quests_completed_delta"] = *req.Deltas.QuestsCompleted
			}
			entry := u.journal(req.AssetID, soul.JournalXPGranted, now, payload)
			if err := u.Journal.Append(txCtx, []soul.JournalEntry{entry}); err != nil {
				return err
			}
		}
		ledger = l
		return nil
	})
	if err != nil {
		return GrantXPResponse{}, err
	}

	return GrantXPResponse{
		AssetID:         ledger.AssetID,
		XP:              ledger.XP,
		QuestsCompleted: ledger.QuestsCompleted,
		TradingVolume:   ledger.TradingVolume,
	}, nil
}
