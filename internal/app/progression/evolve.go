package progression

import (
	"context"
	"fmt"
	"strings"

	"soulledger/internal/domain/soul"

	"go.opentelemetry.io/otel/attribute"
)

// Evolve moves an asset to a higher stage when its XP clears the threshold.
// The mirror receives the caller overlay with stage, xp and status forced to
// the ledger's values.
func (u UseCase) Evolve(ctx context.Context, req EvolveRequest) (out EvolveResponse, err error) {
	ctx, span := tracer.Start(ctx, "progression.Evolve")
	span.SetAttributes(
		attribute.String("asset.id", req.AssetID),
		attribute.Int("stage.requested", int(req.Stage)),
	)
	defer func() { u.finish(span, opEvolve, err) }()

	req.AssetID = strings.TrimSpace(req.AssetID)
	if req.AssetID == "" {
		return EvolveResponse{}, ErrInvalidRequest
	}

	now := u.now()
	var ledger soul.StatLedger
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		l, err := u.Souls.GetForUpdate(txCtx, req.AssetID)
		if err != nil {
			return fmt.Errorf("soul %s: %w", req.AssetID, err)
		}
		from := l.Stage
		if err := l.Evolve(req.Stage); err != nil {
			return err
		}
		expected := l.Touch(now)
		if err := u.Souls.SaveWithVersion(txCtx, l, expected); err != nil {
			return err
		}
		if u.Journal != nil {
			entry := u.journal(req.AssetID, soul.JournalSoulEvolved, now, map[string]any{
				"stage_before": int(from),
				"stage_after":  int(l.Stage),
				"xp":           l.XP,
			})
			if err := u.Journal.Append(txCtx, []soul.JournalEntry{entry}); err != nil {
				return err
			}
		}
		ledger = l
		return nil
	})
	if err != nil {
		return EvolveResponse{}, err
	}

	warning := u.Publisher.Publish(ctx, req.AssetID, soul.EvolutionAttributes(ledger, req.Attributes))
	return EvolveResponse{
		AssetID:       ledger.AssetID,
		Stage:         ledger.Stage,
		Status:        ledger.Stage.Label(),
		XP:            ledger.XP,
		MirrorWarning: warning,
	}, nil
}
