package mirroring

import (
	"context"
	"log"
	"time"

	"soulledger/internal/app/ports"
	"soulledger/internal/domain/soul"

	"github.com/google/uuid"
)

// Publisher pushes attribute copies after the owning ledger mutation has
// committed. A failed push is reported, counted and journaled; the ledger is
// left as committed.
type Publisher struct {
	Mirror  ports.AttributeMirror
	Journal ports.JournalRepository
	Metrics ports.LedgerMetrics
	Now     func() time.Time
}

// Publish returns a non-empty warning when the mirror rejected the update.
func (p Publisher) Publish(ctx context.Context, assetID string, attributes map[string]string) string {
	if p.Mirror == nil {
		return ""
	}
	err := p.Mirror.UpdateAttributes(ctx, assetID, attributes)
	if err == nil {
		return ""
	}

	log.Printf("[mirror] update failed asset=%s: %v", assetID, err)
	if p.Metrics != nil {
		p.Metrics.RecordMirrorFailure()
	}
	if p.Journal != nil {
		nowFn := p.Now
		if nowFn == nil {
			nowFn = time.Now
		}
		entry := soul.JournalEntry{
			ID:         uuid.NewString(),
			AssetID:    assetID,
			Type:       soul.JournalMirrorUpdateFailed,
			OccurredAt: nowFn().UTC(),
			Payload: map[string]any{
				"error":      err.Error(),
				"attributes": attributes,
			},
		}
		if jerr := p.Journal.Append(ctx, []soul.JournalEntry{entry}); jerr != nil {
			log.Printf("[mirror] journal append failed asset=%s: %v", assetID, jerr)
		}
	}
	return "attribute mirror update failed: " + err.Error()
}
