package progression

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"soulledger/internal/app/ports"
	"soulledger/internal/domain/soul"

	"go.opentelemetry.io/otel/attribute"
)

// CompleteQuest credits a quest reward to an asset at most once. The
// completion record insert and the ledger credit commit together; a second
// submission for the same (quest, asset) fails with ErrDuplicateCompletion.
func (u UseCase) CompleteQuest(ctx context.Context, req CompleteQuestRequest) (out CompleteQuestResponse, err error) {
	ctx, span := tracer.Start(ctx, "progression.CompleteQuest")
	span.SetAttributes(
		attribute.String("asset.id", req.AssetID),
		attribute.String("quest.key", req.Quest.String()),
	)
	defer func() { u.finish(span, opCompleteQuest, err) }()

	req.Caller = strings.TrimSpace(req.Caller)
	req.AssetID = strings.TrimSpace(req.AssetID)
	req.Recipient = strings.TrimSpace(req.Recipient)
	req.Quest.Event = strings.TrimSpace(req.Quest.Event)
	req.Quest.Name = strings.TrimSpace(req.Quest.Name)
	if req.AssetID == "" || req.Recipient == "" || req.Quest.Event == "" || req.Quest.Name == "" {
		return CompleteQuestResponse{}, ErrInvalidRequest
	}

	quest, err := u.Catalog.GetQuest(ctx, req.Quest.Event, req.Quest.Name)
	if err != nil {
		return CompleteQuestResponse{}, fmt.Errorf("quest %s: %w", req.Quest, err)
	}
	event, err := u.Catalog.GetEvent(ctx, quest.Event)
	if err != nil {
		return CompleteQuestResponse{}, fmt.Errorf("event %s: %w", quest.Event, err)
	}
	if !event.Active {
		return CompleteQuestResponse{}, ErrEventInactive
	}
	if err := u.Registry.AuthorizeEventAuthority(req.Caller, event); err != nil {
		return CompleteQuestResponse{}, err
	}
	if err := u.Owners.Verify(ctx, req.AssetID, req.Recipient); err != nil {
		return CompleteQuestResponse{}, err
	}

	now := u.now()
	var ledger soul.StatLedger
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		l, err := u.Souls.GetForUpdate(txCtx, req.AssetID)
		if err != nil {
			return fmt.Errorf("soul %s: %w", req.AssetID, err)
		}
		if !l.Activated() {
			return ErrNotActivated
		}

		record := soul.CompletionRecord{Quest: req.Quest, AssetID: req.AssetID, CompletedAt: now}
		if err := u.Completions.InsertIfAbsent(txCtx, record); err != nil {
			if errors.Is(err, ports.ErrConflict) {
				return ErrDuplicateCompletion
			}
			return err
		}

		before := l.XP
		l.ApplyQuestReward(quest.XPReward)
		expected := l.Touch(now)
		if err := u.Souls.SaveWithVersion(txCtx, l, expected); err != nil {
			return err
		}
		if u.Journal != nil {
			entry := u.journal(req.AssetID, soul.JournalQuestCompleted, now, map[string]any{
				"event":            req.Quest.Event,
				"quest":            req.Quest.Name,
				"xp_reward":        quest.XPReward,
				"xp_before":        before,
				"xp_after":         l.XP,
				"quests_completed": l.QuestsCompleted,
				"scanner":          req.Caller,
				"recipient":        req.Recipient,
			})
			if err := u.Journal.Append(txCtx, []soul.JournalEntry{entry}); err != nil {
				return err
			}
		}
		ledger = l
		return nil
	})
	if err != nil {
		return CompleteQuestResponse{}, err
	}

	warning := u.Publisher.Publish(ctx, req.AssetID, soul.QuestAttributes(ledger, quest.Name))
	return CompleteQuestResponse{
		AssetID:         ledger.AssetID,
		XP:              ledger.XP,
		QuestsCompleted: ledger.QuestsCompleted,
		Stage:           ledger.Stage,
		CompletedAt:     now,
		MirrorWarning:   warning,
	}, nil
}
