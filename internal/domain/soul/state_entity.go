package soul

import "time"

// NewLedger returns the ledger a freshly initialized asset starts with.
func NewLedger(assetID string, now time.Time) StatLedger {
	return StatLedger{
		AssetID:   assetID,
		Stage:     StageDormant,
		Version:   InitialVersion,
		UpdatedAt: now,
	}
}

func (l StatLedger) Activated() bool {
	return l.Stage >= StageActive
}

// ApplyQuestReward credits one completed quest. Counters saturate.
func (l *StatLedger) ApplyQuestReward(xpReward uint64) {
	l.XP = SaturatingAdd64(l.XP, xpReward)
	l.QuestsCompleted = SaturatingAdd32(l.QuestsCompleted, 1)
}

type GrantDeltas struct {
	TradingVolume   *uint64
	QuestsCompleted *uint32
}

func (l *StatLedger) ApplyGrant(xp uint64, deltas GrantDeltas) {
	l.XP = SaturatingAdd64(l.XP, xp)
	if deltas.TradingVolume != nil {
		l.TradingVolume = SaturatingAdd64(l.TradingVolume, *deltas.TradingVolume)
	}
	if deltas.QuestsCompleted != nil {
		l.QuestsCompleted = SaturatingAdd32(l.QuestsCompleted, *deltas.QuestsCompleted)
	}
}

// Evolve runs the gate and moves the ledger to requested on acceptance.
func (l *StatLedger) Evolve(requested Stage) error {
	if err := EvaluateEvolution(l.Stage, requested, l.XP); err != nil {
		return err
	}
	l.Stage = requested
	return nil
}

// Touch advances the optimistic version and returns the version the row
// held before the mutation.
func (l *StatLedger) Touch(now time.Time) int64 {
	prev := l.Version
	l.Version++
	l.UpdatedAt = now
	return prev
}
