package soul

import "errors"

var (
	ErrInvalidStage = errors.New("invalid evolution stage target")
	ErrNotEnoughXP  = errors.New("not enough xp to evolve")
)

// EvaluateEvolution decides whether a ledger at current with xp may move to
// requested. A nil result accepts the transition.
func EvaluateEvolution(current, requested Stage, xp uint64) error {
	if requested != StageActive && requested != StageAscended {
		return ErrInvalidStage
	}
	if requested <= current {
		return ErrInvalidStage
	}
	if xp < Threshold(requested) {
		return ErrNotEnoughXP
	}
	return nil
}
