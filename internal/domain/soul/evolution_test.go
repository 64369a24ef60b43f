package soul

import (
	"errors"
	"testing"
)

func TestEvaluateEvolution_RejectsNonTargetStages(t *testing.T) {
	for _, requested := range []Stage{StageDormant, Stage(3), Stage(255)} {
		if err := EvaluateEvolution(StageDormant, requested, 1_000_000); !errors.Is(err, ErrInvalidStage) {
			t.Fatalf("requested=%d: expected ErrInvalidStage, got %v", requested, err)
		}
	}
}

func TestEvaluateEvolution_RejectsDowngradeAndSameStage(t *testing.T) {
	cases := []struct {
		current   Stage
		requested Stage
	}{
		{StageActive, StageActive},
		{StageAscended, StageActive},
		{StageAscended, StageAscended},
	}
	for _, tc := range cases {
		if err := EvaluateEvolution(tc.current, tc.requested, 1_000_000); !errors.Is(err, ErrInvalidStage) {
			t.Fatalf("%d->%d: expected ErrInvalidStage, got %v", tc.current, tc.requested, err)
		}
	}
}

func TestEvaluateEvolution_ThresholdBoundaries(t *testing.T) {
	cases := []struct {
		current   Stage
		requested Stage
		xp        uint64
		want      error
	}{
		{StageDormant, StageActive, 99, ErrNotEnoughXP},
		{StageDormant, StageActive, 100, nil},
		{StageActive, StageAscended, 999, ErrNotEnoughXP},
		{StageActive, StageAscended, 1000, nil},
		{StageDormant, StageAscended, 999, ErrNotEnoughXP},
		{StageDormant, StageAscended, 1000, nil},
	}
	for _, tc := range cases {
		err := EvaluateEvolution(tc.current, tc.requested, tc.xp)
		if !errors.Is(err, tc.want) || (tc.want == nil && err != nil) {
			t.Fatalf("%d->%d xp=%d: got=%v want=%v", tc.current, tc.requested, tc.xp, err, tc.want)
		}
	}
}

func TestEvaluateEvolution_StageCheckPrecedesXP(t *testing.T) {
	if err := EvaluateEvolution(StageAscended, StageActive, 0); !errors.Is(err, ErrInvalidStage) {
		t.Fatalf("expected ErrInvalidStage for downgrade with no xp, got %v", err)
	}
}

func TestStatLedger_EvolveLeavesStageOnReject(t *testing.T) {
	l := StatLedger{AssetID: "a1", XP: 50}
	if err := l.Evolve(StageActive); !errors.Is(err, ErrNotEnoughXP) {
		t.Fatalf("expected ErrNotEnoughXP, got %v", err)
	}
	if l.Stage != StageDormant {
		t.Fatalf("stage changed on reject: %d", l.Stage)
	}
	l.XP = 100
	if err := l.Evolve(StageActive); err != nil {
		t.Fatalf("evolve: %v", err)
	}
	if l.Stage != StageActive {
		t.Fatalf("expected active, got %d", l.Stage)
	}
}
