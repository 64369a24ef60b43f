package inmemory

import (
	"testing"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess("complete_quest")
	r.RecordSuccess("evolve")
	r.RecordDuplicate()
	r.RecordRejected("evolve")
	r.RecordFailure()
	r.RecordMirrorFailure()

	s := r.Snapshot()
	if s.OperationTotal != 5 {
		t.Fatalf("expected total 5, got %d", s.OperationTotal)
	}
	if s.OperationSuccess != 2 {
		t.Fatalf("expected success 2, got %d", s.OperationSuccess)
	}
	if s.DuplicateRejected != 1 {
		t.Fatalf("expected duplicate 1, got %d", s.DuplicateRejected)
	}
	if s.PreconditionFailed != 1 || s.RejectedByOp["evolve"] != 1 {
		t.Fatalf("expected one evolve rejection, got %+v", s)
	}
	if s.OperationFailure != 1 {
		t.Fatalf("expected failure 1, got %d", s.OperationFailure)
	}
	if s.MirrorFailure != 1 {
		t.Fatalf("expected mirror failure 1, got %d", s.MirrorFailure)
	}
	if s.SuccessByOp["complete_quest"] != 1 {
		t.Fatalf("expected complete_quest count 1")
	}
}
