package inmemory

import (
	"sync"
)

type Snapshot struct {
	OperationTotal     uint64            `json:"operation_total"`
	OperationSuccess   uint64            `json:"operation_success"`
	DuplicateRejected  uint64            `json:"duplicate_rejected"`
	PreconditionFailed uint64            `json:"precondition_failed"`
	OperationFailure   uint64            `json:"operation_failure"`
	MirrorFailure      uint64            `json:"mirror_failure"`
	SuccessByOp        map[string]uint64 `json:"success_by_op"`
	RejectedByOp       map[string]uint64 `json:"rejected_by_op"`
}

type Recorder struct {
	mu         sync.Mutex
	success    uint64
	duplicate  uint64
	rejected   uint64
	failure    uint64
	mirror     uint64
	successBy  map[string]uint64
	rejectedBy map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		successBy:  map[string]uint64{},
		rejectedBy: map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.successBy[op]++
}

func (r *Recorder) RecordDuplicate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.duplicate++
}

func (r *Recorder) RecordRejected(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.rejectedBy[op]++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

// RecordMirrorFailure counts failed post-commit mirror pushes. These are not
// part of the operation total since the owning operation succeeded.
func (r *Recorder) RecordMirrorFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mirror++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		OperationSuccess:   r.success,
		DuplicateRejected:  r.duplicate,
		PreconditionFailed: r.rejected,
		OperationFailure:   r.failure,
		MirrorFailure:      r.mirror,
		OperationTotal:     r.success + r.duplicate + r.rejected + r.failure,
		SuccessByOp:        make(map[string]uint64, len(r.successBy)),
		RejectedByOp:       make(map[string]uint64, len(r.rejectedBy)),
	}
	for k, v := range r.successBy {
		out.SuccessByOp[k] = v
	}
	for k, v := range r.rejectedBy {
		out.RejectedByOp[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
