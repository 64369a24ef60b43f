package ports

type LedgerMetrics interface {
	RecordSuccess(op string)
	RecordDuplicate()
	RecordRejected(op string)
	RecordFailure()
	RecordMirrorFailure()
}
