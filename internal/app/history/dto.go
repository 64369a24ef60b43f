package history

import "soulledger/internal/domain/soul"

type Request struct {
	AssetID      string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

// Snapshot is the latest xp and stage visible in the returned entries.
type Snapshot struct {
	XP    uint64     `json:"xp"`
	Stage soul.Stage `json:"current_stage"`
}

type Response struct {
	Entries []soul.JournalEntry `json:"entries"`
	Latest  Snapshot            `json:"latest"`
}
