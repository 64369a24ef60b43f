package soul

import "time"

type Stage uint8

const (
	StageDormant  Stage = 0
	StageActive   Stage = 1
	StageAscended Stage = 2
)

func (s Stage) Valid() bool {
	return s <= StageAscended
}

// Label is the status string written to the attribute mirror.
func (s Stage) Label() string {
	switch s {
	case StageActive:
		return "Active"
	case StageAscended:
		return "Ascended"
	default:
		return "Dormant"
	}
}

// StatLedger is the authoritative progression record of one asset.
type StatLedger struct {
	AssetID         string    `json:"asset_id"`
	XP              uint64    `json:"xp"`
	QuestsCompleted uint32    `json:"quests_completed"`
	TradingVolume   uint64    `json:"trading_volume"`
	Stage           Stage     `json:"current_stage"`
	Version         int64     `json:"version"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type QuestKey struct {
	Event string `json:"event"`
	Name  string `json:"name"`
}

func (k QuestKey) String() string {
	return k.Event + "/" + k.Name
}

type CompletionRecord struct {
	Quest       QuestKey  `json:"quest"`
	AssetID     string    `json:"asset_id"`
	CompletedAt time.Time `json:"completed_at"`
}

type WalletLink struct {
	AssetID  string    `json:"asset_id"`
	Wallet   string    `json:"wallet"`
	LinkedBy string    `json:"linked_by"`
	LinkedAt time.Time `json:"linked_at"`
}

type JournalEntry struct {
	ID         string         `json:"id"`
	AssetID    string         `json:"asset_id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

const (
	JournalSoulInitialized    = "soul_initialized"
	JournalQuestCompleted     = "quest_completed"
	JournalSoulEvolved        = "soul_evolved"
	JournalXPGranted          = "xp_granted"
	JournalWalletLinked       = "wallet_linked"
	JournalMirrorUpdateFailed = "mirror_update_failed"
)
