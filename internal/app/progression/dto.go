package progression

import (
	"time"

	"soulledger/internal/domain/soul"
)

type CompleteQuestRequest struct {
	Caller    string
	Quest     soul.QuestKey
	AssetID   string
	Recipient string
}

type CompleteQuestResponse struct {
	AssetID         string     `json:"asset_id"`
	XP              uint64     `json:"xp"`
	QuestsCompleted uint32     `json:"quests_completed"`
	Stage           soul.Stage `json:"current_stage"`
	CompletedAt     time.Time  `json:"completed_at"`
	MirrorWarning   string     `json:"mirror_warning,omitempty"`
}

type EvolveRequest struct {
	AssetID    string
	Stage      soul.Stage
	Attributes map[string]string
}

type EvolveResponse struct {
	AssetID       string     `json:"asset_id"`
	Stage         soul.Stage `json:"current_stage"`
	Status        string     `json:"status"`
	XP            uint64     `json:"xp"`
	MirrorWarning string     `json:"mirror_warning,omitempty"`
}

// GrantXPRequest credits XP plus, when Action is set, that action's table
// reward.
type GrantXPRequest struct {
	Caller  string
	AssetID string
	XP      uint64
	Action  string
	Deltas  soul.GrantDeltas
}

type GrantXPResponse struct {
	AssetID         string `json:"asset_id"`
	XP              uint64 `json:"xp"`
	QuestsCompleted uint32 `json:"quests_completed"`
	TradingVolume   uint64 `json:"trading_volume"`
}
