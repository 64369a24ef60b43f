package pass

import (
	"time"

	"soulledger/internal/domain/soul"
)

type InitializeRequest struct {
	Caller     string
	AssetID    string
	Owner      string
	Event      string
	InviteCode string
}

type InitializeResponse struct {
	AssetID       string     `json:"asset_id"`
	Owner         string     `json:"owner"`
	Event         string     `json:"event"`
	Stage         soul.Stage `json:"current_stage"`
	Status        string     `json:"status"`
	InitializedAt time.Time  `json:"initialized_at"`
	MirrorWarning string     `json:"mirror_warning,omitempty"`
}

type LinkWalletRequest struct {
	Caller  string
	AssetID string
	Wallet  string
}

type LinkWalletResponse struct {
	Link soul.WalletLink `json:"link"`
}
