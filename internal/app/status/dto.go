package status

import "soulledger/internal/domain/soul"

type Request struct {
	AssetID string
}

type Response struct {
	Ledger      soul.StatLedger         `json:"ledger"`
	Status      string                  `json:"status"`
	NextStage   *soul.Stage             `json:"next_stage,omitempty"`
	XPToNext    uint64                  `json:"xp_to_next"`
	Completions []soul.CompletionRecord `json:"completions"`
	Wallet      *soul.WalletLink        `json:"wallet,omitempty"`
}
