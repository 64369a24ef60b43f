package status

import (
	"context"
	"errors"
	"strings"

	"soulledger/internal/app/ports"
	"soulledger/internal/domain/soul"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	Souls       ports.SoulRepository
	Completions ports.CompletionRepository
	Wallets     ports.WalletLinkRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.AssetID = strings.TrimSpace(req.AssetID)
	if req.AssetID == "" {
		return Response{}, ErrInvalidRequest
	}
	ledger, err := u.Souls.GetByAssetID(ctx, req.AssetID)
	if err != nil {
		return Response{}, err
	}
	resp := Response{
		Ledger:      ledger,
		Status:      ledger.Stage.Label(),
		Completions: []soul.CompletionRecord{},
	}
	if ledger.Stage < soul.StageAscended {
		next := ledger.Stage + 1
		resp.NextStage = &next
		if need := soul.Threshold(next); ledger.XP < need {
			resp.XPToNext = need - ledger.XP
		}
	}

	if u.Completions != nil {
		records, err := u.Completions.ListByAssetID(ctx, req.AssetID)
		if err != nil {
			return Response{}, err
		}
		resp.Completions = records
	}
	if u.Wallets != nil {
		link, err := u.Wallets.GetByAssetID(ctx, req.AssetID)
		switch {
		case err == nil:
			resp.Wallet = &link
		case errors.Is(err, ports.ErrNotFound):
		default:
			return Response{}, err
		}
	}
	return resp, nil
}
