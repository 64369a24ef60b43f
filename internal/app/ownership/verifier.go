package ownership

import (
	"context"
	"errors"
	"fmt"

	"soulledger/internal/app/ports"
	"soulledger/internal/domain/asset"
)

var (
	ErrOwnershipMismatch = errors.New("asset owner does not match claimed owner")
	ErrOracleUnavailable = errors.New("ownership oracle unavailable")
)

// Verifier resolves asset owners through the external registry. The raw
// account data is untrusted and decoded strictly.
type Verifier struct {
	Oracle ports.OwnershipOracle
}

func (v Verifier) Owner(ctx context.Context, assetID string) (string, error) {
	if v.Oracle == nil {
		return "", ErrOracleUnavailable
	}
	data, err := v.Oracle.AccountData(ctx, assetID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", fmt.Errorf("asset %s: %w", assetID, err)
		}
		return "", fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	owner, err := asset.DecodeOwner(data)
	if err != nil {
		return "", fmt.Errorf("asset %s: %w", assetID, err)
	}
	return owner, nil
}

func (v Verifier) Verify(ctx context.Context, assetID, claimedOwner string) error {
	owner, err := v.Owner(ctx, assetID)
	if err != nil {
		return err
	}
	if owner != claimedOwner {
		return ErrOwnershipMismatch
	}
	return nil
}
