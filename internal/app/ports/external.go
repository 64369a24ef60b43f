package ports

import "context"

// OwnershipOracle returns the raw account data of an asset as held by the
// external asset registry. Callers must decode and validate it.
type OwnershipOracle interface {
	AccountData(ctx context.Context, assetID string) ([]byte, error)
}

// AttributeMirror receives display copies of ledger fields. It is never read
// back for ledger decisions.
type AttributeMirror interface {
	UpdateAttributes(ctx context.Context, assetID string, attributes map[string]string) error
}
