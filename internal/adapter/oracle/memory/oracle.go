package memory

import (
	"context"
	"sync"

	"soulledger/internal/app/ports"
	"soulledger/internal/domain/asset"
)

// Oracle serves asset account data from memory, for local runs and tests.
type Oracle struct {
	mu       sync.RWMutex
	accounts map[string][]byte
}

func NewOracle() *Oracle {
	return &Oracle{accounts: map[string][]byte{}}
}

func (o *Oracle) SetOwner(assetID, owner string) {
	o.SetRaw(assetID, asset.EncodeAccount(owner, nil))
}

func (o *Oracle) SetRaw(assetID string, data []byte) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.accounts[assetID] = append([]byte(nil), data...)
}

func (o *Oracle) AccountData(_ context.Context, assetID string) ([]byte, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	data, ok := o.accounts[assetID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}
