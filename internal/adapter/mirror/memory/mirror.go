package memory

import (
	"context"
	"sync"

	"soulledger/internal/domain/soul"
)

// Mirror keeps the last written attributes per asset. Updates from an older
// ledger version than the stored attributes are dropped.
type Mirror struct {
	mu    sync.Mutex
	attrs map[string]map[string]string
	calls int
	fail  error
}

func NewMirror() *Mirror {
	return &Mirror{attrs: map[string]map[string]string{}}
}

// FailWith makes every following update return err until cleared with nil.
func (m *Mirror) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

func (m *Mirror) UpdateAttributes(_ context.Context, assetID string, attributes map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.fail != nil {
		return m.fail
	}
	cur, ok := m.attrs[assetID]
	if !ok {
		cur = map[string]string{}
		m.attrs[assetID] = cur
	}
	if soul.StaleAttributes(cur, attributes) {
		return nil
	}
	for k, v := range attributes {
		cur[k] = v
	}
	return nil
}

func (m *Mirror) Attributes(assetID string) map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.attrs[assetID]))
	for k, v := range m.attrs[assetID] {
		out[k] = v
	}
	return out
}

func (m *Mirror) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
