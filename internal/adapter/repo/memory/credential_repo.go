package memory

import (
	"context"

	"soulledger/internal/app/ports"
)

type PrincipalCredentialRepo struct {
	store *Store
}

func NewPrincipalCredentialRepo(store *Store) PrincipalCredentialRepo {
	return PrincipalCredentialRepo{store: store}
}

func (r PrincipalCredentialRepo) Create(ctx context.Context, credential ports.PrincipalCredentialRecord) error {
	return r.store.do(ctx, func(tx *txState) error {
		if _, exists := r.store.credentials[credential.PrincipalID]; exists {
			return ports.ErrConflict
		}
		r.store.credentials[credential.PrincipalID] = credential
		tx.onRollback(func() { delete(r.store.credentials, credential.PrincipalID) })
		return nil
	})
}

func (r PrincipalCredentialRepo) GetByPrincipalID(ctx context.Context, principalID string) (ports.PrincipalCredentialRecord, error) {
	var out ports.PrincipalCredentialRecord
	err := r.store.do(ctx, func(_ *txState) error {
		c, ok := r.store.credentials[principalID]
		if !ok {
			return ports.ErrNotFound
		}
		out = c
		return nil
	})
	return out, err
}
