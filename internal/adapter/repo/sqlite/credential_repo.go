package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"soulledger/internal/app/ports"
)

type PrincipalCredentialRepo struct {
	store *Store
}

func NewPrincipalCredentialRepo(store *Store) PrincipalCredentialRepo {
	return PrincipalCredentialRepo{store: store}
}

func (r PrincipalCredentialRepo) Create(ctx context.Context, c ports.PrincipalCredentialRecord) error {
	_, err := r.store.q(ctx).ExecContext(ctx,
		`INSERT INTO principal_credentials (principal_id, key_salt, key_hash, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.PrincipalID, c.KeySalt, c.KeyHash, c.Status, toMillis(c.CreatedAt), toMillis(time.Now()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return fmt.Errorf("create principal credential: %w", err)
	}
	return nil
}

func (r PrincipalCredentialRepo) GetByPrincipalID(ctx context.Context, principalID string) (ports.PrincipalCredentialRecord, error) {
	var (
		c         ports.PrincipalCredentialRecord
		createdAt int64
	)
	err := r.store.q(ctx).QueryRowContext(ctx,
		`SELECT principal_id, key_salt, key_hash, status, created_at FROM principal_credentials WHERE principal_id = ?`,
		principalID,
	).Scan(&c.PrincipalID, &c.KeySalt, &c.KeyHash, &c.Status, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.PrincipalCredentialRecord{}, ports.ErrNotFound
		}
		return ports.PrincipalCredentialRecord{}, fmt.Errorf("get principal credential: %w", err)
	}
	c.CreatedAt = fromMillis(createdAt)
	return c, nil
}
