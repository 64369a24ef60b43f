package gormrepo

import (
	"context"
	"errors"
	"time"

	"soulledger/internal/adapter/repo/gorm/model"
	"soulledger/internal/app/ports"

	"gorm.io/gorm"
)

type PrincipalCredentialRepo struct {
	db *gorm.DB
}

func NewPrincipalCredentialRepo(db *gorm.DB) PrincipalCredentialRepo {
	return PrincipalCredentialRepo{db: db}
}

func (r PrincipalCredentialRepo) Create(ctx context.Context, credential ports.PrincipalCredentialRecord) error {
	row := model.PrincipalCredential{
		PrincipalID: credential.PrincipalID,
		KeySalt:     credential.KeySalt,
		KeyHash:     credential.KeyHash,
		Status:      credential.Status,
		CreatedAt:   credential.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r PrincipalCredentialRepo) GetByPrincipalID(ctx context.Context, principalID string) (ports.PrincipalCredentialRecord, error) {
	var row model.PrincipalCredential
	if err := getDBFromCtx(ctx, r.db).WithContext(ctx).Where(&model.PrincipalCredential{PrincipalID: principalID}).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.PrincipalCredentialRecord{}, ports.ErrNotFound
		}
		return ports.PrincipalCredentialRecord{}, err
	}
	return ports.PrincipalCredentialRecord{
		PrincipalID: row.PrincipalID,
		KeySalt:     row.KeySalt,
		KeyHash:     row.KeyHash,
		Status:      row.Status,
		CreatedAt:   row.CreatedAt,
	}, nil
}
