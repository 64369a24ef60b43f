package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"soulledger/internal/app/ports"
)

const (
	CredentialStatusActive = "active"
)

var (
	ErrInvalidRequest     = errors.New("invalid auth request")
	ErrInvalidCredentials = errors.New("invalid principal credentials")
)

type RegisterRequest struct{}

type RegisterResponse struct {
	PrincipalID  string `json:"principal_id"`
	PrincipalKey string `json:"principal_key"`
	IssuedAt     string `json:"issued_at"`
}

type VerifyRequest struct {
	PrincipalID  string
	PrincipalKey string
}

type RegisterUseCase struct {
	Credentials ports.PrincipalCredentialRepository
	Now         func() time.Time
}

type VerifyUseCase struct {
	Credentials ports.PrincipalCredentialRepository
}

func (u RegisterUseCase) Execute(ctx context.Context, _ RegisterRequest) (RegisterResponse, error) {
	if u.Credentials == nil {
		return RegisterResponse{}, ErrInvalidRequest
	}
	now := u.now()

	for i := 0; i < 3; i++ {
		principalID, err := newPrincipalID(now)
		if err != nil {
			return RegisterResponse{}, err
		}
		key, err := randomToken(32)
		if err != nil {
			return RegisterResponse{}, err
		}
		err = u.store(ctx, principalID, key, now)
		if errors.Is(err, ports.ErrConflict) {
			continue
		}
		if err != nil {
			return RegisterResponse{}, err
		}
		return RegisterResponse{
			PrincipalID:  principalID,
			PrincipalKey: key,
			IssuedAt:     now.Format(time.RFC3339),
		}, nil
	}

	return RegisterResponse{}, ports.ErrConflict
}

// Seed stores a credential with a caller-chosen id and key. Used at startup
// for backend principals listed in configuration; an existing id is left
// untouched.
func (u RegisterUseCase) Seed(ctx context.Context, principalID, key string) error {
	principalID = strings.TrimSpace(principalID)
	key = strings.TrimSpace(key)
	if principalID == "" || key == "" || u.Credentials == nil {
		return ErrInvalidRequest
	}
	err := u.store(ctx, principalID, key, u.now())
	if errors.Is(err, ports.ErrConflict) {
		return nil
	}
	return err
}

func (u RegisterUseCase) store(ctx context.Context, principalID, key string, now time.Time) error {
	salt, err := randomBytes(16)
	if err != nil {
		return err
	}
	return u.Credentials.Create(ctx, ports.PrincipalCredentialRecord{
		PrincipalID: principalID,
		KeySalt:     salt,
		KeyHash:     credentialHash(salt, key),
		Status:      CredentialStatusActive,
		CreatedAt:   now,
	})
}

func (u RegisterUseCase) now() time.Time {
	if u.Now == nil {
		return time.Now().UTC()
	}
	return u.Now().UTC()
}

func (u VerifyUseCase) Execute(ctx context.Context, req VerifyRequest) error {
	req.PrincipalID = strings.TrimSpace(req.PrincipalID)
	req.PrincipalKey = strings.TrimSpace(req.PrincipalKey)
	if req.PrincipalID == "" || req.PrincipalKey == "" || u.Credentials == nil {
		return ErrInvalidRequest
	}

	cred, err := u.Credentials.GetByPrincipalID(ctx, req.PrincipalID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if cred.Status != CredentialStatusActive {
		return ErrInvalidCredentials
	}

	got := credentialHash(cred.KeySalt, req.PrincipalKey)
	if subtle.ConstantTimeCompare(got, cred.KeyHash) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

func credentialHash(salt []byte, key string) []byte {
	b := make([]byte, 0, len(salt)+len(key))
	b = append(b, salt...)
	b = append(b, key...)
	sum := sha256.Sum256(b)
	return sum[:]
}

func newPrincipalID(now time.Time) (string, error) {
	randPart, err := randomToken(9)
	if err != nil {
		return "", err
	}
	return "prn_" + now.Format("20060102") + "_" + randPart, nil
}

func randomToken(n int) (string, error) {
	b, err := randomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
