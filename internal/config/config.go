package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"

	MirrorNone   = "none"
	MirrorMemory = "memory"
	MirrorHTTP   = "http"
	MirrorS3     = "s3"
)

type Config struct {
	HTTPAddr   string `env:"SOUL_HTTP_ADDR" envDefault:":8080"`
	CORSOrigin string `env:"SOUL_CORS_ORIGIN" envDefault:"*"`

	Store         string `env:"SOUL_STORE" envDefault:"memory"`
	DBDSN         string `env:"SOUL_DB_DSN"`
	SQLitePath    string `env:"SOUL_SQLITE_PATH" envDefault:"soulledger.db"`
	MigrationsDir string `env:"SOUL_MIGRATIONS_DIR"`

	BackendPrincipals []string          `env:"SOUL_BACKEND_PRINCIPALS" envSeparator:","`
	BackendKeys       map[string]string `env:"SOUL_BACKEND_KEYS" envSeparator:"," envKeyValSeparator:"="`
	InviteCodes       []string          `env:"SOUL_INVITE_CODES" envSeparator:","`

	Mirror                string `env:"SOUL_MIRROR" envDefault:"none"`
	MirrorURL             string `env:"SOUL_MIRROR_URL"`
	MirrorBucket          string `env:"SOUL_MIRROR_BUCKET"`
	MirrorPrefix          string `env:"SOUL_MIRROR_PREFIX"`
	MirrorEndpoint        string `env:"SOUL_MIRROR_ENDPOINT"`
	MirrorRegion          string `env:"SOUL_MIRROR_REGION" envDefault:"auto"`
	MirrorAccessKeyID     string `env:"SOUL_MIRROR_ACCESS_KEY_ID"`
	MirrorSecretAccessKey string `env:"SOUL_MIRROR_SECRET_ACCESS_KEY"`

	OracleURL       string        `env:"SOUL_ORACLE_URL"`
	ExternalTimeout time.Duration `env:"SOUL_EXTERNAL_TIMEOUT" envDefault:"5s"`

	OTelEndpoint string `env:"SOUL_OTEL_ENDPOINT"`
}

// Load reads an optional .env file, then parses and validates the process
// environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	} else if err == nil {
		log.Printf("[config] loaded .env")
	}
	return Parse()
}

func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	c.Mirror = strings.ToLower(strings.TrimSpace(c.Mirror))
	c.BackendPrincipals = compact(c.BackendPrincipals)
	c.InviteCodes = compact(c.InviteCodes)

	// Principals with a seeded key are backend principals.
	seen := make(map[string]struct{}, len(c.BackendPrincipals))
	for _, p := range c.BackendPrincipals {
		seen[p] = struct{}{}
	}
	keys := make(map[string]string, len(c.BackendKeys))
	for id, key := range c.BackendKeys {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		keys[id] = strings.TrimSpace(key)
		if _, ok := seen[id]; !ok {
			c.BackendPrincipals = append(c.BackendPrincipals, id)
			seen[id] = struct{}{}
		}
	}
	c.BackendKeys = keys
}

func (c Config) Validate() error {
	var errs []error
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			errs = append(errs, errors.New("SOUL_DB_DSN is required for postgres store"))
		}
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			errs = append(errs, errors.New("SOUL_SQLITE_PATH is required for sqlite store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SOUL_STORE %q", c.Store))
	}

	switch c.Mirror {
	case MirrorNone, MirrorMemory:
	case MirrorHTTP:
		if strings.TrimSpace(c.MirrorURL) == "" {
			errs = append(errs, errors.New("SOUL_MIRROR_URL is required for http mirror"))
		}
	case MirrorS3:
		if strings.TrimSpace(c.MirrorBucket) == "" {
			errs = append(errs, errors.New("SOUL_MIRROR_BUCKET is required for s3 mirror"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SOUL_MIRROR %q", c.Mirror))
	}

	for id, key := range c.BackendKeys {
		if key == "" {
			errs = append(errs, fmt.Errorf("SOUL_BACKEND_KEYS entry %q has an empty key", id))
		}
	}
	return errors.Join(errs...)
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
