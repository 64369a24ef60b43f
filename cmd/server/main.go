package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"soulledger/db/migrations"
	httpadapter "soulledger/internal/adapter/http"
	metricsinmem "soulledger/internal/adapter/metrics/inmemory"
	httpmirror "soulledger/internal/adapter/mirror/http"
	mirrormem "soulledger/internal/adapter/mirror/memory"
	"soulledger/internal/adapter/mirror/noop"
	s3mirror "soulledger/internal/adapter/mirror/s3"
	httporacle "soulledger/internal/adapter/oracle/http"
	oraclemem "soulledger/internal/adapter/oracle/memory"
	gormrepo "soulledger/internal/adapter/repo/gorm"
	"soulledger/internal/adapter/repo/memory"
	sqliterepo "soulledger/internal/adapter/repo/sqlite"
	"soulledger/internal/app/auth"
	"soulledger/internal/app/authority"
	catalogapp "soulledger/internal/app/catalog"
	"soulledger/internal/app/history"
	"soulledger/internal/app/mirroring"
	"soulledger/internal/app/ownership"
	"soulledger/internal/app/pass"
	"soulledger/internal/app/ports"
	"soulledger/internal/app/progression"
	"soulledger/internal/app/status"
	"soulledger/internal/config"
	"soulledger/internal/telemetry"

	"github.com/cloudwego/hertz/pkg/app/server"
)

const serviceName = "soulledger"

type stores struct {
	TxManager   ports.TxManager
	Souls       ports.SoulRepository
	Completions ports.CompletionRepository
	Catalog     ports.CatalogRepository
	Wallets     ports.WalletLinkRepository
	Journal     ports.JournalRepository
	Credentials ports.PrincipalCredentialRepository
	Close       func() error
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		log.Fatalf("setup tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("[telemetry] shutdown: %v", err)
		}
	}()

	repos, err := buildStores(ctx, cfg)
	if err != nil {
		log.Fatalf("build stores: %v", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[store] close: %v", err)
		}
	}()

	mirror, err := buildMirror(ctx, cfg)
	if err != nil {
		log.Fatalf("build mirror: %v", err)
	}
	oracle, err := buildOracle(cfg)
	if err != nil {
		log.Fatalf("build oracle: %v", err)
	}

	h := buildHandler(cfg, repos, mirror, oracle, time.Now)
	if err := seedBackendKeys(ctx, h.RegisterUC, cfg.BackendKeys); err != nil {
		log.Fatalf("seed backend keys: %v", err)
	}

	s := server.Default(server.WithHostPorts(cfg.HTTPAddr))
	h.RegisterRoutes(s)

	log.Printf("soulledger listening on %s (store=%s mirror=%s)", cfg.HTTPAddr, cfg.Store, cfg.Mirror)
	s.Spin()
}

func buildHandler(cfg config.Config, repos stores, mirror ports.AttributeMirror, oracle ports.OwnershipOracle, now func() time.Time) httpadapter.Handler {
	kpiRecorder := metricsinmem.NewRecorder()
	registry := authority.NewRegistry(cfg.BackendPrincipals)
	owners := ownership.Verifier{Oracle: oracle}
	publisher := mirroring.Publisher{
		Mirror:  mirror,
		Journal: repos.Journal,
		Metrics: kpiRecorder,
		Now:     now,
	}

	return httpadapter.Handler{
		RegisterUC: auth.RegisterUseCase{Credentials: repos.Credentials, Now: now},
		AuthUC:     auth.VerifyUseCase{Credentials: repos.Credentials},
		ProgressionUC: progression.UseCase{
			TxManager:   repos.TxManager,
			Souls:       repos.Souls,
			Completions: repos.Completions,
			Catalog:     repos.Catalog,
			Journal:     repos.Journal,
			Registry:    registry,
			Owners:      owners,
			Publisher:   publisher,
			Metrics:     kpiRecorder,
			Now:         now,
		},
		CatalogUC: catalogapp.UseCase{Catalog: repos.Catalog, Registry: registry, Now: now},
		PassUC: pass.UseCase{
			TxManager:   repos.TxManager,
			Souls:       repos.Souls,
			Catalog:     repos.Catalog,
			Wallets:     repos.Wallets,
			Journal:     repos.Journal,
			Registry:    registry,
			Owners:      owners,
			Publisher:   publisher,
			InviteCodes: cfg.InviteCodes,
			Now:         now,
		},
		StatusUC:    status.UseCase{Souls: repos.Souls, Completions: repos.Completions, Wallets: repos.Wallets},
		HistoryUC:   history.UseCase{Journal: repos.Journal},
		KPI:         kpiRecorder,
		AllowOrigin: cfg.CORSOrigin,
	}
}

func buildStores(ctx context.Context, cfg config.Config) (stores, error) {
	switch cfg.Store {
	case config.StorePostgres:
		db, err := gormrepo.OpenPostgres(cfg.DBDSN)
		if err != nil {
			return stores{}, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.MigrationsDir != "" {
			err = gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir)
		} else {
			err = gormrepo.ApplyMigrationsFS(ctx, db, migrations.FS)
		}
		if err != nil {
			return stores{}, fmt.Errorf("apply migrations: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return stores{}, err
		}
		return stores{
			TxManager:   gormrepo.NewTxManager(db),
			Souls:       gormrepo.NewSoulRepo(db),
			Completions: gormrepo.NewCompletionRepo(db),
			Catalog:     gormrepo.NewCatalogRepo(db),
			Wallets:     gormrepo.NewWalletLinkRepo(db),
			Journal:     gormrepo.NewJournalRepo(db),
			Credentials: gormrepo.NewPrincipalCredentialRepo(db),
			Close:       sqlDB.Close,
		}, nil
	case config.StoreSQLite:
		store, err := sqliterepo.Open(cfg.SQLitePath)
		if err != nil {
			return stores{}, fmt.Errorf("open sqlite: %w", err)
		}
		return stores{
			TxManager:   sqliterepo.NewTxManager(store),
			Souls:       sqliterepo.NewSoulRepo(store),
			Completions: sqliterepo.NewCompletionRepo(store),
			Catalog:     sqliterepo.NewCatalogRepo(store),
			Wallets:     sqliterepo.NewWalletLinkRepo(store),
			Journal:     sqliterepo.NewJournalRepo(store),
			Credentials: sqliterepo.NewPrincipalCredentialRepo(store),
			Close:       store.Close,
		}, nil
	default:
		log.Printf("[store] using in-memory store; state is lost on restart")
		store := memory.NewStore()
		return stores{
			TxManager:   memory.NewTxManager(store),
			Souls:       memory.NewSoulRepo(store),
			Completions: memory.NewCompletionRepo(store),
			Catalog:     memory.NewCatalogRepo(store),
			Wallets:     memory.NewWalletLinkRepo(store),
			Journal:     memory.NewJournalRepo(store),
			Credentials: memory.NewPrincipalCredentialRepo(store),
			Close:       func() error { return nil },
		}, nil
	}
}

func buildMirror(ctx context.Context, cfg config.Config) (ports.AttributeMirror, error) {
	switch cfg.Mirror {
	case config.MirrorHTTP:
		m, err := httpmirror.New(cfg.MirrorURL, cfg.ExternalTimeout)
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.MirrorS3:
		m, err := s3mirror.New(ctx, s3mirror.Config{
			Bucket:          cfg.MirrorBucket,
			Prefix:          cfg.MirrorPrefix,
			Endpoint:        cfg.MirrorEndpoint,
			Region:          cfg.MirrorRegion,
			AccessKeyID:     cfg.MirrorAccessKeyID,
			SecretAccessKey: cfg.MirrorSecretAccessKey,
		})
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.MirrorMemory:
		return mirrormem.NewMirror(), nil
	default:
		return noop.Mirror{}, nil
	}
}

func buildOracle(cfg config.Config) (ports.OwnershipOracle, error) {
	if cfg.OracleURL == "" {
		log.Printf("[oracle] SOUL_ORACLE_URL not set; using in-memory oracle with no known assets")
		return oraclemem.NewOracle(), nil
	}
	o, err := httporacle.New(cfg.OracleURL, cfg.ExternalTimeout)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func seedBackendKeys(ctx context.Context, register auth.RegisterUseCase, keys map[string]string) error {
	for principalID, key := range keys {
		if err := register.Seed(ctx, principalID, key); err != nil {
			return fmt.Errorf("seed %s: %w", principalID, err)
		}
		log.Printf("[auth] backend principal %s ready", principalID)
	}
	return nil
}
