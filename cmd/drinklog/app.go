package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vbonduro/drinklog/internal/catalog"
	"github.com/vbonduro/drinklog/internal/catalog/convex"
	"github.com/vbonduro/drinklog/internal/config"
	"github.com/vbonduro/drinklog/internal/db"
	"github.com/vbonduro/drinklog/internal/kv"
	kvfile "github.com/vbonduro/drinklog/internal/kv/file"
	kvredis "github.com/vbonduro/drinklog/internal/kv/redis"
	kvsqlite "github.com/vbonduro/drinklog/internal/kv/sqlite"
	"github.com/vbonduro/drinklog/internal/logging"
	"github.com/vbonduro/drinklog/internal/service"
	"github.com/vbonduro/drinklog/internal/store"
)

// app holds the wired components shared by every command.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	kv      kv.Store
	ledger  *service.Ledger
	catalog *catalog.Service
	remote  *convex.Client
	closers []func()
}

// newApp loads configuration, applies the persistent flags and wires the
// stores and services.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
		cfg.StoreBackend = "sqlite"
	}
	if convexURL != "" {
		cfg.ConvexURL = convexURL
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	a := &app{cfg: cfg, logger: logger, closers: []func(){cleanup}}

	if err := a.wire(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire(ctx context.Context) error {
	s, err := a.openKV(ctx)
	if err != nil {
		return err
	}
	a.kv = s

	loc, err := a.cfg.Location()
	if err != nil {
		return err
	}

	a.ledger, err = service.NewLedger(ctx,
		store.NewEntryStore(a.kv),
		store.NewProfileStore(a.kv),
		a.logger,
		service.WithLocation(loc),
	)
	if err != nil {
		return err
	}

	var remote catalog.Provider
	if a.cfg.ConvexURL != "" {
		a.remote = convex.NewClient(a.cfg.ConvexURL)
		remote = a.remote
		a.logger.Info("using Convex catalog backend", "url", a.cfg.ConvexURL)
	}
	a.catalog = catalog.NewService(ctx, remote, store.NewCatalogStore(a.kv), a.logger,
		catalog.WithTTL(a.cfg.CatalogTTL),
	)
	return nil
}

func (a *app) openKV(ctx context.Context) (kv.Store, error) {
	switch a.cfg.StoreBackend {
	case "file":
		s, err := kvfile.NewStore(a.cfg.DataDir)
		if err != nil {
			return nil, err
		}
		a.logger.Info("using file store", "dir", a.cfg.DataDir)
		return s, nil
	case "redis":
		s, client, err := kvredis.Open(ctx, a.cfg.RedisAddr, a.cfg.RedisPrefix)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() {
			if err := client.Close(); err != nil {
				a.logger.Error("failed to close redis client", "error", err)
			}
		})
		a.logger.Info("using redis store", "addr", a.cfg.RedisAddr)
		return s, nil
	case "memory":
		a.logger.Warn("using in-memory store; data is lost on exit")
		return kv.NewMemory(), nil
	default:
		database, err := db.Open(a.cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.closers = append(a.closers, closeDB(a.logger, database))
		a.logger.Info("using sqlite store", "path", a.cfg.DBPath)
		return kvsqlite.NewStore(database), nil
	}
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func closeDB(logger *slog.Logger, database *sql.DB) func() {
	return func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}
}

// withApp runs fn against a freshly wired app and closes it afterwards.
func withApp(ctx context.Context, fn func(*app) error) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func (a *app) requireRemote() error {
	if a.remote == nil {
		return fmt.Errorf("no Convex deployment configured; set CONVEX_URL or --convex-url")
	}
	return nil
}
