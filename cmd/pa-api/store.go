package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/product-api/internal/config"
	"github.com/tuanvumaihuynh/product-api/internal/repository"
	"github.com/tuanvumaihuynh/product-api/internal/storage/db"
)

type store struct {
	productRepo repository.ProductRepository
	// healthChecker is nil for the in-memory store.
	healthChecker db.HealthChecker
	close         func()
}

// openStore builds the product store selected by cfg.Driver. An unreachable
// Postgres server is logged and not fatal: the pool connects lazily and
// requests fail with 500 until it is back.
func openStore(ctx context.Context, cfg config.Storage, pgCfg config.Postgres, logger *slog.Logger) (store, error) {
	switch cfg.Driver {
	case config.StorageDriverPostgres:
		pgxPool, err := db.NewPgxPool(ctx, pgCfg)
		if err != nil {
			return store{}, fmt.Errorf("create pgx pool: %w", err)
		}

		if err := db.Ping(ctx, pgxPool); err != nil {
			logger.ErrorContext(ctx, "error connecting to database", slog.Any("error", err))
		} else if pgCfg.AutoMigrate {
			if err := db.Migrate(ctx, pgxPool, logger); err != nil {
				logger.ErrorContext(ctx, "error migrating database", slog.Any("error", err))
			}
		}

		dbClient := db.NewClient(pgxPool)
		return store{
			productRepo:   repository.NewProductRepository(dbClient),
			healthChecker: dbClient,
			close:         pgxPool.Close,
		}, nil

	case config.StorageDriverSQLite:
		client, err := db.NewSQLiteClient(cfg.SQLitePath)
		if err != nil {
			return store{}, fmt.Errorf("open sqlite: %w", err)
		}

		if err := repository.AutoMigrateGorm(ctx, client.DB); err != nil {
			_ = client.Close()
			return store{}, err
		}

		return store{
			productRepo:   repository.NewGormProductRepository(client.DB),
			healthChecker: client,
			close: func() {
				if err := client.Close(); err != nil {
					logger.ErrorContext(ctx, "error closing sqlite", slog.Any("error", err))
				}
			},
		}, nil

	case config.StorageDriverMemory:
		logger.WarnContext(ctx, "using in-memory store, products are lost on restart")
		return store{
			productRepo: repository.NewMemoryProductRepository(),
			close:       func() {},
		}, nil

	default:
		return store{}, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
