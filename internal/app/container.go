package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ascend/internal/config"
	"ascend/internal/database"
	"ascend/internal/database/migration"
	dbpostgres "ascend/internal/database/postgres"
	"ascend/internal/database/seeder"
	"ascend/internal/infrastructure/cache"
	"ascend/internal/infrastructure/llm"
	"ascend/internal/infrastructure/storage"
	"ascend/migrations"
)

// Container owns the process-wide connections. Optional collaborators
// (object storage) are nil when not configured.
type Container struct {
	Config  config.Config
	Logger  *slog.Logger
	DB      database.DB
	Cache   *cache.Redis
	Storage *storage.S3
	LLM     *llm.Client
}

func NewContainer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(dbCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewS3(ctx, cfg.Storage)
	if err != nil {
		if !errors.Is(err, storage.ErrNotConfigured) {
			_ = db.Close()
			return nil, err
		}
		logger.Warn("object storage not configured, avatar uploads disabled")
	}

	return &Container{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Cache:   cache.NewRedis(ctx, cfg.Redis, logger),
		Storage: store,
		LLM:     llm.NewClient(cfg.LLM),
	}, nil
}

// Migrate applies the embedded migrations, or those under MIGRATIONS_DIR
// when it is set.
func (c *Container) Migrate(ctx context.Context) error {
	r := migration.Runner{FS: migrations.FS, Logger: c.Logger}
	if c.Config.App.MigrationsDir != "" {
		r = migration.Runner{Dir: c.Config.App.MigrationsDir, Logger: c.Logger}
	}
	if err := r.Run(ctx, c.DB.SQLDB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (c *Container) Seed(ctx context.Context) error {
	r := seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger}
	return r.Run(ctx, c.DB)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
