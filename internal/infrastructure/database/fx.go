package database

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Alokchauhan110/Premium-Plan/config"
)

var Module = fx.Module("database",
	fx.Provide(NewPostgresDBWithLifecycle),
	fx.Provide(provideSQLDB),
)

// NewPostgresDBWithLifecycle connects, migrates the schema and closes the pool on stop
func NewPostgresDBWithLifecycle(
	lc fx.Lifecycle,
	cfg *config.DatabaseConfig,
	logCfg *config.LoggingConfig,
	logger zerolog.Logger,
) (*gorm.DB, error) {
	db, err := NewPostgresDB(cfg, logCfg.Level)
	if err != nil {
		return nil, err
	}

	if err := migrateSchema(db, cfg, logger); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				logger.Error().Err(err).Msg("Failed to get underlying sql.DB")
				return err
			}
			logger.Info().Msg("Closing database connection")
			return sqlDB.Close()
		},
	})

	logger.Info().
		Str("host", cfg.Host).
		Str("port", cfg.Port).
		Str("database", cfg.Name).
		Msg("Database connected")

	return db, nil
}

// migrateSchema runs SQL migrations when a path is configured. Without one each domain module migrates its own models
func migrateSchema(db *gorm.DB, cfg *config.DatabaseConfig, logger zerolog.Logger) error {
	if cfg.MigrationsPath == "" {
		logger.Info().Msg("No migrations path configured, skipping SQL migrations")
		return nil
	}

	if err := RunMigrations(db, cfg); err != nil {
		return err
	}
	logger.Info().Str("path", cfg.MigrationsPath).Msg("Database migrations completed successfully")
	return nil
}

func provideSQLDB(db *gorm.DB) (*sql.DB, error) {
	return db.DB()
}
