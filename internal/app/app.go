// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/Alokchauhan110/Premium-Plan/config"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain"
	"github.com/Alokchauhan110/Premium-Plan/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, database, redis, s3, metrics, telegram bot, http, grpc)
		infrastructure.Module,

		// Domain (shop business logic)
		domain.Module,
	)
}
