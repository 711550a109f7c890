// Package logger contains logger infrastructure
package logger

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Alokchauhan110/Premium-Plan/config"
)

// Module provides logger for fx dependency injection
var Module = fx.Module("logger",
	fx.Provide(provideLogger),
)

// provideLogger creates logger from config, tagged with the service name
func provideLogger(logCfg *config.LoggingConfig, serviceCfg *config.ServiceConfig) zerolog.Logger {
	return New(logCfg.Level).With().Str("service", serviceCfg.Name).Logger()
}
