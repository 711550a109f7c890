package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Alokchauhan110/Premium-Plan/config"
)

// Module provides the Redis client for fx. The client is nil when REDIS_ADDR is unset
var Module = fx.Module("redis",
	fx.Provide(provideClient),
)

func provideClient(lc fx.Lifecycle, cfg *config.RedisConfig, logger zerolog.Logger) *goredis.Client {
	if !cfg.Enabled() {
		logger.Info().Msg("Redis not configured, user locks are in-process")
		return nil
	}

	client := NewClient(cfg)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := Ping(ctx, client); err != nil {
				return err
			}
			logger.Info().Str("addr", cfg.Addr).Msg("Redis connected")
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Info().Msg("Closing Redis connection")
			return client.Close()
		},
	})

	return client
}
