package s3

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Alokchauhan110/Premium-Plan/config"
)

// Module provides the S3/MinIO client for fx. The client is nil when S3_ENDPOINT is unset
var Module = fx.Module("s3",
	fx.Provide(provideClient),
)

func provideClient(lc fx.Lifecycle, cfg *config.S3Config, logger zerolog.Logger) (*Client, error) {
	if !cfg.Enabled() {
		logger.Info().Msg("S3 endpoint not configured, payment proofs are not archived")
		return nil, nil
	}

	client, err := NewClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info().Msg("initializing S3/MinIO client...")
			if err := client.EnsureBucket(ctx); err != nil {
				return err
			}
			logger.Info().Msg("S3/MinIO client initialized successfully")
			return nil
		},
	})

	return client, nil
}
