// Package shop contains the premium channel shop domain module
package shop

import (
	"context"
	"database/sql"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Alokchauhan110/Premium-Plan/config"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/consts"
	httpDelivery "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/delivery/http"
	kafkaDelivery "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/delivery/kafka"
	telegramDelivery "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/delivery/telegram"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/deps"
	kafkaRepo "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/repository/kafka"
	memoryRepo "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/repository/memory"
	postgresRepo "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/repository/postgres"
	redisRepo "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/repository/redis"
	s3Repo "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/repository/s3"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/usecase/buissines"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/workers"
	"github.com/Alokchauhan110/Premium-Plan/internal/infrastructure/http/server"
	"github.com/Alokchauhan110/Premium-Plan/internal/infrastructure/metrics"
	s3infra "github.com/Alokchauhan110/Premium-Plan/internal/infrastructure/s3"
	"github.com/Alokchauhan110/Premium-Plan/internal/infrastructure/telegram"
)

// Module provides shop domain components for fx dependency injection
var Module = fx.Module("shop",
	// Repository
	fx.Provide(postgresRepo.NewRepositories),
	fx.Provide(provideProducer),
	fx.Provide(provideProofArchive),
	fx.Provide(provideLocker),
	fx.Invoke(autoMigrateSchema),

	// Telegram adapters (need raw bot from infrastructure)
	fx.Provide(provideSender),
	fx.Provide(provideAccessProvider),

	// UseCase
	fx.Provide(provideUseCase),
	fx.Provide(func(uc *buissines.UseCase) deps.AdminNotifier { return uc }),

	// Delivery - Telegram
	fx.Provide(telegramDelivery.NewHandlers),
	fx.Provide(telegramDelivery.NewRouter),

	// Delivery - Kafka
	fx.Provide(kafkaDelivery.NewHandlers),

	// Delivery - HTTP
	fx.Provide(provideHealthHandler),
	fx.Provide(httpDelivery.NewRouter),

	// Workers
	workers.Module,

	fx.Invoke(registerRoutes),
)

// autoMigrateSchema creates the shop tables with gorm when no SQL migrations are configured
func autoMigrateSchema(db *gorm.DB, cfg *config.DatabaseConfig, logger zerolog.Logger) error {
	if cfg.MigrationsPath != "" {
		return nil
	}

	if err := postgresRepo.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to auto migrate shop schema: %w", err)
	}
	logger.Info().Msg("Shop schema auto-migrated")
	return nil
}

// provideProducer creates the Kafka producer and closes it on stop
func provideProducer(lc fx.Lifecycle, cfg *config.KafkaConfig, logger zerolog.Logger) (*kafkaRepo.Producer, error) {
	producer, err := kafkaRepo.NewProducer(cfg, logger.With().Str("component", "kafka-producer").Logger())
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return producer.Close()
		},
	})

	return producer, nil
}

// provideProofArchive returns nil when S3 is not configured
func provideProofArchive(client *s3infra.Client, logger zerolog.Logger) deps.ProofArchive {
	if client == nil {
		return nil
	}
	return s3Repo.NewProofArchive(client, logger.With().Str("component", "proof-archive").Logger())
}

// provideLocker selects the Redis locker when Redis is configured
func provideLocker(client *goredis.Client, cfg *config.RedisConfig, logger zerolog.Logger) deps.UserLocker {
	if client == nil {
		return memoryRepo.NewLocker()
	}
	return redisRepo.NewLocker(client, cfg.LockTTL, logger.With().Str("component", "user-locker").Logger())
}

func provideSender(bot *telegram.Bot, cfg *config.TelegramConfig, logger zerolog.Logger) *telegramDelivery.Sender {
	return telegramDelivery.NewSender(bot.Raw(), cfg.RequestTimeout, logger.With().Str("component", "sender").Logger())
}

func provideAccessProvider(bot *telegram.Bot, cfg *config.TelegramConfig, logger zerolog.Logger) *telegramDelivery.AccessProvider {
	return telegramDelivery.NewAccessProvider(
		bot.Raw(),
		bot.ID(),
		cfg.RequestTimeout,
		cfg.RateLimit,
		logger.With().Str("component", "access-provider").Logger(),
	)
}

type useCaseParams struct {
	fx.In

	Repos    *deps.Repositories
	Sender   *telegramDelivery.Sender
	Access   *telegramDelivery.AccessProvider
	Archive  deps.ProofArchive
	Producer *kafkaRepo.Producer
	Metrics  *metrics.Metrics
	Telegram *config.TelegramConfig
	Shop     *config.ShopConfig
	Logger   zerolog.Logger
}

func provideUseCase(p useCaseParams) *buissines.UseCase {
	return buissines.NewUseCase(
		buissines.Dependencies{
			Repos:     p.Repos,
			Messenger: p.Sender,
			Access:    p.Access,
			Files:     p.Sender,
			Archive:   p.Archive,
			Events:    p.Producer,
			Queue:     p.Producer,
			Metrics:   p.Metrics,
		},
		buissines.Settings{
			AdminIDs:            p.Telegram.AdminIDs,
			AllAccessName:       p.Shop.AllAccessName,
			AllAccessPrice:      p.Shop.AllAccessPrice,
			CurrencySymbol:      p.Shop.CurrencySymbol,
			PaymentInstructions: p.Shop.PaymentInstructions,
		},
		p.Logger.With().Str("component", "shop").Logger(),
	)
}

func provideHealthHandler(db *sql.DB, logger zerolog.Logger) *httpDelivery.HealthHandler {
	return httpDelivery.NewHealthHandler(db, logger)
}

// registerRoutes registers Telegram and HTTP routes and seeds the catalog on start
func registerRoutes(
	lc fx.Lifecycle,
	uc *buissines.UseCase,
	router *telegramDelivery.Router,
	httpRouter *httpDelivery.Router,
	srv *server.Server,
	bot *telegram.Bot,
	cfg *config.TelegramConfig,
	logger zerolog.Logger,
) {
	bot.SetDefaultHandler(router.RegisterRoutes(bot.Raw()))
	httpRouter.RegisterRoutes(srv.Router)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := uc.EnsureAllAccessPlan(ctx); err != nil {
				return err
			}

			callCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
			defer cancel()

			if _, err := bot.Raw().SetMyCommands(callCtx, &tgbot.SetMyCommandsParams{
				Commands: menuCommands(),
			}); err != nil {
				logger.Warn().Err(err).Msg("Failed to set bot command menu")
			}
			return nil
		},
	})
}

// menuCommands returns the commands shown in the Telegram menu. Admin commands stay hidden
func menuCommands() []models.BotCommand {
	commands := make([]models.BotCommand, 0, len(consts.AllCommands))
	for _, c := range consts.AllCommands {
		if c.AdminOnly {
			continue
		}
		commands = append(commands, models.BotCommand{
			Command:     c.Name,
			Description: c.Description,
		})
	}
	return commands
}
