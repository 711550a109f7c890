// Package workers contains background workers for the shop domain
package workers

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/Alokchauhan110/Premium-Plan/config"
	kafkaHandlers "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/delivery/kafka"
)

// messageReader is the part of *kafka.Reader used by the consumer
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// AdminNotificationConsumer consumes queued proof notifications from Kafka.
// It is idle when no brokers are configured
type AdminNotificationConsumer struct {
	reader   messageReader
	handlers *kafkaHandlers.Handlers
	logger   zerolog.Logger
	done     chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewAdminNotificationConsumer creates new Kafka consumer for admin notifications
func NewAdminNotificationConsumer(cfg *config.KafkaConfig, handlers *kafkaHandlers.Handlers, logger zerolog.Logger) *AdminNotificationConsumer {
	logger = logger.With().Str("component", "admin-notification-consumer").Logger()

	if !cfg.Enabled() {
		logger.Info().Msg("Kafka brokers not configured, admin notifications are sent inline")
		return newAdminNotificationConsumer(nil, handlers, logger)
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.TopicAdminNotifications,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Str("group_id", cfg.GroupID).
		Str("topic", cfg.TopicAdminNotifications).
		Msg("Kafka admin notification consumer initialized")

	return newAdminNotificationConsumer(reader, handlers, logger)
}

func newAdminNotificationConsumer(reader messageReader, handlers *kafkaHandlers.Handlers, logger zerolog.Logger) *AdminNotificationConsumer {
	ctx, cancel := context.WithCancel(context.Background())

	return &AdminNotificationConsumer{
		reader:   reader,
		handlers: handlers,
		logger:   logger,
		done:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts consuming messages from Kafka
func (c *AdminNotificationConsumer) Start() {
	if c.reader == nil {
		close(c.done)
		return
	}

	c.logger.Info().Msg("Starting Kafka admin notification consumer...")

	go func() {
		defer close(c.done)

		for {
			msg, err := c.reader.ReadMessage(c.ctx)
			if err != nil {
				if c.ctx.Err() != nil {
					c.logger.Info().Msg("Kafka admin notification consumer stopped by context cancellation")
					return
				}
				c.logger.Error().Err(err).Msg("Failed to read message from Kafka")
				continue
			}

			c.logger.Debug().
				Str("topic", msg.Topic).
				Int("partition", msg.Partition).
				Int64("offset", msg.Offset).
				Msg("Received message from Kafka")

			// The offset is committed either way, a failed fan-out is only logged
			if err := c.handlers.HandleProofNotification(c.ctx, msg.Value); err != nil {
				c.logger.Error().Err(err).Int64("offset", msg.Offset).Msg("Failed to handle proof notification")
			}
		}
	}()
}

// Stop stops the consumer gracefully
func (c *AdminNotificationConsumer) Stop() error {
	c.cancel()

	if c.reader == nil {
		return nil
	}

	c.logger.Info().Msg("Stopping Kafka admin notification consumer...")
	<-c.done

	if err := c.reader.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Failed to close Kafka reader")
		return err
	}

	c.logger.Info().Msg("Kafka admin notification consumer stopped successfully")
	return nil
}
