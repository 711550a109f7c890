// Package kafka contains Kafka repository implementations
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/Alokchauhan110/Premium-Plan/config"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/dto"
	shoperrors "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/errors"
)

// Producer implements deps.EventPublisher and deps.NotificationQueue.
// Without brokers events are dropped and notifications are refused with ErrQueueDisabled
type Producer struct {
	producer                sarama.SyncProducer
	topicEvents             string
	topicAdminNotifications string
	logger                  zerolog.Logger
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg *config.KafkaConfig, logger zerolog.Logger) (*Producer, error) {
	if !cfg.Enabled() {
		logger.Info().Msg("Kafka brokers not configured, events are disabled")
		return newProducer(nil, cfg, logger), nil
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Info().Strs("brokers", cfg.Brokers).Msg("Kafka producer initialized successfully")

	return newProducer(producer, cfg, logger), nil
}

func newProducer(producer sarama.SyncProducer, cfg *config.KafkaConfig, logger zerolog.Logger) *Producer {
	return &Producer{
		producer:                producer,
		topicEvents:             cfg.TopicEvents,
		topicAdminNotifications: cfg.TopicAdminNotifications,
		logger:                  logger,
	}
}

// Enabled reports whether messages reach Kafka
func (p *Producer) Enabled() bool {
	return p.producer != nil
}

// Publish sends a shop lifecycle event keyed by payment id
func (p *Producer) Publish(ctx context.Context, event dto.ShopEvent) error {
	if !p.Enabled() {
		p.logger.Debug().Str("type", event.Type).Msg("Kafka disabled, event dropped")
		return nil
	}

	key := event.PaymentID
	if key == "" {
		key = strconv.FormatInt(event.UserID, 10)
	}
	return p.sendEvent(ctx, p.topicEvents, key, event)
}

// EnqueueProofNotification hands a proof notification to the admin fan-out worker
func (p *Producer) EnqueueProofNotification(ctx context.Context, notification dto.ProofNotification) error {
	if !p.Enabled() {
		return shoperrors.ErrQueueDisabled
	}
	return p.sendEvent(ctx, p.topicAdminNotifications, notification.PaymentID, notification)
}

// sendEvent sends an event to specified Kafka topic
func (p *Producer) sendEvent(ctx context.Context, topic, key string, event interface{}) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(jsonData),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		p.logger.Error().Err(err).Str("topic", topic).Msg("Failed to send Kafka message")
		return fmt.Errorf("failed to send message to %s: %w", topic, err)
	}

	p.logger.Debug().
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Kafka message sent successfully")

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		p.logger.Error().Err(err).Msg("Failed to close Kafka producer")
		return err
	}
	p.logger.Info().Msg("Kafka producer closed successfully")
	return nil
}
