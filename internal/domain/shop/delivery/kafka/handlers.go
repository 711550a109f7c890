// Package kafka contains Kafka delivery handlers
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/deps"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/dto"
)

// Handlers contains Kafka message handlers
type Handlers struct {
	notifier deps.AdminNotifier
	logger   zerolog.Logger
}

// NewHandlers creates new Kafka handlers
func NewHandlers(notifier deps.AdminNotifier, logger zerolog.Logger) *Handlers {
	return &Handlers{
		notifier: notifier,
		logger:   logger,
	}
}

// HandleProofNotification fans a queued proof notification out to the administrators
func (h *Handlers) HandleProofNotification(ctx context.Context, data []byte) error {
	var notification dto.ProofNotification
	if err := json.Unmarshal(data, &notification); err != nil {
		h.logger.Error().Err(err).Str("data", string(data)).Msg("Failed to unmarshal proof notification")
		return fmt.Errorf("failed to unmarshal proof notification: %w", err)
	}

	if notification.PaymentID == "" {
		return fmt.Errorf("proof notification without payment id")
	}

	h.logger.Info().
		Str("payment_id", notification.PaymentID).
		Int64("user_id", notification.UserID).
		Str("plan_key", notification.PlanKey).
		Msg("Processing proof notification")

	if err := h.notifier.NotifyAdmins(ctx, notification); err != nil {
		h.logger.Error().Err(err).Str("payment_id", notification.PaymentID).Msg("Failed to notify administrators")
		return err
	}

	h.logger.Info().Str("payment_id", notification.PaymentID).Msg("Administrators notified")
	return nil
}
