package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/deps"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
	pkgerrors "github.com/Alokchauhan110/Premium-Plan/pkg/errors"
)

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) deps.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// ListByUser returns the user's subscriptions, latest end date first
func (r *subscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]entities.Subscription, error) {
	var subs []entities.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("end_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions of user %d: %w", userID, err)
	}
	return subs, nil
}

// GetByPaymentID returns the subscription created by a payment
func (r *subscriptionRepository) GetByPaymentID(ctx context.Context, paymentID string) (*entities.Subscription, error) {
	var sub entities.Subscription
	err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&sub).Error
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.NewNotFoundError("subscription for payment " + paymentID + " not found")
		}
		return nil, fmt.Errorf("failed to get subscription of payment %s: %w", paymentID, err)
	}
	return &sub, nil
}

// MarkInvoiceSent flags the invoice of a subscription as delivered
func (r *subscriptionRepository) MarkInvoiceSent(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("id = ?", id).
		Update("invoice_sent", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark invoice sent for subscription %d: %w", id, err)
	}
	return nil
}
