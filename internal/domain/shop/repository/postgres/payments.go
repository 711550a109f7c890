package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/deps"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/dto"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
	shoperrors "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/errors"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new pending payment repository
func NewPaymentRepository(db *gorm.DB) deps.PaymentRepository {
	return &paymentRepository{db: db}
}

// Create inserts a new payment
func (r *paymentRepository) Create(ctx context.Context, payment *entities.PendingPayment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment %s: %w", payment.ID, err)
	}
	return nil
}

// GetByID returns a payment by id
func (r *paymentRepository) GetByID(ctx context.Context, id string) (*entities.PendingPayment, error) {
	var payment entities.PendingPayment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", shoperrors.ErrPaymentNotFound, id)
		}
		return nil, fmt.Errorf("failed to get payment %s: %w", id, err)
	}
	return &payment, nil
}

// FindByUserPlan returns the user's payments for a plan in the given status
func (r *paymentRepository) FindByUserPlan(ctx context.Context, userID int64, planKey string, status entities.PaymentStatus) ([]entities.PendingPayment, error) {
	var payments []entities.PendingPayment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND plan_key = ? AND status = ?", userID, planKey, status).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find payments of user %d for %s: %w", userID, planKey, err)
	}
	return payments, nil
}

// ListByStatus returns payments in a status, newest first
func (r *paymentRepository) ListByStatus(ctx context.Context, status entities.PaymentStatus) ([]entities.PendingPayment, error) {
	var payments []entities.PendingPayment
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s payments: %w", status, err)
	}
	return payments, nil
}

// ListByUser returns the user's payments, newest first
func (r *paymentRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]entities.PendingPayment, error) {
	var payments []entities.PendingPayment
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments of user %d: %w", userID, err)
	}
	return payments, nil
}

// MarkSubmitted moves a pending payment to submitted with its proof
func (r *paymentRepository) MarkSubmitted(ctx context.Context, id string, proof dto.Proof, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&entities.PendingPayment{}).
		Where("id = ? AND status = ?", id, entities.PaymentStatusPending).
		Updates(map[string]any{
			"status":          entities.PaymentStatusSubmitted,
			"proof_reference": proof.FileID,
			"proof_kind":      proof.Kind,
			"submitted_at":    at,
		})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return fmt.Errorf("%w: %s", shoperrors.ErrPaymentUnderReview, id)
		}
		return fmt.Errorf("failed to submit payment %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", shoperrors.ErrNoPendingCheckout, id)
	}
	return nil
}

// SetAmount reprices a payment that is still pending
func (r *paymentRepository) SetAmount(ctx context.Context, id string, amount float64) error {
	err := r.db.WithContext(ctx).
		Model(&entities.PendingPayment{}).
		Where("id = ? AND status = ?", id, entities.PaymentStatusPending).
		Update("amount", amount).Error
	if err != nil {
		return fmt.Errorf("failed to set amount of payment %s: %w", id, err)
	}
	return nil
}

// SetArchiveKey stores where the proof was archived
func (r *paymentRepository) SetArchiveKey(ctx context.Context, id, key string) error {
	err := r.db.WithContext(ctx).
		Model(&entities.PendingPayment{}).
		Where("id = ?", id).
		Update("proof_archive_key", key).Error
	if err != nil {
		return fmt.Errorf("failed to set archive key of payment %s: %w", id, err)
	}
	return nil
}

// Approve moves a submitted payment to approved and inserts subscription in one transaction
func (r *paymentRepository) Approve(ctx context.Context, id string, adminID int64, at time.Time, subscription *entities.Subscription) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := decide(tx, id, entities.PaymentStatusApproved, adminID, at, ""); err != nil {
			return err
		}

		subscription.PaymentID = id
		if err := tx.Create(subscription).Error; err != nil {
			if isDuplicate(err) {
				return fmt.Errorf("%w: %s", shoperrors.ErrPaymentNotSubmitted, id)
			}
			return fmt.Errorf("failed to create subscription for payment %s: %w", id, err)
		}
		return nil
	})
}

// Reject moves a submitted payment to rejected
func (r *paymentRepository) Reject(ctx context.Context, id string, adminID int64, at time.Time, reason string) error {
	return decide(r.db.WithContext(ctx), id, entities.PaymentStatusRejected, adminID, at, reason)
}

// decide applies an admin decision only while the payment is submitted
func decide(db *gorm.DB, id string, status entities.PaymentStatus, adminID int64, at time.Time, reason string) error {
	res := db.Model(&entities.PendingPayment{}).
		Where("id = ? AND status = ?", id, entities.PaymentStatusSubmitted).
		Updates(map[string]any{
			"status":        status,
			"decided_at":    at,
			"decided_by":    adminID,
			"reject_reason": reason,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to mark payment %s %s: %w", id, status, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", shoperrors.ErrPaymentNotSubmitted, id)
	}
	return nil
}
