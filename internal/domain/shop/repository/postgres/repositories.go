// Package postgres contains gorm implementations of the shop store
package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/deps"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
)

// NewRepositories creates every shop repository over db
func NewRepositories(db *gorm.DB) *deps.Repositories {
	return &deps.Repositories{
		Users:         NewUserRepository(db),
		Channels:      NewChannelRepository(db),
		Plans:         NewPlanRepository(db),
		Subscriptions: NewSubscriptionRepository(db),
		Payments:      NewPaymentRepository(db),
		Sessions:      NewSessionRepository(db),
	}
}

// Models lists every persisted entity for schema migration
func Models() []any {
	return []any{
		&entities.User{},
		&entities.Channel{},
		&entities.AllAccessPlan{},
		&entities.Subscription{},
		&entities.PendingPayment{},
		&entities.Session{},
	}
}

// AutoMigrate creates the schema without SQL migration files
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	return db.Exec(submittedPaymentIndex).Error
}

// submittedPaymentIndex allows one payment under review per user and plan
const submittedPaymentIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_pending_payments_one_submitted
ON pending_payments (user_id, plan_key) WHERE status = 'submitted'`

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
