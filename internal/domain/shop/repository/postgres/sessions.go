package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/deps"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) deps.SessionRepository {
	return &sessionRepository{db: db}
}

// Get returns the user's session, an idle one when none is stored
func (r *sessionRepository) Get(ctx context.Context, userID int64) (*entities.Session, error) {
	var session entities.Session
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&session).Error
	if err != nil {
		if isNotFound(err) {
			return &entities.Session{UserID: userID, OnboardingState: entities.OnboardingIdle}, nil
		}
		return nil, fmt.Errorf("failed to get session of user %d: %w", userID, err)
	}
	return &session, nil
}

// Save stores the session
func (r *sessionRepository) Save(ctx context.Context, session *entities.Session) error {
	if session.OnboardingState == "" {
		session.OnboardingState = entities.OnboardingIdle
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"pending_plan_key",
				"pending_payment_id",
				"onboarding_state",
				"draft_name",
				"draft_price",
				"draft_demo_link",
				"updated_at",
			}),
		}).
		Create(session).Error
	if err != nil {
		return fmt.Errorf("failed to save session of user %d: %w", session.UserID, err)
	}
	return nil
}
