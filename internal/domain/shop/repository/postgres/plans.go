package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/deps"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
	shoperrors "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/errors"
)

// allAccessPlanID is the primary key of the singleton plan row
const allAccessPlanID = 1

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new all-access plan repository
func NewPlanRepository(db *gorm.DB) deps.PlanRepository {
	return &planRepository{db: db}
}

// EnsureSeeded inserts plan unless a row already exists
func (r *planRepository) EnsureSeeded(ctx context.Context, plan *entities.AllAccessPlan) error {
	plan.ID = allAccessPlanID
	if plan.IncludedChannelKeys == nil {
		plan.IncludedChannelKeys = []string{}
	}

	err := r.db.WithContext(ctx).
		Where(entities.AllAccessPlan{ID: allAccessPlanID}).
		Attrs(*plan).
		FirstOrCreate(plan).Error
	if err != nil {
		return fmt.Errorf("failed to seed all-access plan: %w", err)
	}
	return nil
}

// Get returns the singleton plan
func (r *planRepository) Get(ctx context.Context) (*entities.AllAccessPlan, error) {
	var plan entities.AllAccessPlan
	err := r.db.WithContext(ctx).First(&plan, allAccessPlanID).Error
	if err != nil {
		if isNotFound(err) {
			return nil, shoperrors.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get all-access plan: %w", err)
	}
	return &plan, nil
}

// SetActive toggles the plan
func (r *planRepository) SetActive(ctx context.Context, active bool) error {
	return r.update(ctx, "active", active)
}

// SetPrice changes the plan price
func (r *planRepository) SetPrice(ctx context.Context, price float64) error {
	return r.update(ctx, "price", price)
}

func (r *planRepository) update(ctx context.Context, column string, value any) error {
	res := r.db.WithContext(ctx).
		Model(&entities.AllAccessPlan{}).
		Where("id = ?", allAccessPlanID).
		Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("failed to update all-access plan %s: %w", column, res.Error)
	}
	if res.RowsAffected == 0 {
		return shoperrors.ErrPlanNotFound
	}
	return nil
}
