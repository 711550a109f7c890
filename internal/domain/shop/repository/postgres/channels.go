package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/deps"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
	shoperrors "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/errors"
)

type channelRepository struct {
	db *gorm.DB
}

// NewChannelRepository creates a new channel repository
func NewChannelRepository(db *gorm.DB) deps.ChannelRepository {
	return &channelRepository{db: db}
}

// Create inserts a channel, returning a ConflictError when the key exists
func (r *channelRepository) Create(ctx context.Context, channel *entities.Channel) error {
	err := r.db.WithContext(ctx).Create(channel).Error
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: %s", shoperrors.ErrChannelKeyTaken, channel.Key)
		}
		return fmt.Errorf("failed to create channel %s: %w", channel.Key, err)
	}
	return nil
}

// ListActive returns active channels in creation order
func (r *channelRepository) ListActive(ctx context.Context) ([]entities.Channel, error) {
	var channels []entities.Channel
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&channels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active channels: %w", err)
	}
	return channels, nil
}

// ListAll returns every channel in creation order
func (r *channelRepository) ListAll(ctx context.Context) ([]entities.Channel, error) {
	var channels []entities.Channel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&channels).Error; err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	return channels, nil
}

// GetByKey returns a channel by key regardless of its active flag
func (r *channelRepository) GetByKey(ctx context.Context, key string) (*entities.Channel, error) {
	var channel entities.Channel
	err := r.db.WithContext(ctx).Where("channel_key = ?", key).First(&channel).Error
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", shoperrors.ErrChannelNotFound, key)
		}
		return nil, fmt.Errorf("failed to get channel %s: %w", key, err)
	}
	return &channel, nil
}

// SetActive toggles the active flag of a channel
func (r *channelRepository) SetActive(ctx context.Context, key string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Channel{}).
		Where("channel_key = ?", key).
		Update("active", active)
	if res.Error != nil {
		return fmt.Errorf("failed to update channel %s: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", shoperrors.ErrChannelNotFound, key)
	}
	return nil
}
