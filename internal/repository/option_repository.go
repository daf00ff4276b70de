package repository

import (
	"context"

	"poll-service/internal/models"

	"gorm.io/gorm"
)

type OptionRepository struct {
	db *gorm.DB
}

func NewOptionRepository(db *gorm.DB) *OptionRepository {
	return &OptionRepository{db: db}
}

// GetByPollID retrieves all options for a poll
func (r *OptionRepository) GetByPollID(ctx context.Context, pollID string) ([]models.Option, error) {
	var options []models.Option
	err := r.db.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Order("created_at ASC").
		Find(&options).Error
	return options, err
}

// GetByPollIDs retrieves the options for a whole page of polls in one query.
func (r *OptionRepository) GetByPollIDs(ctx context.Context, pollIDs []string) ([]models.Option, error) {
	var options []models.Option
	err := r.db.WithContext(ctx).
		Where("poll_id IN ?", pollIDs).
		Order("created_at ASC").
		Find(&options).Error
	return options, err
}

// BelongsToPoll reports whether the option is one of the poll's own options.
func (r *OptionRepository) BelongsToPoll(ctx context.Context, optionID, pollID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Option{}).
		Where("id = ? AND poll_id = ?", optionID, pollID).
		Count(&count).Error
	return count > 0, err
}
