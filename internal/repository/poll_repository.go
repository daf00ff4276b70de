package repository

import (
	"context"
	"errors"

	"poll-service/internal/apperrors"
	"poll-service/internal/models"

	"gorm.io/gorm"
)

type PollRepository struct {
	db *gorm.DB
}

func NewPollRepository(db *gorm.DB) *PollRepository {
	return &PollRepository{db: db}
}

// Create inserts a poll and its options as a single transaction. If any
// option insert fails the poll row is rolled back with it, so a poll can
// never exist without its full option set.
func (r *PollRepository) Create(ctx context.Context, poll *models.Poll, optionTexts []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(poll).Error; err != nil {
			return err
		}
		options := make([]models.Option, 0, len(optionTexts))
		for _, text := range optionTexts {
			options = append(options, models.Option{
				PollID:     poll.ID,
				OptionText: text,
			})
		}
		return tx.Create(&options).Error
	})
}

// GetByID retrieves a single poll
func (r *PollRepository) GetByID(ctx context.Context, id string) (*models.Poll, error) {
	var poll models.Poll
	err := r.db.WithContext(ctx).First(&poll, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

// List returns one page of polls, newest first. An offset past the end
// yields an empty slice, not an error.
func (r *PollRepository) List(ctx context.Context, page, pageSize int) ([]models.Poll, error) {
	var polls []models.Poll
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&polls).Error
	return polls, err
}

// Delete removes a poll together with its options and votes. The three-table
// delete runs inside one transaction rather than trusting driver-level
// cascades. Only the owner may delete.
func (r *PollRepository) Delete(ctx context.Context, pollID, requesterID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var poll models.Poll
		if err := tx.First(&poll, "id = ?", pollID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}
		if poll.OwnerID != requesterID {
			return apperrors.ErrForbidden
		}
		if err := tx.Where("poll_id = ?", pollID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id = ?", pollID).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		return tx.Delete(&poll).Error
	})
}
