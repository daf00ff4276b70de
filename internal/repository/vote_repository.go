package repository

import (
	"context"
	"errors"
	"time"

	"poll-service/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteRepository is the vote ledger: it owns every write to the votes table
// and the aggregate reads the tally is computed from.
type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Upsert records the vote, or moves the voter's existing vote on the poll to
// the new option. The single INSERT ... ON CONFLICT statement is atomic
// against racing casts for the same (poll_id, voter_id) key: whatever the
// interleaving, exactly one row survives, holding the last committed option.
func (r *VoteRepository) Upsert(ctx context.Context, vote *models.Vote) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "poll_id"}, {Name: "voter_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"option_id":  vote.OptionID,
			"updated_at": time.Now().UTC(),
		}),
	}).Create(vote).Error
}

// FindByPollAndVoter returns the voter's current vote on the poll, or nil
// when they have not voted.
func (r *VoteRepository) FindByPollAndVoter(ctx context.Context, pollID, voterID string) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("poll_id = ? AND voter_id = ?", pollID, voterID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// CountByOption returns vote counts grouped by option id. Options nobody has
// voted for do not appear here; the tally service fills those in from the
// option set.
func (r *VoteRepository) CountByOption(ctx context.Context, pollID string) (map[string]int64, error) {
	var rows []struct {
		OptionID string
		Count    int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Select("option_id, count(*) as count").
		Where("poll_id = ?", pollID).
		Group("option_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.OptionID] = row.Count
	}
	return counts, nil
}

// CountByPoll returns the total number of vote rows for a poll, which equals
// the number of distinct voters since each voter holds at most one row.
func (r *VoteRepository) CountByPoll(ctx context.Context, pollID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("poll_id = ?", pollID).
		Count(&count).Error
	return count, err
}
