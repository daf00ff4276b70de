package service

import (
	"context"
	"fmt"

	"poll-service/internal/models"
	"poll-service/internal/repository"
)

// TallyService derives per-option counts from the vote ledger at read time.
// Counts are never stored, so there is no counter to drift when votes move
// between options.
type TallyService struct {
	optionRepo *repository.OptionRepository
	voteRepo   *repository.VoteRepository
}

func NewTallyService(optionRepo *repository.OptionRepository, voteRepo *repository.VoteRepository) *TallyService {
	return &TallyService{
		optionRepo: optionRepo,
		voteRepo:   voteRepo,
	}
}

// Compute returns the current tally for a poll. Every option of the poll
// appears in PerOption, zero-vote options included. Total counts vote rows,
// one per voter. When viewerID is non-empty the viewer's own choice is
// looked up as well; that lookup never changes the counts.
func (s *TallyService) Compute(ctx context.Context, pollID, viewerID string) (*models.Tally, error) {
	options, err := s.optionRepo.GetByPollID(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get options: %w", err)
	}

	counts, err := s.voteRepo.CountByOption(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	total, err := s.voteRepo.CountByPoll(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count voters: %w", err)
	}

	tally := &models.Tally{
		PerOption: make(map[string]int64, len(options)),
		Total:     total,
	}
	for _, option := range options {
		tally.PerOption[option.ID] = counts[option.ID]
	}

	if viewerID != "" {
		vote, err := s.voteRepo.FindByPollAndVoter(ctx, pollID, viewerID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up viewer vote: %w", err)
		}
		if vote != nil {
			tally.ViewerChoice = vote.OptionID
		}
	}

	return tally, nil
}
