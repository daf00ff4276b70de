package service

import (
	"context"
	"fmt"

	"poll-service/internal/apperrors"
	"poll-service/internal/events"
	"poll-service/internal/models"
	"poll-service/internal/repository"
)

// VoteService enforces the one-current-vote-per-(poll, voter) rule. All
// writes go through the vote repository's atomic upsert; this layer adds the
// business checks around it.
type VoteService struct {
	pollRepo   *repository.PollRepository
	optionRepo *repository.OptionRepository
	voteRepo   *repository.VoteRepository
	producer   *events.Producer
}

func NewVoteService(
	pollRepo *repository.PollRepository,
	optionRepo *repository.OptionRepository,
	voteRepo *repository.VoteRepository,
	producer *events.Producer,
) *VoteService {
	return &VoteService{
		pollRepo:   pollRepo,
		optionRepo: optionRepo,
		voteRepo:   voteRepo,
		producer:   producer,
	}
}

// CastVote records voterID's choice on a poll, moving their existing vote if
// they have one. The returned flag is true when a prior vote was replaced.
// Mismatched option/poll pairs are rejected before any write.
func (s *VoteService) CastVote(ctx context.Context, pollID, optionID, voterID string) (*models.CastVoteResponse, error) {
	if voterID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		return nil, err
	}

	ok, err := s.optionRepo.BelongsToPoll(ctx, optionID, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to check option: %w", err)
	}
	if !ok {
		return nil, apperrors.ErrInvalidOption
	}

	// The flag is informational; correctness comes from the upsert below,
	// not from this read.
	existing, err := s.voteRepo.FindByPollAndVoter(ctx, pollID, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing vote: %w", err)
	}

	vote := &models.Vote{
		PollID:   pollID,
		OptionID: optionID,
		VoterID:  voterID,
	}
	if err := s.voteRepo.Upsert(ctx, vote); err != nil {
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	updated := existing != nil
	s.producer.PublishVote(ctx, events.VoteEvent{
		PollID:   pollID,
		OptionID: optionID,
		VoterID:  voterID,
		Updated:  updated,
	})

	return &models.CastVoteResponse{Updated: updated}, nil
}
