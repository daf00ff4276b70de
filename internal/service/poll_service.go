package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"poll-service/internal/apperrors"
	"poll-service/internal/models"
	"poll-service/internal/repository"
)

const (
	minTitleLength = 3
	minOptionCount = 2
)

// PollService is the façade over poll CRUD and tallying. Vote writes live in
// VoteService; everything else the API exposes goes through here.
type PollService struct {
	pollRepo   *repository.PollRepository
	optionRepo *repository.OptionRepository
	tally      *TallyService
}

func NewPollService(pollRepo *repository.PollRepository, optionRepo *repository.OptionRepository, tally *TallyService) *PollService {
	return &PollService{
		pollRepo:   pollRepo,
		optionRepo: optionRepo,
		tally:      tally,
	}
}

// Create validates the payload and inserts the poll with its options. Blank
// option entries are dropped before the minimum-count check, matching what
// the create form submits.
func (s *PollService) Create(ctx context.Context, ownerID string, req models.CreatePollRequest) (*models.Poll, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	title := strings.TrimSpace(req.Title)
	if utf8.RuneCountInString(title) < minTitleLength {
		return nil, apperrors.NewValidation("title must be at least 3 characters")
	}

	optionTexts := make([]string, 0, len(req.Options))
	for _, text := range req.Options {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			optionTexts = append(optionTexts, trimmed)
		}
	}
	if len(optionTexts) < minOptionCount {
		return nil, apperrors.NewValidation("at least 2 options are required")
	}

	poll := &models.Poll{
		Title:       title,
		Description: req.Description,
		OwnerID:     ownerID,
		IsActive:    true,
	}
	if err := s.pollRepo.Create(ctx, poll, optionTexts); err != nil {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}

	return poll, nil
}

// List returns one page of polls with their options attached. Options for
// the whole page come from a single batched query keyed by poll ids.
func (s *PollService) List(ctx context.Context, page, pageSize int) ([]models.PollWithOptions, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	polls, err := s.pollRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	if len(polls) == 0 {
		return []models.PollWithOptions{}, nil
	}

	pollIDs := make([]string, len(polls))
	for i, poll := range polls {
		pollIDs[i] = poll.ID
	}
	options, err := s.optionRepo.GetByPollIDs(ctx, pollIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch options: %w", err)
	}

	byPoll := make(map[string][]models.Option, len(polls))
	for _, option := range options {
		byPoll[option.PollID] = append(byPoll[option.PollID], option)
	}

	result := make([]models.PollWithOptions, len(polls))
	for i, poll := range polls {
		result[i] = models.PollWithOptions{
			Poll:    poll,
			Options: byPoll[poll.ID],
		}
	}
	return result, nil
}

// Detail returns one poll with its options and a freshly computed tally.
// viewerID may be empty; anonymous viewers still see counts.
func (s *PollService) Detail(ctx context.Context, pollID, viewerID string) (*models.PollDetailResponse, error) {
	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	options, err := s.optionRepo.GetByPollID(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch options: %w", err)
	}

	tally, err := s.tally.Compute(ctx, pollID, viewerID)
	if err != nil {
		return nil, err
	}

	return &models.PollDetailResponse{
		PollWithOptions: models.PollWithOptions{
			Poll:    *poll,
			Options: options,
		},
		Tally: *tally,
	}, nil
}

// Delete removes a poll. The ownership check lives in the repository so it
// shares the delete transaction.
func (s *PollService) Delete(ctx context.Context, pollID, requesterID string) error {
	if requesterID == "" {
		return apperrors.ErrUnauthenticated
	}
	return s.pollRepo.Delete(ctx, pollID, requesterID)
}
