package service_test

import (
	"context"
	"errors"
	"testing"

	"poll-service/internal/apperrors"
	"poll-service/internal/events"
	"poll-service/internal/models"
	"poll-service/internal/repository"
	"poll-service/internal/service"
	"poll-service/internal/testutil"

	"gorm.io/gorm"
)

func newVoteService(db *gorm.DB) *service.VoteService {
	return service.NewVoteService(
		repository.NewPollRepository(db),
		repository.NewOptionRepository(db),
		repository.NewVoteRepository(db),
		events.NewProducer(nil, ""),
	)
}

func newTallyService(db *gorm.DB) *service.TallyService {
	return service.NewTallyService(
		repository.NewOptionRepository(db),
		repository.NewVoteRepository(db),
	)
}

func TestCastVoteFirstAndChange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	votes := newVoteService(db)
	owner := testutil.CreateTestUser(t, db, "owner@example.com")
	voter := testutil.CreateTestUser(t, db, "voter@example.com")
	poll, options := testutil.CreateTestPoll(t, db, owner.ID, "Language?", "Go", "Rust")

	ctx := context.Background()
	result, err := votes.CastVote(ctx, poll.ID, options[0].ID, voter.ID)
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if result.Updated {
		t.Error("First vote should report updated=false")
	}

	result, err = votes.CastVote(ctx, poll.ID, options[1].ID, voter.ID)
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if !result.Updated {
		t.Error("Changed vote should report updated=true")
	}

	var rows int64
	db.Model(&models.Vote{}).Where("poll_id = ? AND voter_id = ?", poll.ID, voter.ID).Count(&rows)
	if rows != 1 {
		t.Fatalf("Expected exactly 1 vote row, got %d", rows)
	}
}

func TestCastVoteSameOptionTwice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	votes := newVoteService(db)
	tally := newTallyService(db)
	owner := testutil.CreateTestUser(t, db, "owner@example.com")
	voter := testutil.CreateTestUser(t, db, "voter@example.com")
	poll, options := testutil.CreateTestPoll(t, db, owner.ID, "Language?", "Go", "Rust")

	ctx := context.Background()
	if _, err := votes.CastVote(ctx, poll.ID, options[0].ID, voter.ID); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	result, err := votes.CastVote(ctx, poll.ID, options[0].ID, voter.ID)
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if !result.Updated {
		t.Error("Repeat vote should report updated=true")
	}

	got, err := tally.Compute(ctx, poll.ID, "")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if got.PerOption[options[0].ID] != 1 || got.Total != 1 {
		t.Errorf("Repeat vote must leave the tally unchanged: %+v", got)
	}
}

func TestCastVoteRejectsForeignOption(t *testing.T) {
	db := testutil.SetupTestDB(t)
	votes := newVoteService(db)
	owner := testutil.CreateTestUser(t, db, "owner@example.com")
	voter := testutil.CreateTestUser(t, db, "voter@example.com")
	poll, _ := testutil.CreateTestPoll(t, db, owner.ID, "Language?", "Go", "Rust")
	_, otherOptions := testutil.CreateTestPoll(t, db, owner.ID, "Editor?", "Vim", "Emacs")

	_, err := votes.CastVote(context.Background(), poll.ID, otherOptions[0].ID, voter.ID)
	if !errors.Is(err, apperrors.ErrInvalidOption) {
		t.Errorf("Expected ErrInvalidOption for another poll's option, got %v", err)
	}

	var rows int64
	db.Model(&models.Vote{}).Count(&rows)
	if rows != 0 {
		t.Errorf("Rejected vote must not write, found %d rows", rows)
	}
}

func TestCastVotePollNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	votes := newVoteService(db)
	voter := testutil.CreateTestUser(t, db, "voter@example.com")

	_, err := votes.CastVote(context.Background(), "11111111-1111-1111-1111-111111111111", "22222222-2222-2222-2222-222222222222", voter.ID)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCastVoteRequiresVoter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	votes := newVoteService(db)
	owner := testutil.CreateTestUser(t, db, "owner@example.com")
	poll, options := testutil.CreateTestPoll(t, db, owner.ID, "Language?", "Go", "Rust")

	_, err := votes.CastVote(context.Background(), poll.ID, options[0].ID, "")
	if !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated, got %v", err)
	}
}
