package service_test

import (
	"context"
	"errors"
	"testing"

	"poll-service/internal/apperrors"
	"poll-service/internal/models"
	"poll-service/internal/repository"
	"poll-service/internal/service"
	"poll-service/internal/testutil"

	"gorm.io/gorm"
)

func newPollService(db *gorm.DB) *service.PollService {
	return service.NewPollService(
		repository.NewPollRepository(db),
		repository.NewOptionRepository(db),
		newTallyService(db),
	)
}

func TestCreatePollValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	polls := newPollService(db)
	owner := testutil.CreateTestUser(t, db, "owner@example.com")
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.CreatePollRequest
	}{
		{"short title", models.CreatePollRequest{Title: "Hi", Options: []string{"Go", "Rust"}}},
		{"whitespace title", models.CreatePollRequest{Title: "  a  ", Options: []string{"Go", "Rust"}}},
		{"short multibyte title", models.CreatePollRequest{Title: "語語", Options: []string{"Go", "Rust"}}},
		{"one option", models.CreatePollRequest{Title: "Language?", Options: []string{"Go"}}},
		{"blank options", models.CreatePollRequest{Title: "Language?", Options: []string{"Go", "   ", ""}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := polls.Create(ctx, owner.ID, tc.req)
			if !apperrors.IsValidation(err) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}

	var count int64
	db.Model(&models.Poll{}).Count(&count)
	if count != 0 {
		t.Errorf("Rejected creates must not write, found %d polls", count)
	}

	_, err := polls.Create(ctx, "", models.CreatePollRequest{Title: "Language?", Options: []string{"Go", "Rust"}})
	if !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated, got %v", err)
	}
}

func TestCreatePollTrimsOptions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	polls := newPollService(db)
	owner := testutil.CreateTestUser(t, db, "owner@example.com")

	poll, err := polls.Create(context.Background(), owner.ID, models.CreatePollRequest{
		Title:   "Language?",
		Options: []string{" Go ", "Rust", "   "},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var options []models.Option
	if err := db.Where("poll_id = ?", poll.ID).Find(&options).Error; err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("Expected blank option dropped, got %d options", len(options))
	}
	for _, option := range options {
		if option.OptionText != "Go" && option.OptionText != "Rust" {
			t.Errorf("Expected trimmed text, got %q", option.OptionText)
		}
	}
}

func TestListPollsAttachesOptions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	polls := newPollService(db)
	owner := testutil.CreateTestUser(t, db, "owner@example.com")
	testutil.CreateTestPoll(t, db, owner.ID, "Language?", "Go", "Rust")
	testutil.CreateTestPoll(t, db, owner.ID, "Editor?", "Vim", "Emacs", "Helix")

	page, err := polls.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("Expected 2 polls, got %d", len(page))
	}
	for _, poll := range page {
		if len(poll.Options) < 2 {
			t.Errorf("Poll %q missing options: %d", poll.Title, len(poll.Options))
		}
		for _, option := range poll.Options {
			if option.PollID != poll.ID {
				t.Errorf("Option %q attached to the wrong poll", option.OptionText)
			}
		}
	}

	empty, err := polls.List(context.Background(), 5, 10)
	if err != nil {
		t.Fatalf("List past the end should not error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected empty page, got %d", len(empty))
	}
}

func TestPollDetail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	polls := newPollService(db)
	votes := newVoteService(db)
	owner := testutil.CreateTestUser(t, db, "owner@example.com")
	voter := testutil.CreateTestUser(t, db, "voter@example.com")
	poll, options := testutil.CreateTestPoll(t, db, owner.ID, "Language?", "Go", "Rust")

	ctx := context.Background()
	if _, err := votes.CastVote(ctx, poll.ID, options[0].ID, voter.ID); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	detail, err := polls.Detail(ctx, poll.ID, voter.ID)
	if err != nil {
		t.Fatalf("Detail failed: %v", err)
	}
	if detail.ID != poll.ID || len(detail.Options) != 2 {
		t.Errorf("Unexpected detail: %+v", detail)
	}
	if detail.Tally.Total != 1 || detail.Tally.ViewerChoice != options[0].ID {
		t.Errorf("Unexpected tally: %+v", detail.Tally)
	}

	_, err = polls.Detail(ctx, "11111111-1111-1111-1111-111111111111", "")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeletePollThroughService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	polls := newPollService(db)
	owner := testutil.CreateTestUser(t, db, "owner@example.com")
	poll, _ := testutil.CreateTestPoll(t, db, owner.ID, "Language?", "Go", "Rust")

	if err := polls.Delete(context.Background(), poll.ID, ""); !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated, got %v", err)
	}
	if err := polls.Delete(context.Background(), poll.ID, owner.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}
