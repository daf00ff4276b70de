package testutil

import (
	"context"
	"testing"

	"poll-service/internal/database"
	"poll-service/internal/models"
	"poll-service/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a fresh in-memory sqlite database with the full schema.
// Connections are capped at one so concurrent test goroutines serialize at
// the pool instead of tripping sqlite's single-writer lock.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CreateTestUser inserts a user and returns it.
func CreateTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, Password: "hashed"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestPoll inserts a poll with the given option texts and returns the
// poll and its options in insertion order.
func CreateTestPoll(t *testing.T, db *gorm.DB, ownerID, title string, optionTexts ...string) (*models.Poll, []models.Option) {
	t.Helper()

	pollRepo := repository.NewPollRepository(db)
	poll := &models.Poll{Title: title, OwnerID: ownerID, IsActive: true}
	if err := pollRepo.Create(context.Background(), poll, optionTexts); err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	var stored []models.Option
	if err := db.Where("poll_id = ?", poll.ID).Find(&stored).Error; err != nil {
		t.Fatalf("Failed to fetch test poll options: %v", err)
	}
	if len(stored) != len(optionTexts) {
		t.Fatalf("Expected %d options, got %d", len(optionTexts), len(stored))
	}

	// Return options aligned with the optionTexts argument order.
	byText := make(map[string]models.Option, len(stored))
	for _, option := range stored {
		byText[option.OptionText] = option
	}
	options := make([]models.Option, len(optionTexts))
	for i, text := range optionTexts {
		options[i] = byText[text]
	}
	return poll, options
}
