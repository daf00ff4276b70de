package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"poll-service/internal/config"
	"poll-service/internal/database"
	"poll-service/internal/models"
	"poll-service/internal/repository"
	"poll-service/internal/service"
)

// Seeds a demo account and a sample poll for local development.
func main() {
	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.Database.DSN())
	if err != nil {
		slog.Error("Failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := repository.NewUserRepository(db)
	pollRepo := repository.NewPollRepository(db)
	optionRepo := repository.NewOptionRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expire)
	tallyService := service.NewTallyService(optionRepo, voteRepo)
	pollService := service.NewPollService(pollRepo, optionRepo, tallyService)

	user, err := authService.Register(ctx, models.RegisterRequest{
		Email:    "demo@example.com",
		Password: "demopassword",
	})
	if err != nil {
		slog.Error("Failed to seed user", "error", err)
		os.Exit(1)
	}

	poll, err := pollService.Create(ctx, user.ID, models.CreatePollRequest{
		Title:       "Favorite language?",
		Description: "Pick one",
		Options:     []string{"Go", "Rust", "Python"},
	})
	if err != nil {
		slog.Error("Failed to seed poll", "error", err)
		os.Exit(1)
	}

	slog.Info("Seed complete", "user", user.Email, "poll", poll.ID)
}
