package main

import (
	"log/slog"
	"os"

	"poll-service/internal/config"
	"poll-service/internal/database"
)

// Standalone migration runner for deployments where the server process is
// not allowed to alter the schema.
func main() {
	cfg := config.Load()

	if _, err := database.NewPostgresConnection(cfg.Database.DSN()); err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Migration completed")
}
