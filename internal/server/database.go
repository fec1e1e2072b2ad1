package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/cardscan/internal/common"
	repo "github.com/joseph-ayodele/cardscan/internal/repository"
)

// ConnectDB opens the scans database, pings it and brings the schema up to date.
func ConnectDB(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*repo.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := repo.Open(ctx, repo.ConfigFrom(cfg), logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}
	if err := db.HealthCheck(ctx, 5*time.Second); err != nil {
		db.Close()
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
