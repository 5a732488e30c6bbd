package services

import (
	"context"

	"park-stats-api/internal/models"
)

// StatsService defines the interface for Park API statistics operations
type StatsService interface {
	// GetStats always returns a response; live data when every upstream
	// call succeeds, the fallback stats otherwise.
	GetStats(ctx context.Context) *models.StatsResponse

	// Aggregate fetches and reduces live upstream data without falling back
	Aggregate(ctx context.Context) (*models.StatsResponse, error)
}

// Fetcher retrieves a raw JSON document from an upstream endpoint
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string) ([]byte, error)
}
