package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"park-stats-api/internal/models"
	"park-stats-api/internal/upstream"
)

// statsService implements the StatsService interface
type statsService struct {
	fetcher Fetcher
	now     func() time.Time
}

// NewStatsService creates a new stats service instance
func NewStatsService(fetcher Fetcher) StatsService {
	return NewStatsServiceWithClock(fetcher, time.Now)
}

// NewStatsServiceWithClock creates a stats service that timestamps responses with now
func NewStatsServiceWithClock(fetcher Fetcher, now func() time.Time) StatsService {
	if now == nil {
		now = time.Now
	}
	return &statsService{
		fetcher: fetcher,
		now:     now,
	}
}

// GetStats returns live stats, or the fallback stats if aggregation fails
func (s *statsService) GetStats(ctx context.Context) *models.StatsResponse {
	stats, err := s.Aggregate(ctx)
	if err != nil {
		fields := logrus.Fields{
			"error": err.Error(),
		}
		if endpoint := upstream.EndpointOf(err); endpoint != "" {
			fields["endpoint"] = endpoint
		}
		if status := upstream.StatusCodeOf(err); status != 0 {
			fields["status_code"] = status
		}
		logrus.WithFields(fields).Error("Park API error, serving fallback stats")

		return models.NewFallbackStats(s.now())
	}

	return stats
}

// Aggregate fetches products, tasks and docs concurrently and reduces them.
// The first failure cancels the remaining calls.
func (s *statsService) Aggregate(ctx context.Context) (*models.StatsResponse, error) {
	var products, tasks, docs []byte

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		products, err = s.fetcher.Fetch(groupCtx, upstream.ProductsEndpoint)
		return err
	})
	group.Go(func() (err error) {
		tasks, err = s.fetcher.Fetch(groupCtx, upstream.TasksEndpoint)
		return err
	})
	group.Go(func() (err error) {
		docs, err = s.fetcher.Fetch(groupCtx, upstream.DocsEndpoint)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	stats, err := models.NewStats(products, tasks, docs, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to reduce upstream data: %w", err)
	}

	return stats, nil
}
