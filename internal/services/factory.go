package services

import (
	"fmt"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	StatsService StatsService
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(fetcher Fetcher) (*ServiceContainer, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("upstream fetcher cannot be nil")
	}

	return &ServiceContainer{
		StatsService: NewStatsService(fetcher),
	}, nil
}
