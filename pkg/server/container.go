package server

import (
	"fmt"

	"park-stats-api/internal/config"
	"park-stats-api/internal/services"
	"park-stats-api/internal/upstream"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	StatsService   services.StatsService
	UpstreamClient *upstream.Client

	// Internal dependencies
	services *services.ServiceContainer
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	client := upstream.NewClient(upstream.ClientConfig{
		BaseURL: cfg.Upstream.BaseURL,
		Token:   cfg.Upstream.Token,
		Timeout: cfg.Upstream.Timeout,
	})

	serviceContainer, err := services.NewServiceContainer(client)
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	return &Container{
		Config:         cfg,
		StatsService:   serviceContainer.StatsService,
		UpstreamClient: client,
		services:       serviceContainer,
	}, nil
}

// Close cleans up all resources
func (c *Container) Close() error {
	c.services = nil
	return nil
}
