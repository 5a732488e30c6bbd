package lambda

import (
	"context"
	"sync"
	"time"

	"park-stats-api/internal/config"
	"park-stats-api/pkg/server"
)

// ConfigLoader produces the configuration used to build the container
type ConfigLoader func() (*config.Config, error)

// ConnectionManager keeps the service container alive across warm Lambda invocations
type ConnectionManager struct {
	container   *server.Container
	lastUsed    time.Time
	mu          sync.RWMutex
	initialized bool
	loadConfig  ConfigLoader
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = NewConnectionManager(config.GetOptimizedConfig)
	})
	return globalConnectionManager
}

// NewConnectionManager creates a connection manager that loads configuration with loader
func NewConnectionManager(loader ConfigLoader) *ConnectionManager {
	if loader == nil {
		loader = config.GetOptimizedConfig
	}
	return &ConnectionManager{loadConfig: loader}
}

// Initialize builds the container from cfg. Calling it on an initialized
// manager is a no-op.
func (cm *ConnectionManager) Initialize(cfg *config.Config) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	return cm.initializeLocked(cfg)
}

func (cm *ConnectionManager) initializeLocked(cfg *config.Config) error {
	if cm.initialized {
		return nil
	}

	container, err := server.NewContainer(cfg)
	if err != nil {
		return err
	}

	cm.container = container
	cm.lastUsed = time.Now()
	cm.initialized = true
	return nil
}

// GetContainer returns the service container, initializing it on a cold start.
// A failed initialization is retried on the next call.
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*server.Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	if !cm.initialized {
		cfg, err := cm.loadConfig()
		if err != nil {
			return nil, err
		}
		config.ConfigureLogging(cfg.Logging)

		if err := cm.initializeLocked(cfg); err != nil {
			return nil, err
		}
	}

	cm.lastUsed = time.Now()
	return cm.container, nil
}

// IsHealthy checks if the connection manager is healthy
func (cm *ConnectionManager) IsHealthy() bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if !cm.initialized || cm.container == nil {
		return false
	}

	// Check if container is stale (older than 5 minutes)
	return time.Since(cm.lastUsed) < 5*time.Minute
}

// Cleanup performs cleanup operations
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		if err := cm.container.Close(); err != nil {
			return err
		}
		cm.container = nil
	}

	cm.initialized = false
	return nil
}
