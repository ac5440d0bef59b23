// Package repository provides the initialization for repository implementations
package repository

import (
	"fmt"

	"github.com/roomboard/roomboard/internal/config"
	"github.com/roomboard/roomboard/internal/repository/memory"
	"github.com/roomboard/roomboard/internal/repository/redis"
)

// Constructor hooks filled in by init; tests may swap them to inject fakes
var (
	newRedisRepository  func(cfg config.RedisConfig) (Repository, error)
	newMemoryRepository func() Repository
)

// init registers the actual repository implementations
func init() {
	newRedisRepository = func(cfg config.RedisConfig) (Repository, error) {
		return redis.NewRepository(cfg)
	}

	newMemoryRepository = func() Repository {
		return memory.NewRepository()
	}
}

// NewRepository selects a repository implementation from configuration:
// Redis when enabled, in-memory otherwise
func NewRepository(cfg config.RedisConfig) (Repository, error) {
	if cfg.Enabled {
		repo, err := newRedisRepository(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis repository: %w", err)
		}
		return repo, nil
	}

	return newMemoryRepository(), nil
}
