package store

import (
	"fmt"

	"github.com/A5TEX/HSLU-Module-Master/pkg/config"
)

// New selects the store backend from configuration.
func New(cfg *config.Config) (Store, error) {
	switch cfg.Storage.Backend {
	case "", "file":
		return NewFileStore(cfg.Storage.Path)
	case "redis":
		if cfg.Storage.RedisURL == "" {
			return nil, fmt.Errorf("storage backend redis requires redis_url")
		}
		return NewRedisStore(cfg.Storage.RedisURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
