package store

import (
	"context"
	"fmt"

	"storefront/config"
)

// Open builds the backend selected by cfg.StateBackend.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.StateBackend {
	case "memory":
		return NewMemoryBackend(), nil
	case "file", "":
		return NewFileBackend(cfg.StateDir)
	case "redis":
		opt, err := RedisOptions(cfg.RedisURL, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		return ConnectRedis(ctx, opt)
	case "postgres":
		return ConnectPostgres(ctx, cfg.PostgresDSN())
	}
	return nil, fmt.Errorf("unknown state backend %q", cfg.StateBackend)
}
