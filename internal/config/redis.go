package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// SetupRedis initializes the optional Redis client used by the counts cache.
// Returns (nil, nil) when the cache is disabled. The connection is verified
// with a single ping; the counts cache itself soft-fails at runtime, but a
// misconfigured address should surface at startup.
func SetupRedis(cfg *RedisConfig, logger *slog.Logger) (*redis.Client, error) {
	if cfg == nil {
		return nil, errors.New("redis config is nil")
	}
	if !cfg.Enabled {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.User,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	logger.Info("redis connected", slog.String("addr", cfg.Addr), slog.Int("db", cfg.DB))
	return client, nil
}
