package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/cyberbirth/cyberbirth-backend/config"
	"github.com/redis/go-redis/v9"
)

// OpenRedis connects to Redis and fails fast if it is unreachable
func OpenRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}
