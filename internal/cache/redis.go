package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/lshigami/questree/config"
	"github.com/rs/zerolog/log"
)

// NewRedisClient returns nil when REDIS_ADDR is not configured.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("REDIS_ADDR not set, redis-backed features disabled")
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis at %s: %w", cfg.Redis.Addr, err)
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connected")
	return client, nil
}

func NewTreeCache(client *redis.Client, cfg *config.Config) TreeCache {
	if client == nil {
		return NewNoopTreeCache()
	}
	return NewRedisTreeCache(client, cfg.Tree.CacheTTL)
}
