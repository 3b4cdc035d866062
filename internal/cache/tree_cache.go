package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/lshigami/questree/internal/model"
	"github.com/rs/zerolog/log"
)

const DefaultTreeTTL = 10 * time.Minute

// TreeCache holds fully loaded tests (questions and choices included) so that
// every submission does not have to reload the tree from postgres.
type TreeCache interface {
	Get(ctx context.Context, testID uint) (*model.Test, bool)
	Set(ctx context.Context, test *model.Test)
	Invalidate(ctx context.Context, testID uint)
}

type redisTreeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTreeCache(client *redis.Client, ttl time.Duration) TreeCache {
	if ttl <= 0 {
		ttl = DefaultTreeTTL
	}
	return &redisTreeCache{client: client, ttl: ttl}
}

func treeKey(testID uint) string {
	return fmt.Sprintf("tree:%d", testID)
}

func (c *redisTreeCache) Get(ctx context.Context, testID uint) (*model.Test, bool) {
	data, err := c.client.Get(ctx, treeKey(testID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Uint("testID", testID).Msg("Tree cache read failed")
		}
		return nil, false
	}
	var test model.Test
	if err := json.Unmarshal(data, &test); err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("Dropping undecodable tree cache entry")
		c.Invalidate(ctx, testID)
		return nil, false
	}
	return &test, true
}

func (c *redisTreeCache) Set(ctx context.Context, test *model.Test) {
	data, err := json.Marshal(test)
	if err != nil {
		log.Warn().Err(err).Uint("testID", test.ID).Msg("Tree cache encode failed")
		return
	}
	if err := c.client.Set(ctx, treeKey(test.ID), data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Uint("testID", test.ID).Msg("Tree cache write failed")
	}
}

func (c *redisTreeCache) Invalidate(ctx context.Context, testID uint) {
	if err := c.client.Del(ctx, treeKey(testID)).Err(); err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("Tree cache invalidation failed")
	}
}

type noopTreeCache struct{}

// NewNoopTreeCache is used when no redis is configured.
func NewNoopTreeCache() TreeCache { return noopTreeCache{} }

func (noopTreeCache) Get(context.Context, uint) (*model.Test, bool) { return nil, false }
func (noopTreeCache) Set(context.Context, *model.Test)              {}
func (noopTreeCache) Invalidate(context.Context, uint)              {}
