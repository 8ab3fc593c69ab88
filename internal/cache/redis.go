package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"partshop/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "partshop:part:"

// PartCache is a Redis-backed read-through cache of catalogue parts.
type PartCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewPartCache creates a part cache on client. Entries expire after ttl.
func NewPartCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *PartCache {
	return &PartCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "part_cache").Logger(),
	}
}

// Connect opens a Redis client and checks it answers PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

func partKey(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}

// Get returns the cached part, or nil on a miss.
func (c *PartCache) Get(ctx context.Context, id int64) (*model.Part, error) {
	raw, err := c.client.Get(ctx, partKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read part %d from cache: %w", id, err)
	}

	var part model.Part
	if err := json.Unmarshal(raw, &part); err != nil {
		// A corrupt entry is treated as a miss and evicted.
		c.logger.Warn().Err(err).Int64("part_id", id).Msg("dropping undecodable cache entry")
		_ = c.client.Del(ctx, partKey(id)).Err()
		return nil, nil
	}
	return &part, nil
}

// Set stores part under its id.
func (c *PartCache) Set(ctx context.Context, part *model.Part) error {
	raw, err := json.Marshal(part)
	if err != nil {
		return fmt.Errorf("failed to encode part %d: %w", part.ID, err)
	}
	if err := c.client.Set(ctx, partKey(part.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache part %d: %w", part.ID, err)
	}
	return nil
}

// Invalidate removes the cached entry for id.
func (c *PartCache) Invalidate(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, partKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate part %d: %w", id, err)
	}
	return nil
}
