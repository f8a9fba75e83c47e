// Package redisclient caches the public marketplace listing. The cache
// is best effort: a miss or a Redis failure falls through to the
// database.
package redisclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"reclaim-market/internal/models"
)

const marketplaceKey = "materials:marketplace"

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client.
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetListing returns the cached marketplace listing, or (nil, nil) on a
// cache miss.
func (c *Client) GetListing(ctx context.Context) ([]models.Material, error) {
	raw, err := c.rdb.Get(ctx, marketplaceKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var materials []models.Material
	if err := json.Unmarshal(raw, &materials); err != nil {
		return nil, fmt.Errorf("corrupt listing cache: %w", err)
	}
	return materials, nil
}

// SetListing caches the marketplace listing with a TTL.
func (c *Client) SetListing(ctx context.Context, materials []models.Material, ttl time.Duration) error {
	raw, err := json.Marshal(materials)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, marketplaceKey, raw, ttl).Err()
}

// InvalidateListing drops the cached marketplace listing. Called after
// any mutation that changes what the public view would show.
func (c *Client) InvalidateListing(ctx context.Context) error {
	return c.rdb.Del(ctx, marketplaceKey).Err()
}
