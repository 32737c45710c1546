// Package redis holds the storefront's Redis access: refresh-session
// entries and the fixed-window counters behind auth rate limiting. All
// keys live under the "storefront" namespace so a shared Redis can host
// other services without collisions.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/storefront-labs/storefront-backend/pkg/config"
	"github.com/redis/go-redis/v9"
)

const keyNamespace = "storefront"

var errNotInitialized = errors.New("redis client not initialized")

// commands is the subset of go-redis this service issues; tests swap in
// an in-memory implementation.
type commands interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Incr(context.Context, string) *redis.IntCmd
	Expire(context.Context, string, time.Duration) *redis.BoolCmd
	Del(context.Context, ...string) *redis.IntCmd
}

type Client struct {
	cmds commands
	raw  *redis.Client
}

// Pinger is the health-check view of the client.
type Pinger interface {
	Ping(context.Context) error
}

// New parses the configured URL, overlays pool and timeout settings the
// URL does not carry, and verifies connectivity before returning.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{cmds: raw, raw: raw}, nil
}

func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.cmds == nil {
		return errNotInitialized
	}
	return c.cmds.Set(ctx, key, value, ttl).Err()
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if c.cmds == nil {
		return "", errNotInitialized
	}
	return c.cmds.Get(ctx, key).Result()
}

func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	if c.cmds == nil {
		return 0, errNotInitialized
	}
	return c.cmds.Incr(ctx, key).Result()
}

// IncrWithTTL increments a fixed-window counter. The window TTL is set
// when the counter is first created and left alone on later increments,
// so the window ends at a fixed time regardless of traffic.
func (c *Client) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := c.Incr(ctx, key)
	if err != nil {
		return 0, err
	}
	if ttl > 0 && count == 1 {
		if err := c.cmds.Expire(ctx, key, ttl).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	if c.cmds == nil {
		return errNotInitialized
	}
	return c.cmds.Del(ctx, keys...).Err()
}

// AccessSessionKey names the refresh-session entry for an access token's
// jti, e.g. "storefront:session:access:<jti>".
func (c *Client) AccessSessionKey(accessID string) string {
	return fmt.Sprintf("%s:session:access:%s", keyNamespace, accessID)
}

// RateLimitKey names a rate-limit counter for the given scope, e.g.
// "storefront:ratelimit:login:ip:10.0.0.9".
func (c *Client) RateLimitKey(scope string) string {
	return fmt.Sprintf("%s:ratelimit:%s", keyNamespace, scope)
}

func (c *Client) Ping(ctx context.Context) error {
	if c.cmds == nil {
		return errNotInitialized
	}
	return c.cmds.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}
