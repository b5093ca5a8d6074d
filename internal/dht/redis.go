package dht

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"diddht/pkg/platform/sentinel"
)

const (
	// Redis key prefix for immutable DHT items
	immutableKeyPrefix = "dht:immutable:"

	// BEP44 nodes drop items they have not seen refreshed for two hours.
	defaultRedisTTL = 2 * time.Hour
)

// Redis keeps the DHT table in Redis so that several service instances
// share one view of a network.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOption configures a Redis publisher.
type RedisOption func(*Redis)

// WithRedisTTL overrides how long items live. Zero keeps them forever.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// NewRedis constructs a Redis-backed publisher. The client lifecycle is
// managed by the caller.
func NewRedis(client *redis.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		ttl:    defaultRedisTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Put stores value under its target with SET and the configured TTL.
func (r *Redis) Put(ctx context.Context, value []byte) (CommitHash, error) {
	if err := checkValue(value); err != nil {
		return "", err
	}
	target := Target(value)
	if err := r.client.Set(ctx, immutableKeyPrefix+target.String(), value, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("redis put %s: %w", target, err)
	}
	return target, nil
}

// Get fetches the value stored under key and checks it against the target.
func (r *Redis) Get(ctx context.Context, key []byte) ([]byte, error) {
	value, err := r.client.Get(ctx, immutableKeyPrefix+hexKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	if err := verifyTarget(key, value); err != nil {
		return nil, err
	}
	return value, nil
}

func hexKey(key []byte) string {
	return hex.EncodeToString(key)
}
