package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/redhat-appstudio/incident-kpis/pkg/logger"
)

// RedisClient stores shared cache entries in Redis.
type RedisClient struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisClient creates a new Redis client with the provided configuration.
// It initializes the connection and validates connectivity.
func NewRedisClient(config RedisConfig) (*RedisClient, error) {
	if !config.Enabled {
		return nil, fmt.Errorf("Redis storage is disabled")
	}

	if config.Address == "" {
		return nil, fmt.Errorf("Redis address is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         config.Address,
		Password:     config.Password,
		DB:           config.Database,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Infof("Redis storage client connected successfully to %s", config.Address)

	return &RedisClient{
		client:    rdb,
		keyPrefix: config.KeyPrefix,
	}, nil
}

// Close closes the Redis connection.
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// Ping checks that Redis answers.
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// buildKey efficiently builds Redis keys using strings.Builder
func (r *RedisClient) buildKey(parts ...string) string {
	var builder strings.Builder
	builder.WriteString(r.keyPrefix)
	for _, part := range parts {
		builder.WriteByte(':')
		builder.WriteString(part)
	}
	return builder.String()
}

// SetCache stores a value in Redis cache with TTL
func (r *RedisClient) SetCache(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	cacheKey := r.buildKey("cache", key)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err := r.client.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cache value: %w", err)
	}

	logger.Debugf("Stored cache entry %s (ttl: %v)", cacheKey, ttl)
	return nil
}

// GetCache retrieves a value from Redis cache. The boolean is false when
// the key does not exist.
func (r *RedisClient) GetCache(ctx context.Context, key string, dest interface{}) (bool, error) {
	cacheKey := r.buildKey("cache", key)

	data, err := r.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return true, nil
}
