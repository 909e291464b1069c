// Package cache keeps computed reports in Redis for a short time.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"finance-reports/internal/logging"
	"finance-reports/internal/report"
)

const keyPrefix = "reports"

// Open connects to Redis. redisURL may be a full redis:// URL or a bare
// host:port.
func Open(ctx context.Context, redisURL string) (*redis.Client, error) {
	if !strings.Contains(redisURL, "://") {
		redisURL = "redis://" + redisURL
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// Fallback to simple connection
		opt = &redis.Options{
			Addr: strings.TrimPrefix(redisURL, "redis://"),
		}
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// ReportCache stores JSON-encoded values per user and filter set. A nil
// *ReportCache is valid and caches nothing.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache wraps client. Entries expire after ttl.
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	if client == nil {
		return nil
	}
	return &ReportCache{client: client, ttl: ttl}
}

// Key returns the cache key for a user and filter set. Filters are hashed so
// the key stays short and free of user supplied characters.
func Key(userID uuid.UUID, f report.Filters) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{
		f.StartDate, f.EndDate, string(f.Type), f.CategoryID, string(f.Period),
	}, "|")))
	return fmt.Sprintf("%s:%s:%s", keyPrefix, userID, hex.EncodeToString(sum[:12]))
}

// Get decodes the cached value at key into dest. It reports false on a miss.
func (c *ReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}

	cached, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(cached, dest); err != nil {
		// A stale or foreign entry is a miss, not a failure.
		logging.Component(logging.ComponentCache).Warn("Dropping undecodable cache entry",
			logging.FieldCacheKey, key, logging.FieldError, err)
		_ = c.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

// Set stores v at key for the cache TTL.
func (c *ReportCache) Set(ctx context.Context, key string, v any) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.SetEx(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// InvalidateUser drops every cached report of userID and returns how many
// entries were removed.
func (c *ReportCache) InvalidateUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if c == nil {
		return 0, nil
	}

	pattern := fmt.Sprintf("%s:%s:*", keyPrefix, userID)
	removed := 0
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("cache scan %s: %w", pattern, err)
	}
	return removed, nil
}
