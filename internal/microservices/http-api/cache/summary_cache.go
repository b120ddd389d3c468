package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"learnhub/internal/microservices/http-api/dto"

	"github.com/redis/go-redis/v9"
)

// SummaryCache keeps computed course progress summaries in Redis so the
// dashboard does not recompute the rollup on every request. Entries are
// invalidated on the upsert write path, the TTL is a backstop.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache connects to Redis using a redis:// URL.
func NewSummaryCache(redisURL, password string, ttl time.Duration) (*SummaryCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &SummaryCache{client: rdb, ttl: ttl}, nil
}

func summaryKey(userID string, courseID int64) string {
	return fmt.Sprintf("progress:user:%s:course:%d:summary", userID, courseID)
}

// GetCourseSummary returns the cached summary or (nil, nil) on a miss.
func (c *SummaryCache) GetCourseSummary(ctx context.Context, userID string, courseID int64) (*dto.CourseProgressSummary, error) {
	if c == nil || c.client == nil {
		// No-op when the API runs without Redis
		return nil, nil
	}

	raw, err := c.client.Get(ctx, summaryKey(userID, courseID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var summary dto.CourseProgressSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		// Treat a corrupt entry as a miss, it will be overwritten
		return nil, nil
	}
	return &summary, nil
}

func (c *SummaryCache) SetCourseSummary(ctx context.Context, summary *dto.CourseProgressSummary) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, summaryKey(summary.UserID, summary.CourseID), raw, c.ttl).Err()
}

// InvalidateCourseSummary drops the cached rollup after a progress write.
func (c *SummaryCache) InvalidateCourseSummary(ctx context.Context, userID string, courseID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, summaryKey(userID, courseID)).Err()
}

// Close releases the underlying Redis connection.
func (c *SummaryCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
