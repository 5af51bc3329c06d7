package adaptive

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultInsightTTL = 60 * time.Second

// InsightCache keeps rendered insight reports in Redis so repeated dashboard
// polls do not recompute them. Entries are invalidated when a new session is
// recorded for the user.
type InsightCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewInsightCache(client *redis.Client, ttl time.Duration) *InsightCache {
	if ttl <= 0 {
		ttl = defaultInsightTTL
	}
	return &InsightCache{client: client, ttl: ttl}
}

func (c *InsightCache) key(userID string) string {
	return "insights:" + userID
}

// Get returns the cached report, or nil on miss.
func (c *InsightCache) Get(ctx context.Context, userID string) (*Report, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *InsightCache) Set(ctx context.Context, userID string, report Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(userID), data, c.ttl).Err()
}

func (c *InsightCache) Invalidate(ctx context.Context, userIDs ...string) error {
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = c.key(id)
	}
	return c.client.Del(ctx, keys...).Err()
}
