package question

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = 5 * time.Minute

// PackCache defines cache behavior (implemented by the Redis-backed Cache).
type PackCache interface {
	Get(ctx context.Context, req PackRequest) (*PackResponse, error)
	Set(ctx context.Context, req PackRequest, resp PackResponse) error
}

// Cache provides Redis-backed pack caching so repeated generation requests
// for the same category and depth are served without rebuilding.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ PackCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(req PackRequest) string {
	return strings.Join([]string{
		"questionpack",
		req.Category,
		req.Depth,
		fmt.Sprint(req.Count),
	}, ":")
}

func (c *Cache) Get(ctx context.Context, req PackRequest) (*PackResponse, error) {
	data, err := c.client.Get(ctx, c.key(req)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var resp PackResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Cache) Set(ctx context.Context, req PackRequest, resp PackResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(req), data, c.ttl).Err()
}
