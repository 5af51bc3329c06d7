package question

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echohq/couples-platform/internal/adaptive"
)

type memoryCache struct {
	store map[string]PackResponse
	hits  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: map[string]PackResponse{}}
}

func (c *memoryCache) key(req PackRequest) string {
	return fmt.Sprintf("%s:%s:%d", req.Category, req.Depth, req.Count)
}

func (c *memoryCache) Get(_ context.Context, req PackRequest) (*PackResponse, error) {
	if val, ok := c.store[c.key(req)]; ok {
		c.hits++
		return &val, nil
	}
	return nil, nil
}

func (c *memoryCache) Set(_ context.Context, req PackRequest, resp PackResponse) error {
	c.store[c.key(req)] = resp
	return nil
}

func playSessions(t *testing.T, profiles adaptive.ProfileRepository, userID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, profiles.Update(context.Background(), userID, func(p *adaptive.UserProfile) {
			p.Apply(adaptive.SessionData{Score: 0.6, Category: "fun", Difficulty: adaptive.DifficultyMedium, EngagementScore: 0.5})
		}))
	}
}

func TestGeneratePackUnknownUserGetsLightDepth(t *testing.T) {
	svc := NewService(NewBank(), newMemoryCache(), adaptive.NewMemoryProfileStore(), zerolog.Nop())

	resp, err := svc.GeneratePack(context.Background(), "nobody", "love", 5)
	require.NoError(t, err)
	assert.Equal(t, DepthLight, resp.Depth)
	require.Len(t, resp.Questions, 5)
	for _, q := range resp.Questions {
		assert.Equal(t, "love", q.Category)
		assert.Equal(t, adaptive.DifficultyEasy, q.Difficulty)
		assert.Equal(t, adaptive.TypeMultipleChoice, q.Type)
		assert.NotEmpty(t, q.Prompt)
	}
}

func TestGeneratePackDepthGrowsWithPlay(t *testing.T) {
	profiles := adaptive.NewMemoryProfileStore()
	svc := NewService(NewBank(), newMemoryCache(), profiles, zerolog.Nop())

	playSessions(t, profiles, "alice", 7)
	resp, err := svc.GeneratePack(context.Background(), "alice", "fun", 3)
	require.NoError(t, err)
	assert.Equal(t, DepthMedium, resp.Depth)

	playSessions(t, profiles, "alice", 5)
	resp, err = svc.GeneratePack(context.Background(), "alice", "fun", 3)
	require.NoError(t, err)
	assert.Equal(t, DepthDeep, resp.Depth)
	assert.Equal(t, adaptive.DifficultyHard, resp.Questions[0].Difficulty)
}

func TestGeneratePackUsesCache(t *testing.T) {
	cache := newMemoryCache()
	svc := NewService(NewBank(), cache, adaptive.NewMemoryProfileStore(), zerolog.Nop())
	ctx := context.Background()

	first, err := svc.GeneratePack(ctx, "nobody", "future", 4)
	require.NoError(t, err)
	second, err := svc.GeneratePack(ctx, "nobody", "future", 4)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.hits)
}

func TestGeneratePackUnknownCategoryFallsBack(t *testing.T) {
	svc := NewService(NewBank(), nil, adaptive.NewMemoryProfileStore(), zerolog.Nop())

	resp, err := svc.GeneratePack(context.Background(), "nobody", "astrology", 2)
	require.NoError(t, err)
	require.Len(t, resp.Questions, 2)
	assert.Equal(t, "general", resp.Questions[0].Category)
}

func TestPackCyclesTemplates(t *testing.T) {
	bank := NewBank()
	pack := bank.Pack("love", 7, adaptive.DifficultyEasy)
	require.Len(t, pack, 7)
	// Five templates per category, so ids wrap around.
	assert.Equal(t, pack[0].ID, pack[5].ID)
	assert.Equal(t, pack[1].ID, pack[6].ID)
}

func TestDefaultPoolCoversAllCategories(t *testing.T) {
	svc := NewService(NewBank(), nil, adaptive.NewMemoryProfileStore(), zerolog.Nop())
	pool := svc.DefaultPool(context.Background(), nil)

	seen := map[string]bool{}
	ids := map[string]bool{}
	for _, q := range pool {
		seen[q.Category] = true
		assert.False(t, ids[q.ID], "duplicate id %s", q.ID)
		ids[q.ID] = true
	}
	for _, category := range NewBank().Categories() {
		assert.True(t, seen[category], "missing category %s", category)
	}
}

func TestDepthFor(t *testing.T) {
	assert.Equal(t, DepthLight, DepthFor(0))
	assert.Equal(t, DepthLight, DepthFor(5))
	assert.Equal(t, DepthMedium, DepthFor(6))
	assert.Equal(t, DepthMedium, DepthFor(10))
	assert.Equal(t, DepthDeep, DepthFor(11))
}
