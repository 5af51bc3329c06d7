package adaptive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSelector() (*Selector, *MemoryProfileStore, *MemoryHistoryStore) {
	profiles := NewMemoryProfileStore()
	history := NewMemoryHistoryStore()
	return NewSelector(profiles, history, 3), profiles, history
}

func poolOf(ids ...string) []Question {
	pool := make([]Question, len(ids))
	for i, id := range ids {
		pool[i] = Question{ID: id, Category: "fun", Difficulty: DifficultyMedium, Type: TypeOpenEnded}
	}
	return pool
}

func TestSelectEmptyPool(t *testing.T) {
	sel, _, _ := newTestSelector()
	got, err := sel.Select(context.Background(), "a", "b", nil, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSelectReturnsTopCount(t *testing.T) {
	sel, _, _ := newTestSelector()
	got, err := sel.Select(context.Background(), "a", "b", poolOf("q1", "q2", "q3", "q4"), 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSelectFewerCandidatesThanCount(t *testing.T) {
	sel, _, _ := newTestSelector()
	got, err := sel.Select(context.Background(), "a", "b", poolOf("q1", "q2"), 5)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSelectExcludesRecentQuestions(t *testing.T) {
	sel, _, history := newTestSelector()
	ctx := context.Background()

	require.NoError(t, history.Append(ctx, CoupleKey("a", "b"), CoupleSession{QuestionIDs: []string{"q1"}}))

	got, err := sel.Select(ctx, "a", "b", poolOf("q1", "q2", "q3"), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, q := range got {
		assert.NotEqual(t, "q1", q.ID)
	}
}

func TestSelectRecencyFilterFallsBackToUnfiltered(t *testing.T) {
	sel, _, history := newTestSelector()
	ctx := context.Background()

	// Excluding q1 would leave 2 < requested 3, so all three come back.
	require.NoError(t, history.Append(ctx, CoupleKey("a", "b"), CoupleSession{QuestionIDs: []string{"q1"}}))

	got, err := sel.Select(ctx, "a", "b", poolOf("q1", "q2", "q3"), 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestSelectOnlyLastThreeSessionsFilter(t *testing.T) {
	sel, _, history := newTestSelector()
	ctx := context.Background()
	key := CoupleKey("a", "b")

	// q-old only appears in the oldest of four sessions and is filterable again.
	require.NoError(t, history.Append(ctx, key, CoupleSession{QuestionIDs: []string{"q-old"}}))
	for _, id := range []string{"s1", "s2", "s3"} {
		require.NoError(t, history.Append(ctx, key, CoupleSession{QuestionIDs: []string{id}}))
	}

	recent, err := sel.RecentQuestionIDs(ctx, "a", "b")
	require.NoError(t, err)
	assert.NotContains(t, recent, "q-old")
	assert.Contains(t, recent, "s1")
	assert.Contains(t, recent, "s3")
}

func TestSelectDeterministicTieBreaking(t *testing.T) {
	sel, _, _ := newTestSelector()
	ctx := context.Background()
	pool := poolOf("q1", "q2", "q3", "q4", "q5")

	first, err := sel.Select(ctx, "a", "b", pool, 3)
	require.NoError(t, err)
	second, err := sel.Select(ctx, "a", "b", pool, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// All scores equal, so input order survives.
	assert.Equal(t, "q1", first[0].ID)
	assert.Equal(t, "q2", first[1].ID)
	assert.Equal(t, "q3", first[2].ID)
}

func TestSelectRanksByProfileSignal(t *testing.T) {
	sel, profiles, _ := newTestSelector()
	ctx := context.Background()

	require.NoError(t, profiles.Update(ctx, "a", func(p *UserProfile) {
		p.Apply(SessionData{Score: 0.6, Category: "love", Difficulty: DifficultyMedium, EngagementScore: 0.9})
	}))

	pool := []Question{
		{ID: "q-fun", Category: "fun", Difficulty: DifficultyEasy, Type: TypeOpenEnded},
		{ID: "q-love", Category: "love", Difficulty: DifficultyMedium, Type: TypeOpenEnded},
	}
	got, err := sel.Select(ctx, "a", "b", pool, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "q-love", got[0].ID)
}
