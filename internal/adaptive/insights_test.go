package adaptive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildReportUnknownUser(t *testing.T) {
	report := BuildReport(nil)
	assert.False(t, report.HasData)
	assert.NotEmpty(t, report.Message)
	assert.Zero(t, report.GamesPlayed)
	assert.Zero(t, report.AvgScore)
	assert.Empty(t, report.OptimalDifficulty)
	assert.Empty(t, report.Suggestions)
}

func TestBuildReportEmptyProfileTreatedAsUnknown(t *testing.T) {
	report := BuildReport(NewUserProfile())
	assert.False(t, report.HasData)
	assert.NotEmpty(t, report.Message)
}

func buildProfile(sessions []SessionData) *UserProfile {
	p := NewUserProfile()
	for _, s := range sessions {
		p.Apply(s)
	}
	return p
}

func TestBuildReportEngagementBuckets(t *testing.T) {
	cases := []struct {
		name       string
		engagement []float64
		want       string
	}{
		{"high", []float64{0.9, 0.8, 0.9}, EngagementHigh},
		{"medium", []float64{0.5, 0.6}, EngagementMedium},
		{"low", []float64{0.1, 0.2}, EngagementLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sessions := make([]SessionData, len(tc.engagement))
			for i, e := range tc.engagement {
				sessions[i] = SessionData{Score: 0.6, Category: "fun", Difficulty: DifficultyMedium, EngagementScore: e}
			}
			report := BuildReport(buildProfile(sessions))
			assert.Equal(t, tc.want, report.EngagementLevel)
		})
	}
}

func TestBuildReportEngagementUsesLastFive(t *testing.T) {
	// Low early engagement, high tail: only the last 5 values count.
	var sessions []SessionData
	for i := 0; i < 5; i++ {
		sessions = append(sessions, SessionData{Score: 0.6, Category: "fun", Difficulty: DifficultyMedium, EngagementScore: 0.1})
	}
	for i := 0; i < 5; i++ {
		sessions = append(sessions, SessionData{Score: 0.6, Category: "fun", Difficulty: DifficultyMedium, EngagementScore: 0.9})
	}
	report := BuildReport(buildProfile(sessions))
	assert.Equal(t, EngagementHigh, report.EngagementLevel)
}

func TestBuildReportTopCategories(t *testing.T) {
	p := NewUserProfile()
	p.GamesPlayed = 4
	p.PreferredCategories = map[string]float64{
		"love": 3.0, "fun": 2.0, "future": 1.5, "memories": 0.5,
	}
	report := BuildReport(p)
	assert.Equal(t, []string{"love", "fun", "future"}, report.PreferredCategories)
}

func TestBuildReportDifficultyStats(t *testing.T) {
	p := buildProfile([]SessionData{
		{Score: 0.6, Category: "fun", Difficulty: DifficultyMedium, EngagementScore: 0.6},
		{Score: 0.8, Category: "fun", Difficulty: DifficultyMedium, EngagementScore: 0.6},
		{Score: 0.4, Category: "fun", Difficulty: DifficultyEasy, EngagementScore: 0.6},
	})
	report := BuildReport(p)
	assert.Equal(t, DifficultyStats{AvgScore: 0.7, GamesPlayed: 2}, report.DifficultyPerformance[DifficultyMedium])
	assert.Equal(t, DifficultyStats{AvgScore: 0.4, GamesPlayed: 1}, report.DifficultyPerformance[DifficultyEasy])
	assert.NotContains(t, report.DifficultyPerformance, DifficultyHard)
	assert.Equal(t, DifficultyMedium, report.OptimalDifficulty)
}

func TestSuggestionThresholds(t *testing.T) {
	lowScore := buildProfile([]SessionData{
		{Score: 0.3, Category: "fun", Difficulty: DifficultyMedium, EngagementScore: 0.8},
	})
	report := BuildReport(lowScore)
	assert.Contains(t, report.Suggestions, suggestEasier)
	assert.NotContains(t, report.Suggestions, suggestHarder)
	// Only one category recorded.
	assert.Contains(t, report.Suggestions, suggestCategories)

	highScore := buildProfile([]SessionData{
		{Score: 0.9, Category: "love", Difficulty: DifficultyHard, EngagementScore: 0.8},
		{Score: 0.95, Category: "fun", Difficulty: DifficultyHard, EngagementScore: 0.8},
		{Score: 0.9, Category: "future", Difficulty: DifficultyHard, EngagementScore: 0.8},
	})
	report = BuildReport(highScore)
	assert.Contains(t, report.Suggestions, suggestHarder)
	assert.NotContains(t, report.Suggestions, suggestCategories)
	assert.NotContains(t, report.Suggestions, suggestInteractive)

	lowEngagement := buildProfile([]SessionData{
		{Score: 0.6, Category: "love", Difficulty: DifficultyMedium, EngagementScore: 0.2},
		{Score: 0.6, Category: "fun", Difficulty: DifficultyMedium, EngagementScore: 0.3},
		{Score: 0.6, Category: "future", Difficulty: DifficultyMedium, EngagementScore: 0.2},
	})
	report = BuildReport(lowEngagement)
	assert.Contains(t, report.Suggestions, suggestInteractive)
}

func TestSuggestionsCanBeEmpty(t *testing.T) {
	balanced := buildProfile([]SessionData{
		{Score: 0.6, Category: "love", Difficulty: DifficultyMedium, EngagementScore: 0.8},
		{Score: 0.7, Category: "fun", Difficulty: DifficultyMedium, EngagementScore: 0.8},
		{Score: 0.6, Category: "future", Difficulty: DifficultyMedium, EngagementScore: 0.8},
	})
	report := BuildReport(balanced)
	assert.Empty(t, report.Suggestions)
}
