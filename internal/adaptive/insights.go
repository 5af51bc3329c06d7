package adaptive

import (
	"math"
	"sort"
)

// Engagement level buckets.
const (
	EngagementHigh   = "high"
	EngagementMedium = "medium"
	EngagementLow    = "low"
)

// insufficientDataMessage is returned for users with no recorded sessions.
const insufficientDataMessage = "Not enough data for insights yet. Play a few games together to unlock them."

// Fixed-text improvement suggestions, chosen by threshold rules.
const (
	suggestEasier      = "Try easier questions to build confidence"
	suggestHarder      = "Challenge yourselves with harder questions"
	suggestCategories  = "Explore different question categories"
	suggestInteractive = "Try more interactive question types"
)

// DifficultyStats summarizes performance at one difficulty tier.
type DifficultyStats struct {
	AvgScore    float64 `json:"avg_score"`
	GamesPlayed int     `json:"games_played"`
}

// Report is the insight payload for one user.
type Report struct {
	HasData               bool                       `json:"has_data"`
	Message               string                     `json:"message,omitempty"`
	GamesPlayed           int                        `json:"games_played,omitempty"`
	AvgScore              float64                    `json:"avg_score,omitempty"`
	EngagementLevel       string                     `json:"engagement_level,omitempty"`
	PreferredCategories   []string                   `json:"preferred_categories,omitempty"`
	OptimalDifficulty     string                     `json:"optimal_difficulty,omitempty"`
	DifficultyPerformance map[string]DifficultyStats `json:"difficulty_performance,omitempty"`
	Suggestions           []string                   `json:"improvement_suggestions,omitempty"`
}

// BuildReport summarizes a profile into engagement, category, and difficulty
// insights. A nil profile yields the fixed insufficient-data report with no
// numeric fields populated.
func BuildReport(profile *UserProfile) Report {
	if profile == nil || profile.GamesPlayed == 0 {
		return Report{Message: insufficientDataMessage}
	}

	report := Report{
		HasData:           true,
		GamesPlayed:       profile.GamesPlayed,
		AvgScore:          round2(profile.AvgScore),
		EngagementLevel:   engagementLevel(tailMean(profile.EngagementScores, 5)),
		OptimalDifficulty: OptimalDifficulty(profile),
	}

	report.PreferredCategories = topCategories(profile.PreferredCategories, 3)

	stats := make(map[string]DifficultyStats)
	for _, tier := range difficultyOrder {
		scores := profile.DifficultyPerformance[tier]
		if len(scores) == 0 {
			continue
		}
		stats[tier] = DifficultyStats{AvgScore: round2(mean(scores)), GamesPlayed: len(scores)}
	}
	if len(stats) > 0 {
		report.DifficultyPerformance = stats
	}

	report.Suggestions = suggestions(profile)
	return report
}

// suggestions applies the fixed threshold rules; between zero and three fire.
func suggestions(profile *UserProfile) []string {
	var out []string

	if profile.AvgScore < 0.5 {
		out = append(out, suggestEasier)
	} else if profile.AvgScore > 0.8 {
		out = append(out, suggestHarder)
	}

	if len(profile.PreferredCategories) < 3 {
		out = append(out, suggestCategories)
	}

	if tailMean(profile.EngagementScores, 3) < 0.5 {
		out = append(out, suggestInteractive)
	}

	return out
}

func engagementLevel(avg float64) string {
	switch {
	case avg > 0.7:
		return EngagementHigh
	case avg > 0.4:
		return EngagementMedium
	default:
		return EngagementLow
	}
}

// tailMean averages the last n values; an empty slice counts as neutral 0.5.
func tailMean(values []float64, n int) float64 {
	if len(values) == 0 {
		return 0.5
	}
	if len(values) > n {
		values = values[len(values)-n:]
	}
	return mean(values)
}

// topCategories returns up to n category names by descending cumulative
// weight, name ascending on equal weight so the order is stable.
func topCategories(weights map[string]float64, n int) []string {
	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if weights[names[i]] != weights[names[j]] {
			return weights[names[i]] > weights[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
