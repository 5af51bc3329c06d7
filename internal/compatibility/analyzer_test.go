package compatibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerSimilarityNumeric(t *testing.T) {
	assert.Equal(t, 1.0, AnswerSimilarity(float64(7), float64(7)))
	assert.InDelta(t, 0.8, AnswerSimilarity(float64(4), float64(5)), 0.001)
	assert.InDelta(t, 0.1, AnswerSimilarity(float64(1), float64(10)), 0.001)
	// Small magnitudes scale against 1 rather than collapsing to zero.
	assert.InDelta(t, 0.8, AnswerSimilarity(0.4, 0.6), 0.001)
}

func TestAnswerSimilarityBool(t *testing.T) {
	assert.Equal(t, 1.0, AnswerSimilarity(true, true))
	assert.Equal(t, 0.0, AnswerSimilarity(true, false))
}

func TestAnswerSimilarityText(t *testing.T) {
	assert.Equal(t, 1.0, AnswerSimilarity("Hiking ", "hiking"))

	// "long walks beach" vs "walks beach sunsets": 2 shared of 4 tokens
	sim := AnswerSimilarity("long walks beach", "walks beach sunsets")
	assert.InDelta(t, 0.5, sim, 0.001)

	assert.Equal(t, 0.0, AnswerSimilarity("reading", "gaming"))
}

func TestAnswerSimilarityMismatchedTypes(t *testing.T) {
	assert.Equal(t, 0.0, AnswerSimilarity(float64(5), "five"))
	assert.Equal(t, 0.0, AnswerSimilarity(true, "yes"))
	assert.Equal(t, 0.0, AnswerSimilarity(nil, float64(1)))
}

func TestTokenOverlapEmpty(t *testing.T) {
	assert.Equal(t, 1.0, TokenOverlap("", ""))
	assert.Equal(t, 0.0, TokenOverlap("hello", ""))
}

func TestAnalyzeNoAnswersIsNeutral(t *testing.T) {
	analyzer := NewAnalyzer()

	report := analyzer.Analyze(Answers{}, Answers{})

	assert.Equal(t, 0.5, report.CompatibilityScore)
	for category, score := range report.CategoryScores {
		assert.Equal(t, 0.5, score, "category %s", category)
	}
	// All categories score under 0.7, so the three weakest are recommended.
	assert.Len(t, report.Recommendations, 3)
}

func TestAnalyzePerfectMatch(t *testing.T) {
	analyzer := NewAnalyzer()
	answers := Answers{
		"communication": {"q1": float64(8), "q2": true},
		"values":        {"q1": "family first"},
		"lifestyle":     {"q1": float64(5)},
		"intimacy":      {"q1": true},
		"goals":         {"q1": "travel the world"},
		"personality":   {"q1": float64(3)},
	}

	report := analyzer.Analyze(answers, answers)

	assert.Equal(t, 1.0, report.CompatibilityScore)
	assert.Contains(t, report.Insights[0], "excellent compatibility")
	assert.Empty(t, report.Recommendations)
}

func TestAnalyzeWeightedOverall(t *testing.T) {
	analyzer := NewAnalyzer()
	user1 := Answers{
		"communication": {"q1": true},
	}
	user2 := Answers{
		"communication": {"q1": false},
	}

	report := analyzer.Analyze(user1, user2)

	// communication mismatches entirely, every other category is neutral:
	// 0*0.25 + 0.5*0.75 = 0.375, rounded to 0.38.
	assert.Equal(t, 0.0, report.CategoryScores["communication"])
	assert.Equal(t, 0.38, report.CompatibilityScore)
}

func TestAnalyzeSharedKeysOnly(t *testing.T) {
	analyzer := NewAnalyzer()
	user1 := Answers{
		"values": {"q1": float64(5), "q2": float64(1)},
	}
	user2 := Answers{
		"values": {"q1": float64(5), "q3": float64(9)},
	}

	report := analyzer.Analyze(user1, user2)

	// Only q1 is shared, and it matches exactly.
	assert.Equal(t, 1.0, report.CategoryScores["values"])
}

func TestAnalyzeInsightsListStrongAndWeak(t *testing.T) {
	analyzer := NewAnalyzer()
	user1 := Answers{
		"communication": {"q1": true},
		"goals":         {"q1": true},
	}
	user2 := Answers{
		"communication": {"q1": true},
		"goals":         {"q1": false},
	}

	report := analyzer.Analyze(user1, user2)

	assert.Contains(t, report.Insights, "Your strongest areas: communication")
	assert.Contains(t, report.Insights, "Areas needing attention: goals")
}

func TestAnalyzeRecommendationsWeakestFirst(t *testing.T) {
	analyzer := NewAnalyzer()
	user1 := Answers{
		"communication": {"q1": float64(1)},
		"values":        {"q1": float64(10)},
	}
	user2 := Answers{
		"communication": {"q1": float64(10)},
		"values":        {"q1": float64(10)},
	}

	report := analyzer.Analyze(user1, user2)

	assert.Len(t, report.Recommendations, 3)
	assert.Equal(t, recommendationMap["communication"], report.Recommendations[0])
	assert.NotContains(t, report.Recommendations, recommendationMap["values"])
}
