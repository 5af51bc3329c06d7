package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzePositiveText(t *testing.T) {
	analyzer := NewAnalyzer()

	result := analyzer.Analyze("I love you, today was amazing and wonderful!")

	assert.Equal(t, Positive, result.Sentiment)
	assert.Greater(t, result.Confidence, 0.5)
	assert.Greater(t, result.Emotions["love"], 0.0)
}

func TestAnalyzeNegativeText(t *testing.T) {
	analyzer := NewAnalyzer()

	result := analyzer.Analyze("I'm sad, frustrated and hurt")

	assert.Equal(t, Negative, result.Sentiment)
	assert.Greater(t, result.Confidence, 0.5)
	assert.Greater(t, result.Emotions["sadness"], 0.0)
}

func TestAnalyzeNeutralText(t *testing.T) {
	analyzer := NewAnalyzer()

	result := analyzer.Analyze("We went to the store and bought groceries")

	assert.Equal(t, Neutral, result.Sentiment)
	assert.Equal(t, 0.5, result.Confidence)
}

func TestAnalyzeMixedTextStaysNeutral(t *testing.T) {
	analyzer := NewAnalyzer()

	// One positive and one negative word in a long enough sentence keeps the
	// score inside the neutral band, with slightly raised confidence.
	result := analyzer.Analyze("I felt happy this morning but sad later when we argued about plans for the weekend")

	assert.Equal(t, Neutral, result.Sentiment)
	assert.Equal(t, 0.6, result.Confidence)
}

func TestAnalyzeConfidenceCapped(t *testing.T) {
	analyzer := NewAnalyzer()

	result := analyzer.Analyze("love love love")

	assert.Equal(t, Positive, result.Sentiment)
	assert.Equal(t, 0.9, result.Confidence)
}

func TestAnalyzeStripsPunctuation(t *testing.T) {
	analyzer := NewAnalyzer()

	result := analyzer.Analyze("Grateful!!! (really grateful)")

	assert.Equal(t, Positive, result.Sentiment)
	assert.Greater(t, result.Emotions["gratitude"], 0.0)
}

func TestAnalyzeCommunicationEmpty(t *testing.T) {
	analyzer := NewAnalyzer()

	report := analyzer.AnalyzeCommunication(nil)

	assert.Equal(t, Neutral, report.OverallSentiment)
	assert.Equal(t, 0.5, report.CommunicationHealth)
	assert.Equal(t, 0.5, report.EmotionalBalance)
	assert.Equal(t, []string{"Start communicating more to get insights"}, report.Suggestions)
}

func TestAnalyzeCommunicationMostlyPositive(t *testing.T) {
	analyzer := NewAnalyzer()

	report := analyzer.AnalyzeCommunication([]string{
		"I love spending time with you",
		"Today was wonderful, thank you",
		"So grateful for you",
		"We need to talk about the bills",
	})

	assert.Equal(t, Positive, report.OverallSentiment)
	assert.Greater(t, report.CommunicationHealth, 0.6)
	assert.Greater(t, report.EmotionalBalance, 0.5)
	assert.NotContains(t, report.Suggestions, "Focus on more positive communication")
}

func TestAnalyzeCommunicationMostlyNegative(t *testing.T) {
	analyzer := NewAnalyzer()

	report := analyzer.AnalyzeCommunication([]string{
		"I'm so frustrated and angry",
		"You were rude and mean today",
		"Feeling lonely and hurt",
	})

	assert.Equal(t, Negative, report.OverallSentiment)
	assert.Less(t, report.CommunicationHealth, 0.5)
	assert.Contains(t, report.Suggestions, "Focus on more positive communication")
	assert.Contains(t, report.Suggestions, "Express more gratitude and appreciation")
	assert.Contains(t, report.Suggestions, "Share more loving and affectionate messages")
}

func TestAnalyzeCommunicationSuggestsGratitude(t *testing.T) {
	analyzer := NewAnalyzer()

	report := analyzer.AnalyzeCommunication([]string{
		"I love you so much",
		"You make me so happy",
	})

	assert.Contains(t, report.Suggestions, "Express more gratitude and appreciation")
	assert.NotContains(t, report.Suggestions, "Share more loving and affectionate messages")
}

func TestAnalyzeCommunicationBreakdownCoreEmotionsOnly(t *testing.T) {
	analyzer := NewAnalyzer()

	report := analyzer.AnalyzeCommunication([]string{"I was surprised and shocked"})

	_, hasSurprise := report.EmotionBreakdown["surprise"]
	assert.False(t, hasSurprise)
	assert.Len(t, report.EmotionBreakdown, 6)
}
