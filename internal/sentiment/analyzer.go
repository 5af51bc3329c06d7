package sentiment

import (
	"math"
	"strings"
	"unicode"
)

// Sentiment labels.
const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
)

// positiveWords and negativeWords form a small lexicon tuned for
// relationship-context messages.
var positiveWords = wordSet(
	"love", "happy", "joy", "amazing", "wonderful", "great", "fantastic",
	"excited", "grateful", "blessed", "perfect", "beautiful", "awesome",
	"incredible", "thrilled", "delighted", "content", "peaceful", "warm",
	"caring", "supportive", "understanding", "romantic", "sweet", "kind",
)

var negativeWords = wordSet(
	"sad", "angry", "frustrated", "disappointed", "hurt", "upset", "mad",
	"annoyed", "worried", "stressed", "anxious", "confused", "lonely",
	"tired", "exhausted", "overwhelmed", "distant", "cold", "harsh",
	"critical", "judgmental", "impatient", "selfish", "rude", "mean",
)

var emotionKeywords = map[string]map[string]struct{}{
	"joy":       wordSet("happy", "joyful", "excited", "thrilled", "delighted", "elated"),
	"love":      wordSet("love", "adore", "cherish", "treasure", "romantic", "affection"),
	"gratitude": wordSet("grateful", "thankful", "blessed", "appreciate", "lucky"),
	"sadness":   wordSet("sad", "disappointed", "hurt", "lonely", "melancholy"),
	"anger":     wordSet("angry", "mad", "frustrated", "annoyed", "irritated", "furious"),
	"anxiety":   wordSet("worried", "anxious", "nervous", "stressed", "concerned", "tense"),
	"surprise":  wordSet("surprised", "shocked", "amazed", "astonished", "stunned"),
	"trust":     wordSet("trust", "secure", "safe", "confident", "reliable", "dependable"),
}

// Result is the sentiment of a single text.
type Result struct {
	Sentiment  string             `json:"sentiment"`
	Confidence float64            `json:"confidence"`
	Emotions   map[string]float64 `json:"emotions"`
}

// CommunicationReport aggregates sentiment across a couple's recent messages.
type CommunicationReport struct {
	OverallSentiment    string             `json:"overall_sentiment"`
	CommunicationHealth float64            `json:"communication_health"`
	EmotionalBalance    float64            `json:"emotional_balance"`
	EmotionBreakdown    map[string]float64 `json:"emotion_breakdown,omitempty"`
	Suggestions         []string           `json:"suggestions"`
}

// Analyzer is a lexicon-based sentiment scorer. It carries no state and is
// safe for concurrent use.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze labels a single text and scores its emotion keywords.
func (a *Analyzer) Analyze(text string) Result {
	words := tokenize(text)

	positive := 0
	negative := 0
	for _, word := range words {
		if _, ok := positiveWords[word]; ok {
			positive++
		}
		if _, ok := negativeWords[word]; ok {
			negative++
		}
	}

	sentiment := Neutral
	confidence := 0.5
	if positive+negative > 0 {
		score := float64(positive-negative) / float64(len(words))
		switch {
		case score > 0.1:
			sentiment = Positive
			confidence = math.Min(0.9, 0.5+math.Abs(score)*2)
		case score < -0.1:
			sentiment = Negative
			confidence = math.Min(0.9, 0.5+math.Abs(score)*2)
		default:
			confidence = 0.6
		}
	}

	return Result{
		Sentiment:  sentiment,
		Confidence: round2(confidence),
		Emotions:   emotionScores(words),
	}
}

// coreEmotions are the ones the communication aggregate tracks; surprise and
// trust only appear in single-text results.
var coreEmotions = []string{"joy", "love", "gratitude", "sadness", "anger", "anxiety"}

// AnalyzeCommunication scores a batch of messages for overall health and
// emotional balance, with suggestions when either runs low.
func (a *Analyzer) AnalyzeCommunication(messages []string) CommunicationReport {
	if len(messages) == 0 {
		return CommunicationReport{
			OverallSentiment:    Neutral,
			CommunicationHealth: 0.5,
			EmotionalBalance:    0.5,
			Suggestions:         []string{"Start communicating more to get insights"},
		}
	}

	breakdown := make(map[string]float64, len(coreEmotions))
	for _, emotion := range coreEmotions {
		breakdown[emotion] = 0
	}

	positiveCount := 0
	negativeCount := 0
	for _, message := range messages {
		result := a.Analyze(message)
		switch result.Sentiment {
		case Positive:
			positiveCount++
		case Negative:
			negativeCount++
		}
		for _, emotion := range coreEmotions {
			breakdown[emotion] += result.Emotions[emotion]
		}
	}

	total := float64(len(messages))
	positiveRatio := float64(positiveCount) / total
	negativeRatio := float64(negativeCount) / total

	overall := Neutral
	if positiveRatio > 0.5 {
		overall = Positive
	} else if negativeRatio > 0.3 {
		overall = Negative
	}

	health := clamp(positiveRatio-negativeRatio*0.5+0.5, 0, 1)

	positiveEmotions := breakdown["joy"] + breakdown["love"] + breakdown["gratitude"]
	negativeEmotions := breakdown["sadness"] + breakdown["anger"] + breakdown["anxiety"]
	balance := 0.5
	if positiveEmotions+negativeEmotions > 0 {
		balance = positiveEmotions / (positiveEmotions + negativeEmotions)
	}

	var suggestions []string
	if health < 0.6 {
		suggestions = append(suggestions, "Focus on more positive communication")
	}
	if breakdown["gratitude"] < 0.1 {
		suggestions = append(suggestions, "Express more gratitude and appreciation")
	}
	if breakdown["love"] < 0.1 {
		suggestions = append(suggestions, "Share more loving and affectionate messages")
	}

	return CommunicationReport{
		OverallSentiment:    overall,
		CommunicationHealth: round2(health),
		EmotionalBalance:    round2(balance),
		EmotionBreakdown:    breakdown,
		Suggestions:         suggestions,
	}
}

func emotionScores(words []string) map[string]float64 {
	denom := float64(len(words))
	if denom < 1 {
		denom = 1
	}

	emotions := make(map[string]float64, len(emotionKeywords))
	for emotion, keywords := range emotionKeywords {
		hits := 0
		for _, word := range words {
			if _, ok := keywords[word]; ok {
				hits++
			}
		}
		emotions[emotion] = round2(float64(hits) / denom)
	}
	return emotions
}

// tokenize lowercases the text, strips punctuation and splits on whitespace.
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, text)
	return strings.Fields(cleaned)
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
