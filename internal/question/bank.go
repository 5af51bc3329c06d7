package question

import (
	"fmt"
	"sort"

	"github.com/echohq/couples-platform/internal/adaptive"
)

// Depth tiers for generated questions, keyed off how much a user has played.
const (
	DepthLight  = "light"
	DepthMedium = "medium"
	DepthDeep   = "deep"
)

// templates holds the curated per-category prompt bank.
var templates = map[string][]string{
	"communication": {
		"When we disagree, I prefer to:",
		"I feel most heard when you:",
		"During conflicts, I tend to:",
		"I prefer to receive feedback:",
		"When making decisions together, I:",
	},
	"intimacy": {
		"I feel most emotionally connected when we:",
		"Physical affection is most meaningful to me when:",
		"I feel most comfortable being vulnerable when:",
		"Our relationship feels strongest when we:",
		"I show love best through:",
	},
	"fun": {
		"For our ideal date night, I'd choose:",
		"When we have free time, I prefer:",
		"I'm most excited about activities that are:",
		"My favorite way to spend weekends together is:",
		"I feel most energized when we:",
	},
	"love": {
		"I feel most loved when you:",
		"My primary love language is:",
		"I prefer to show affection through:",
		"What makes me feel most appreciated is:",
		"I feel most secure in our relationship when:",
	},
	"future": {
		"In 5 years, I see us:",
		"My biggest relationship goal is:",
		"I'm most excited about our future when I think about:",
		"For our relationship to grow, we should focus on:",
		"My dream for us includes:",
	},
	"activities": {
		"I prefer activities that are:",
		"My ideal way to spend time together is:",
		"I'm most interested in trying:",
		"When choosing activities, I prioritize:",
		"I feel most engaged when we:",
	},
	"memories": {
		"My favorite type of memories with you involve:",
		"I treasure moments when we:",
		"The memories that mean most to me are:",
		"I love remembering times when we:",
		"Our best memories happen when we:",
	},
	"general": {
		"In relationships, I value most:",
		"My communication style is typically:",
		"I handle stress best when:",
		"I feel most supported when:",
		"My approach to problem-solving is:",
	},
}

// Bank serves curated prompts as adaptive questions. Question ids are
// deterministic (category plus template index) so novelty tracking and the
// recency filter work across restarts.
type Bank struct {
	categories []string
}

func NewBank() *Bank {
	categories := make([]string, 0, len(templates))
	for cat := range templates {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	return &Bank{categories: categories}
}

// Categories lists the known categories in stable order.
func (b *Bank) Categories() []string {
	return append([]string(nil), b.categories...)
}

// HasCategory reports whether the bank carries prompts for the category.
func (b *Bank) HasCategory(category string) bool {
	_, ok := templates[category]
	return ok
}

// Pack builds up to count questions from one category, cycling templates
// when count exceeds the bank. Unknown categories fall back to general.
func (b *Bank) Pack(category string, count int, difficulty string) []adaptive.Question {
	prompts, ok := templates[category]
	if !ok {
		category = "general"
		prompts = templates[category]
	}
	if count <= 0 {
		return nil
	}

	questions := make([]adaptive.Question, count)
	for i := 0; i < count; i++ {
		idx := i % len(prompts)
		questions[i] = adaptive.Question{
			ID:         fmt.Sprintf("%s-%d", category, idx),
			Prompt:     prompts[idx],
			Category:   category,
			Difficulty: difficulty,
			Type:       adaptive.TypeMultipleChoice,
		}
	}
	return questions
}

// DefaultPool builds a cross-category candidate pool for selection when the
// caller supplies none. Difficulty follows the user's depth tier.
func (b *Bank) pool(difficulty string) []adaptive.Question {
	var pool []adaptive.Question
	for _, category := range b.categories {
		prompts := templates[category]
		for idx, prompt := range prompts {
			pool = append(pool, adaptive.Question{
				ID:         fmt.Sprintf("%s-%d", category, idx),
				Prompt:     prompt,
				Category:   category,
				Difficulty: difficulty,
				Type:       adaptive.TypeMultipleChoice,
			})
		}
	}
	return pool
}

// DepthFor maps play volume to a depth tier: newcomers get light prompts,
// couples past ten sessions get deep ones.
func DepthFor(gamesPlayed int) string {
	switch {
	case gamesPlayed > 10:
		return DepthDeep
	case gamesPlayed > 5:
		return DepthMedium
	default:
		return DepthLight
	}
}

// DifficultyForDepth maps a depth tier onto the difficulty scale used by the
// adaptive engine.
func DifficultyForDepth(depth string) string {
	switch depth {
	case DepthDeep:
		return adaptive.DifficultyHard
	case DepthMedium:
		return adaptive.DifficultyMedium
	default:
		return adaptive.DifficultyEasy
	}
}
