package compatibility

import (
	"fmt"
	"math"
	"sort"
)

// Answers maps category -> question key -> decoded JSON answer value.
type Answers map[string]map[string]interface{}

// Report is the compatibility payload for a couple.
type Report struct {
	CompatibilityScore float64            `json:"compatibility_score"`
	CategoryScores     map[string]float64 `json:"category_scores"`
	Insights           []string           `json:"insights"`
	Recommendations    []string           `json:"recommendations"`
}

// neutralScore stands in for categories where one or both partners have no
// recorded answers.
const neutralScore = 0.5

// Analyzer computes category-weighted compatibility between two answer sets.
type Analyzer struct {
	weights map[string]float64
}

// NewAnalyzer uses the fixed production category weights.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		weights: map[string]float64{
			"communication": 0.25,
			"values":        0.20,
			"lifestyle":     0.15,
			"intimacy":      0.15,
			"goals":         0.15,
			"personality":   0.10,
		},
	}
}

// Analyze scores each weighted category by comparing answers the partners
// share, then folds the categories into an overall score.
func (a *Analyzer) Analyze(user1, user2 Answers) Report {
	categoryScores := make(map[string]float64, len(a.weights))
	overall := 0.0
	for category, weight := range a.weights {
		score := a.categoryScore(user1[category], user2[category])
		categoryScores[category] = round2(score)
		overall += score * weight
	}

	return Report{
		CompatibilityScore: round2(overall),
		CategoryScores:     categoryScores,
		Insights:           a.insights(categoryScores, overall),
		Recommendations:    a.recommendations(categoryScores),
	}
}

// categoryScore averages per-question similarity over the keys both partners
// answered. Missing data resolves to the neutral score, never an error.
func (a *Analyzer) categoryScore(answers1, answers2 map[string]interface{}) float64 {
	if len(answers1) == 0 || len(answers2) == 0 {
		return neutralScore
	}

	var sum float64
	shared := 0
	for key, v1 := range answers1 {
		v2, ok := answers2[key]
		if !ok {
			continue
		}
		sum += AnswerSimilarity(v1, v2)
		shared++
	}
	if shared == 0 {
		return neutralScore
	}
	return sum / float64(shared)
}

func (a *Analyzer) insights(categoryScores map[string]float64, overall float64) []string {
	insights := []string{overallInsight(overall)}

	var strong, weak []string
	for _, category := range sortedCategories(categoryScores) {
		switch score := categoryScores[category]; {
		case score > 0.7:
			strong = append(strong, category)
		case score < 0.5:
			weak = append(weak, category)
		}
	}
	if len(strong) > 0 {
		insights = append(insights, fmt.Sprintf("Your strongest areas: %s", joinList(strong)))
	}
	if len(weak) > 0 {
		insights = append(insights, fmt.Sprintf("Areas needing attention: %s", joinList(weak)))
	}
	return insights
}

func overallInsight(score float64) string {
	switch {
	case score > 0.8:
		return "You have excellent compatibility across most areas!"
	case score > 0.6:
		return "You have good compatibility with room for growth in some areas."
	default:
		return "There are significant differences that require attention and communication."
	}
}

var recommendationMap = map[string]string{
	"communication": "Practice daily check-ins and active listening",
	"values":        "Discuss your core values and find common ground",
	"lifestyle":     "Find activities you both enjoy and create shared routines",
	"intimacy":      "Schedule regular quality time and express appreciation",
	"goals":         "Create shared goals and support each other's dreams",
	"personality":   "Embrace your differences and find complementary strengths",
}

// recommendations targets the three weakest categories scoring under 0.7.
func (a *Analyzer) recommendations(categoryScores map[string]float64) []string {
	categories := sortedCategories(categoryScores)
	sort.SliceStable(categories, func(i, j int) bool {
		return categoryScores[categories[i]] < categoryScores[categories[j]]
	})

	var out []string
	for _, category := range categories {
		if len(out) == 3 {
			break
		}
		if categoryScores[category] < 0.7 {
			if rec, ok := recommendationMap[category]; ok {
				out = append(out, rec)
			}
		}
	}
	return out
}

func sortedCategories(scores map[string]float64) []string {
	categories := make([]string, 0, len(scores))
	for category := range scores {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

func joinList(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
