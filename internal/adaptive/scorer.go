package adaptive

// Relevance scoring weights. The sum can exceed 1.0 before clamping.
const (
	baseScore            = 0.5
	categoryAffinityMax  = 0.3
	difficultyMatchBonus = 0.2
	noveltyBonus         = 0.3
	engagingTypeBonus    = 0.1
)

// ScoreQuestion assigns a relevance score in [0,1] to a candidate question.
// profile may be nil (unknown user): only the base score and the
// engaging-type bonus apply then, since no preference signal exists yet.
func ScoreQuestion(profile *UserProfile, q Question, optimalDifficulty string) float64 {
	score := baseScore

	if profile != nil && profile.GamesPlayed > 0 {
		if weight, ok := profile.PreferredCategories[q.Category]; ok {
			score += categoryAffinityMax * (weight / float64(profile.GamesPlayed))
		}
		if q.Difficulty == optimalDifficulty {
			score += difficultyMatchBonus
		}
		if _, seen := profile.QuestionPreferences[q.ID]; !seen {
			score += noveltyBonus
		}
	}

	if q.Type == TypeThisOrThat || q.Type == TypeMultipleChoice {
		score += engagingTypeBonus
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}
