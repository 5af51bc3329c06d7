package adaptive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreQuestionNoProfile(t *testing.T) {
	q := Question{ID: "q1", Category: "love", Difficulty: DifficultyMedium, Type: TypeOpenEnded}
	assert.InDelta(t, 0.5, ScoreQuestion(nil, q, DifficultyMedium), 1e-9)

	q.Type = TypeThisOrThat
	assert.InDelta(t, 0.6, ScoreQuestion(nil, q, DifficultyMedium), 1e-9)
}

func TestScoreQuestionFullScenario(t *testing.T) {
	// games_played=4, love weight 2.0, medium scores [0.6,0.8] -> optimal medium.
	// base 0.5 + category 0.3*(2.0/4) + difficulty 0.2 + novelty 0.3 = 1.15 -> 1.0
	p := NewUserProfile()
	p.GamesPlayed = 4
	p.PreferredCategories["love"] = 2.0
	p.PreferredCategories["fun"] = 1.0
	p.DifficultyPerformance[DifficultyMedium] = []float64{0.6, 0.8}

	optimal := OptimalDifficulty(p)
	assert.Equal(t, DifficultyMedium, optimal)

	q := Question{ID: "never-seen", Category: "love", Difficulty: DifficultyMedium, Type: TypeOpenEnded}
	assert.InDelta(t, 1.0, ScoreQuestion(p, q, optimal), 1e-9)
}

func TestScoreQuestionNoveltyBonusStrictlyHigher(t *testing.T) {
	p := NewUserProfile()
	p.GamesPlayed = 2
	p.PreferredCategories["fun"] = 1.0
	p.QuestionPreferences["seen"] = []string{"a"}

	seen := Question{ID: "seen", Category: "fun", Difficulty: DifficultyEasy, Type: TypeOpenEnded}
	fresh := Question{ID: "fresh", Category: "fun", Difficulty: DifficultyEasy, Type: TypeOpenEnded}

	seenScore := ScoreQuestion(p, seen, DifficultyMedium)
	freshScore := ScoreQuestion(p, fresh, DifficultyMedium)
	assert.Greater(t, freshScore, seenScore)
	assert.InDelta(t, noveltyBonus, freshScore-seenScore, 1e-9)
}

func TestScoreQuestionEngagingTypes(t *testing.T) {
	p := NewUserProfile()
	p.GamesPlayed = 1

	base := Question{ID: "q", Category: "x", Difficulty: DifficultyEasy, Type: TypeOpenEnded}
	mc := base
	mc.Type = TypeMultipleChoice
	tf := base
	tf.Type = TypeTrueFalse

	assert.InDelta(t, engagingTypeBonus, ScoreQuestion(p, mc, DifficultyMedium)-ScoreQuestion(p, base, DifficultyMedium), 1e-9)
	assert.InDelta(t, 0.0, ScoreQuestion(p, tf, DifficultyMedium)-ScoreQuestion(p, base, DifficultyMedium), 1e-9)
}

func TestScoreQuestionClampedToOne(t *testing.T) {
	p := NewUserProfile()
	p.GamesPlayed = 1
	p.PreferredCategories["love"] = 1.0

	q := Question{ID: "fresh", Category: "love", Difficulty: DifficultyMedium, Type: TypeMultipleChoice}
	p.DifficultyPerformance[DifficultyMedium] = []float64{0.7}
	// 0.5 + 0.3 + 0.2 + 0.3 + 0.1 = 1.4 -> clamp
	assert.Equal(t, 1.0, ScoreQuestion(p, q, DifficultyMedium))
}
