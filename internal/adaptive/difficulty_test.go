package adaptive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func profileWithScores(scores map[string][]float64) *UserProfile {
	p := NewUserProfile()
	p.GamesPlayed = 1
	for tier, ss := range scores {
		p.DifficultyPerformance[tier] = ss
	}
	return p
}

func TestOptimalDifficultyNilProfile(t *testing.T) {
	assert.Equal(t, DifficultyMedium, OptimalDifficulty(nil))
}

func TestOptimalDifficultyNoScores(t *testing.T) {
	p := NewUserProfile()
	p.GamesPlayed = 3
	assert.Equal(t, DifficultyMedium, OptimalDifficulty(p))
}

func TestOptimalDifficultyPicksBestMean(t *testing.T) {
	p := profileWithScores(map[string][]float64{
		DifficultyEasy:   {0.4, 0.5},
		DifficultyMedium: {0.6, 0.8},
		DifficultyHard:   {0.3},
	})
	assert.Equal(t, DifficultyMedium, OptimalDifficulty(p))
}

func TestOptimalDifficultyEscalatesAboveThreshold(t *testing.T) {
	p := profileWithScores(map[string][]float64{
		DifficultyEasy: {0.85},
	})
	assert.Equal(t, DifficultyMedium, OptimalDifficulty(p))

	p = profileWithScores(map[string][]float64{
		DifficultyMedium: {0.9, 0.95},
	})
	assert.Equal(t, DifficultyHard, OptimalDifficulty(p))
}

func TestOptimalDifficultyHardIsCeiling(t *testing.T) {
	p := profileWithScores(map[string][]float64{
		DifficultyHard: {0.9, 0.9},
	})
	assert.Equal(t, DifficultyHard, OptimalDifficulty(p))
}

func TestOptimalDifficultyNoEscalationAtThreshold(t *testing.T) {
	// 0.8 is not strictly greater than the threshold
	p := profileWithScores(map[string][]float64{
		DifficultyEasy: {0.8},
	})
	assert.Equal(t, DifficultyEasy, OptimalDifficulty(p))
}
