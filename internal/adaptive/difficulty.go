package adaptive

// escalationThreshold is the mean score above which a user is pushed one
// tier harder than their best-performing difficulty.
const escalationThreshold = 0.8

// OptimalDifficulty picks the tier where the user's mean score is highest.
// Users with no recorded scores get medium. A best tier averaging above the
// escalation threshold is bumped one tier harder, capped at hard.
func OptimalDifficulty(profile *UserProfile) string {
	if profile == nil {
		return DifficultyMedium
	}

	best := ""
	bestMean := -1.0
	for _, tier := range difficultyOrder {
		scores := profile.DifficultyPerformance[tier]
		if len(scores) == 0 {
			continue
		}
		if m := mean(scores); m > bestMean {
			best, bestMean = tier, m
		}
	}

	if best == "" {
		return DifficultyMedium
	}
	if bestMean > escalationThreshold && best != DifficultyHard {
		return nextTier(best)
	}
	return best
}

func nextTier(tier string) string {
	for i, t := range difficultyOrder {
		if t == tier && i+1 < len(difficultyOrder) {
			return difficultyOrder[i+1]
		}
	}
	return DifficultyHard
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
