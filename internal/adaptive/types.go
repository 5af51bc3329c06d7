package adaptive

import (
	"time"
)

// Difficulty tiers, ordered easiest to hardest.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// difficultyOrder drives tier escalation and deterministic iteration.
var difficultyOrder = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Question type constants.
const (
	TypeOpenEnded      = "open_ended"
	TypeMultipleChoice = "multiple_choice"
	TypeThisOrThat     = "this_or_that"
	TypeTrueFalse      = "true_false"
)

// ValidDifficulty reports whether d is a known difficulty tier.
func ValidDifficulty(d string) bool {
	for _, tier := range difficultyOrder {
		if tier == d {
			return true
		}
	}
	return false
}

// Question is a candidate supplied by the question bank or an external caller.
// The engine treats it as read-only.
type Question struct {
	ID         string   `json:"id"`
	Prompt     string   `json:"prompt"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
	Type       string   `json:"type"`
	Options    []string `json:"options,omitempty"`
}

// SessionData carries one player's results from a completed game session.
// Score and EngagementScore are validated to [0,1] at the HTTP boundary.
type SessionData struct {
	Score           float64           `json:"score"`
	Category        string            `json:"category"`
	Difficulty      string            `json:"difficulty"`
	EngagementScore float64           `json:"engagement_score"`
	QuestionIDs     []string          `json:"question_ids"`
	Responses       map[string]string `json:"responses"`
}

// UserProfile accumulates per-user play history. Mutated only through
// ProfileRepository.Update so concurrent sessions cannot interleave
// partial counter updates.
type UserProfile struct {
	GamesPlayed           int                  `json:"games_played"`
	AvgScore              float64              `json:"avg_score"`
	PreferredCategories   map[string]float64   `json:"preferred_categories"`
	DifficultyPerformance map[string][]float64 `json:"difficulty_performance"`
	EngagementScores      []float64            `json:"engagement_scores"`
	QuestionPreferences   map[string][]string  `json:"question_preferences"`
}

// NewUserProfile returns an empty profile with initialized maps.
func NewUserProfile() *UserProfile {
	return &UserProfile{
		PreferredCategories:   make(map[string]float64),
		DifficultyPerformance: make(map[string][]float64),
		QuestionPreferences:   make(map[string][]string),
	}
}

// Normalize initializes any nil maps, e.g. after JSON decoding a stored profile.
func (p *UserProfile) Normalize() {
	if p.PreferredCategories == nil {
		p.PreferredCategories = make(map[string]float64)
	}
	if p.DifficultyPerformance == nil {
		p.DifficultyPerformance = make(map[string][]float64)
	}
	if p.QuestionPreferences == nil {
		p.QuestionPreferences = make(map[string][]string)
	}
}

// Apply folds one session into the profile. The running average keeps
// avg_score equal to the arithmetic mean of every recorded score.
func (p *UserProfile) Apply(s SessionData) {
	p.GamesPlayed++
	n := float64(p.GamesPlayed)
	p.AvgScore = (p.AvgScore*(n-1) + s.Score) / n

	p.PreferredCategories[s.Category] += s.EngagementScore
	p.DifficultyPerformance[s.Difficulty] = append(p.DifficultyPerformance[s.Difficulty], s.Score)
	p.EngagementScores = append(p.EngagementScores, s.EngagementScore)

	for questionID, response := range s.Responses {
		p.QuestionPreferences[questionID] = append(p.QuestionPreferences[questionID], response)
	}
}

// Clone returns a deep copy so readers get a consistent snapshot.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	out := NewUserProfile()
	out.GamesPlayed = p.GamesPlayed
	out.AvgScore = p.AvgScore
	for k, v := range p.PreferredCategories {
		out.PreferredCategories[k] = v
	}
	for k, v := range p.DifficultyPerformance {
		out.DifficultyPerformance[k] = append([]float64(nil), v...)
	}
	out.EngagementScores = append([]float64(nil), p.EngagementScores...)
	for k, v := range p.QuestionPreferences {
		out.QuestionPreferences[k] = append([]string(nil), v...)
	}
	return out
}

// CoupleSession is one appended record in a couple's shared history.
type CoupleSession struct {
	Timestamp   time.Time                    `json:"timestamp"`
	QuestionIDs []string                     `json:"question_ids"`
	Responses   map[string]map[string]string `json:"responses"`
	Scores      map[string]float64           `json:"scores"`
	Engagement  float64                      `json:"engagement"`
}

// CoupleKey derives the canonical order-independent key for a pair of users.
func CoupleKey(userID, partnerID string) string {
	if partnerID < userID {
		userID, partnerID = partnerID, userID
	}
	return userID + "::" + partnerID
}
