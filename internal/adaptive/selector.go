package adaptive

import (
	"context"
	"fmt"
	"sort"
)

// DefaultRecentSessionWindow is how many of a couple's latest sessions feed
// the recently-asked filter.
const DefaultRecentSessionWindow = 3

// Selector ranks candidate questions for a couple, excluding recently asked
// ones where that still leaves enough candidates.
type Selector struct {
	profiles     ProfileRepository
	history      HistoryRepository
	recentWindow int
}

// NewSelector builds a selector; window <= 0 falls back to the default.
func NewSelector(profiles ProfileRepository, history HistoryRepository, window int) *Selector {
	if window <= 0 {
		window = DefaultRecentSessionWindow
	}
	return &Selector{profiles: profiles, history: history, recentWindow: window}
}

// RecentQuestionIDs returns the union of question ids across the couple's
// last window sessions.
func (s *Selector) RecentQuestionIDs(ctx context.Context, userID, partnerID string) (map[string]struct{}, error) {
	sessions, err := s.history.Recent(ctx, CoupleKey(userID, partnerID), s.recentWindow)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}
	recent := make(map[string]struct{})
	for _, session := range sessions {
		for _, id := range session.QuestionIDs {
			recent[id] = struct{}{}
		}
	}
	return recent, nil
}

// Select returns the top count candidates by relevance score. The recency
// filter is best-effort: when excluding recent questions would leave fewer
// than count candidates, the unfiltered pool is scored instead. Ties keep
// input order so identical state always yields identical results.
func (s *Selector) Select(ctx context.Context, userID, partnerID string, pool []Question, count int) ([]Question, error) {
	if len(pool) == 0 || count <= 0 {
		return nil, nil
	}

	recent, err := s.RecentQuestionIDs(ctx, userID, partnerID)
	if err != nil {
		return nil, err
	}

	candidates := pool
	if len(recent) > 0 {
		filtered := make([]Question, 0, len(pool))
		for _, q := range pool {
			if _, used := recent[q.ID]; !used {
				filtered = append(filtered, q)
			}
		}
		if len(filtered) >= count {
			candidates = filtered
		}
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	optimal := OptimalDifficulty(profile)

	type ranked struct {
		question Question
		score    float64
	}
	scored := make([]ranked, len(candidates))
	for i, q := range candidates {
		scored[i] = ranked{question: q, score: ScoreQuestion(profile, q, optimal)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if count > len(scored) {
		count = len(scored)
	}
	selected := make([]Question, count)
	for i := range selected {
		selected[i] = scored[i].question
	}
	return selected, nil
}
