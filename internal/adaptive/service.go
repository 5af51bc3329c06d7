package adaptive

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Service is the facade over the adaptive engine: session recording,
// difficulty estimation, question selection, and insight reporting.
type Service struct {
	profiles ProfileRepository
	history  HistoryRepository
	selector *Selector
	logger   zerolog.Logger
}

// ServiceOptions configures engine behavior.
type ServiceOptions struct {
	// RecentSessionWindow is how many latest couple sessions feed the
	// recently-asked filter (default 3).
	RecentSessionWindow int
}

// NewService wires the engine against the given repositories.
func NewService(profiles ProfileRepository, history HistoryRepository, opts ServiceOptions, logger zerolog.Logger) *Service {
	return &Service{
		profiles: profiles,
		history:  history,
		selector: NewSelector(profiles, history, opts.RecentSessionWindow),
		logger:   logger.With().Str("component", "adaptive").Logger(),
	}
}

// RecordSessionRequest carries one completed game session for a couple.
// PartnerSession is optional; when present the partner's profile is updated
// in the same call.
type RecordSessionRequest struct {
	UserID         string
	PartnerID      string
	Session        SessionData
	PartnerSession *SessionData
}

// RecordSession appends the session to the couple's history and folds the
// results into each player's profile. Unknown users get fresh profiles.
func (s *Service) RecordSession(ctx context.Context, req RecordSessionRequest) error {
	coupleKey := CoupleKey(req.UserID, req.PartnerID)

	session := CoupleSession{
		Timestamp:   time.Now().UTC(),
		QuestionIDs: req.Session.QuestionIDs,
		Responses:   map[string]map[string]string{req.UserID: req.Session.Responses},
		Scores:      map[string]float64{req.UserID: req.Session.Score},
		Engagement:  req.Session.EngagementScore,
	}
	if req.PartnerSession != nil {
		session.Responses[req.PartnerID] = req.PartnerSession.Responses
		session.Scores[req.PartnerID] = req.PartnerSession.Score
	}

	if err := s.history.Append(ctx, coupleKey, session); err != nil {
		return fmt.Errorf("append couple session: %w", err)
	}

	if err := s.profiles.Update(ctx, req.UserID, func(p *UserProfile) {
		p.Apply(req.Session)
	}); err != nil {
		return fmt.Errorf("update profile %s: %w", req.UserID, err)
	}

	if req.PartnerSession != nil && req.PartnerID != "" && req.PartnerID != req.UserID {
		if err := s.profiles.Update(ctx, req.PartnerID, func(p *UserProfile) {
			p.Apply(*req.PartnerSession)
		}); err != nil {
			return fmt.Errorf("update partner profile %s: %w", req.PartnerID, err)
		}
	}

	s.logger.Debug().
		Str("couple_key", coupleKey).
		Int("question_count", len(req.Session.QuestionIDs)).
		Msg("session recorded")
	return nil
}

// OptimalDifficulty returns the difficulty estimate for the user, medium when
// the user is unknown.
func (s *Service) OptimalDifficulty(ctx context.Context, userID string) (string, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load profile: %w", err)
	}
	return OptimalDifficulty(profile), nil
}

// SelectQuestions ranks the candidate pool for the couple and returns the
// top count entries. An empty pool yields an empty result, never an error.
func (s *Service) SelectQuestions(ctx context.Context, userID, partnerID string, pool []Question, count int) ([]Question, error) {
	return s.selector.Select(ctx, userID, partnerID, pool, count)
}

// Insights builds the insight report for the user. Unknown users get the
// fixed insufficient-data report.
func (s *Service) Insights(ctx context.Context, userID string) (Report, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return Report{}, fmt.Errorf("load profile: %w", err)
	}
	return BuildReport(profile), nil
}
