package question

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/echohq/couples-platform/internal/adaptive"
)

// PackRequest guides pack generation.
type PackRequest struct {
	Category string
	Count    int
	Depth    string
}

// PackResponse holds generated questions and metadata.
type PackResponse struct {
	Questions   []adaptive.Question `json:"questions"`
	Category    string              `json:"category"`
	Depth       string              `json:"depth"`
	GeneratedAt int64               `json:"generated_at"`
}

// Service generates personalized question packs from the curated bank, with
// depth keyed to the requesting user's profile.
type Service struct {
	bank     *Bank
	cache    PackCache
	profiles adaptive.ProfileRepository
	logger   zerolog.Logger
}

func NewService(bank *Bank, cache PackCache, profiles adaptive.ProfileRepository, logger zerolog.Logger) *Service {
	return &Service{
		bank:     bank,
		cache:    cache,
		profiles: profiles,
		logger:   logger.With().Str("component", "question").Logger(),
	}
}

// GeneratePack builds a pack for the user. Depth (and so difficulty) follows
// how much the user has played; unknown users get the light tier.
func (s *Service) GeneratePack(ctx context.Context, userID, category string, count int) (PackResponse, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return PackResponse{}, err
	}

	gamesPlayed := 0
	if profile != nil {
		gamesPlayed = profile.GamesPlayed
	}
	depth := DepthFor(gamesPlayed)

	req := PackRequest{Category: category, Count: count, Depth: depth}
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, req); err == nil && cached != nil {
			return *cached, nil
		}
	}

	resp := PackResponse{
		Questions:   s.bank.Pack(category, count, DifficultyForDepth(depth)),
		Category:    category,
		Depth:       depth,
		GeneratedAt: time.Now().Unix(),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, req, resp); err != nil {
			s.logger.Warn().Err(err).Msg("pack cache store failed")
		}
	}
	return resp, nil
}

// DefaultPool implements adaptive.PoolProvider: the full cross-category bank
// at the difficulty matching the user's depth tier.
func (s *Service) DefaultPool(_ context.Context, profile *adaptive.UserProfile) []adaptive.Question {
	gamesPlayed := 0
	if profile != nil {
		gamesPlayed = profile.GamesPlayed
	}
	return s.bank.pool(DifficultyForDepth(DepthFor(gamesPlayed)))
}
