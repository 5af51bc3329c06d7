package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/echohq/couples-platform/internal/auth/jwt"
	"github.com/echohq/couples-platform/internal/db/repository"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore persists account rows. Implemented by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, params repository.CreateUserParams) (repository.User, error)
	GetByEmail(ctx context.Context, email string) (repository.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (repository.User, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
	LinkPartner(ctx context.Context, userID, partnerID uuid.UUID) error
}

// Service handles authentication and account management.
type Service struct {
	users    UserStore
	tokenMgr *jwt.Manager
	logger   zerolog.Logger
}

// ServiceOptions configures the auth service.
type ServiceOptions struct {
	TokenConfig jwt.TokenConfig
}

// NewService creates an authentication service.
func NewService(users UserStore, opts ServiceOptions, logger zerolog.Logger) *Service {
	return &Service{
		users:    users,
		tokenMgr: jwt.NewManager(opts.TokenConfig),
		logger:   logger,
	}
}

// Register creates a new account with email and password.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, *TokenPair, error) {
	if req.Email == "" {
		return nil, nil, fmt.Errorf("email required")
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, fmt.Errorf("lookup email: %w", err)
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	pgHash := pgtype.Text{String: passwordHash, Valid: true}
	row, err := s.users.Create(ctx, repository.CreateUserParams{
		Email:        req.Email,
		PasswordHash: pgHash,
		DisplayName:  req.DisplayName,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	user := userFromRow(row)
	tokens, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("email", req.Email).Msg("user registered")

	return &user, tokens, nil
}

// Login authenticates a user with email/password.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*User, *TokenPair, error) {
	row, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !row.PasswordHash.Valid {
		// OAuth-only account
		return nil, nil, ErrInvalidCredentials
	}
	if err := VerifyPassword(row.PasswordHash.String, req.Password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	user := userFromRow(row)

	_ = s.users.UpdateLastLogin(ctx, user.ID)

	tokens, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user logged in")

	return &user, tokens, nil
}

// RefreshToken generates a new token pair from a refresh token.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokenMgr.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	row, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	user := userFromRow(row)
	return s.generateTokenPair(user)
}

// GetUser returns the account for the given id.
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	row, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user := userFromRow(row)
	return &user, nil
}

// LinkPartner connects the caller's account with the partner's by email.
func (s *Service) LinkPartner(ctx context.Context, userID uuid.UUID, partnerEmail string) (*User, error) {
	partner, err := s.users.GetByEmail(ctx, partnerEmail)
	if err != nil {
		return nil, err
	}
	if partner.ID == userID {
		return nil, fmt.Errorf("cannot link to own account")
	}

	if err := s.users.LinkPartner(ctx, userID, partner.ID); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("partner_id", partner.ID.String()).
		Msg("couple linked")

	return s.GetUser(ctx, userID)
}

// ValidateToken validates an access token and returns user claims.
func (s *Service) ValidateToken(tokenString string) (*jwt.Claims, error) {
	return s.tokenMgr.ValidateAccessToken(tokenString)
}

func (s *Service) generateTokenPair(user User) (*TokenPair, error) {
	jwtUser := jwt.User{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}

	accessToken, err := s.tokenMgr.GenerateAccessToken(jwtUser)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokenMgr.GenerateRefreshToken(jwtUser)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokenMgr.AccessTTL().Seconds()),
	}, nil
}

func userFromRow(row repository.User) User {
	user := User{
		ID:          row.ID,
		Email:       row.Email,
		DisplayName: row.DisplayName,
	}
	if row.PartnerID.Valid {
		partnerID := uuid.UUID(row.PartnerID.Bytes)
		user.PartnerID = &partnerID
	}
	return user
}
