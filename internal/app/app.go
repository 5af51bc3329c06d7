package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/echohq/couples-platform/internal/adaptive"
	"github.com/echohq/couples-platform/internal/auth"
	"github.com/echohq/couples-platform/internal/auth/jwt"
	"github.com/echohq/couples-platform/internal/compatibility"
	"github.com/echohq/couples-platform/internal/config"
	"github.com/echohq/couples-platform/internal/db/repository"
	"github.com/echohq/couples-platform/internal/logging"
	"github.com/echohq/couples-platform/internal/question"
	"github.com/echohq/couples-platform/internal/realtime"
	"github.com/echohq/couples-platform/internal/sentiment"
	"github.com/echohq/couples-platform/internal/server"
	ws "github.com/echohq/couples-platform/pkg/http/ws"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps configs, logger, Postgres, Redis and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	if cfg.Security.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be configured")
	}

	userRepo := repository.NewUserRepository(pool)
	profileRepo := repository.NewLockedProfileRepository(
		repository.NewProfileRepository(pool),
		repository.NewProfileLocker(redisClient, logger),
	)
	sessionRepo := repository.NewSessionRepository(pool)

	tokenCfg := jwt.TokenConfig{
		AccessSecret:  []byte(cfg.Security.JWTSecret),
		RefreshSecret: []byte(cfg.Security.JWTRefreshSecret),
		AccessTTL:     cfg.Security.AccessTokenTTL,
		RefreshTTL:    cfg.Security.RefreshTokenTTL,
		Issuer:        cfg.Name,
	}

	authSvc := auth.NewService(userRepo, auth.ServiceOptions{
		TokenConfig: tokenCfg,
	}, logger)

	var oauthSvc *auth.OAuthService
	if cfg.OAuth.GoogleClientID != "" && cfg.OAuth.GoogleClientSecret != "" {
		redirectURL := cfg.OAuth.GoogleRedirectURL
		if redirectURL == "" {
			redirectURL = fmt.Sprintf("http://%s/v1/oauth/google/callback", cfg.HTTPAddr)
		}
		oauthSvc = auth.NewOAuthService(
			cfg.OAuth.GoogleClientID,
			cfg.OAuth.GoogleClientSecret,
			redirectURL,
			logger,
		)
		logger.Info().Msg("OAuth service initialized")
	} else {
		logger.Warn().Msg("OAuth not configured (missing GOOGLE_OAUTH_CLIENT_ID or GOOGLE_OAUTH_CLIENT_SECRET)")
	}

	authHandlers := auth.NewHTTPHandlers(authSvc, oauthSvc, logger)

	wsHub := ws.NewHub(logger)

	adaptiveSvc := adaptive.NewService(profileRepo, sessionRepo, adaptive.ServiceOptions{
		RecentSessionWindow: cfg.Adaptive.RecentSessionWindow,
	}, logger)
	insightCache := adaptive.NewInsightCache(redisClient, cfg.Adaptive.InsightCacheTTL)

	questionBank := question.NewBank()
	packCache := question.NewCache(redisClient, cfg.Question.PackCacheTTL)
	questionSvc := question.NewService(questionBank, packCache, profileRepo, logger)
	questionHandlers := question.NewHTTPHandlers(questionSvc, logger)

	adaptiveHandlers := adaptive.NewHTTPHandlers(adaptiveSvc, insightCache, questionSvc, wsHub, adaptive.HandlerOptions{
		DefaultQuestionCount: cfg.Adaptive.DefaultQuestionCount,
		MaxQuestionCount:     cfg.Adaptive.MaxQuestionCount,
	}, logger)

	compatHandlers := compatibility.NewHTTPHandlers(compatibility.NewAnalyzer(), logger)
	sentimentHandlers := sentiment.NewHTTPHandlers(sentiment.NewAnalyzer(), logger)
	realtimeHandler := realtime.NewHandler(wsHub, cfg.CORS.AllowedOrigins, logger)

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, authSvc, server.Handlers{
		Auth:          authHandlers,
		Adaptive:      adaptiveHandlers,
		Question:      questionHandlers,
		Compatibility: compatHandlers,
		Sentiment:     sentimentHandlers,
		Realtime:      realtimeHandler,
	})

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
