package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/echohq/couples-platform/internal/adaptive"
	"github.com/echohq/couples-platform/internal/auth"
	"github.com/echohq/couples-platform/internal/compatibility"
	"github.com/echohq/couples-platform/internal/config"
	"github.com/echohq/couples-platform/internal/logging"
	"github.com/echohq/couples-platform/internal/question"
	"github.com/echohq/couples-platform/internal/realtime"
	"github.com/echohq/couples-platform/internal/sentiment"
)

// Handlers groups the HTTP surfaces wired into the API server.
type Handlers struct {
	Auth          *auth.HTTPHandlers
	Adaptive      *adaptive.HTTPHandlers
	Question      *question.HTTPHandlers
	Compatibility *compatibility.HTTPHandlers
	Sentiment     *sentiment.HTTPHandlers
	Realtime      *realtime.Handler
}

// NewHTTPServer wires all routes for the API service.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, redisClient *redis.Client, authSvc *auth.Service, handlers Handlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.IntoContext(r.Context(), logger)
		if err := pingDependencies(ctx, pool, redisClient); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if handlers.Auth != nil {
		mux.HandleFunc("POST /v1/auth/register", handlers.Auth.Register)
		mux.HandleFunc("POST /v1/auth/login", handlers.Auth.Login)
		mux.HandleFunc("POST /v1/auth/refresh", handlers.Auth.RefreshToken)
		mux.HandleFunc("GET /v1/oauth/google/start", handlers.Auth.OAuthStart)
		mux.HandleFunc("GET /v1/oauth/google/callback", handlers.Auth.OAuthCallback)
		mux.HandleFunc("GET /v1/users/me", handlers.Auth.GetMe)
		mux.HandleFunc("POST /v1/users/me/partner", handlers.Auth.LinkPartner)
	}

	if handlers.Adaptive != nil {
		mux.HandleFunc("POST /v1/sessions", handlers.Adaptive.RecordSession)
		mux.HandleFunc("GET /v1/users/{id}/difficulty", handlers.Adaptive.GetDifficulty)
		mux.HandleFunc("POST /v1/questions/select", handlers.Adaptive.SelectQuestions)
		mux.HandleFunc("GET /v1/users/{id}/insights", handlers.Adaptive.GetInsights)
	}

	if handlers.Question != nil {
		mux.HandleFunc("POST /v1/questions/generate", handlers.Question.Generate)
	}

	if handlers.Compatibility != nil {
		mux.HandleFunc("POST /v1/compatibility/analyze", handlers.Compatibility.Analyze)
	}

	if handlers.Sentiment != nil {
		mux.HandleFunc("POST /v1/communication/analyze", handlers.Sentiment.AnalyzeCommunication)
	}

	if handlers.Realtime != nil {
		mux.HandleFunc("GET /ws/couples", handlers.Realtime.ServeWS)
	}

	var root http.Handler = mux
	if authSvc != nil {
		root = auth.Middleware(authSvc, logger)(root)
	}
	root = CORSMiddleware(cfg.CORS)(root)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: root,
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, redisClient *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return err
	}
	return nil
}
