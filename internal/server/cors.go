package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/echohq/couples-platform/internal/config"
)

// CORSMiddleware applies the configured CORS policy and answers preflight
// requests before they reach the mux.
func CORSMiddleware(cfg config.CORS) func(http.Handler) http.Handler {
	allowAll := false
	originSet := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		originSet[origin] = struct{}{}
	}

	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				_, allowed := originSet[origin]
				if allowAll {
					allowed = true
				}
				if allowed {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
					if cfg.AllowCredentials {
						w.Header().Set("Access-Control-Allow-Credentials", "true")
					}
					if r.Method == http.MethodOptions {
						w.Header().Set("Access-Control-Allow-Methods", methods)
						w.Header().Set("Access-Control-Allow-Headers", headers)
						w.Header().Set("Access-Control-Max-Age", maxAge)
						w.WriteHeader(http.StatusNoContent)
						return
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
