package compatibility

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/echohq/couples-platform/pkg/http/errors"
)

// HTTPHandlers exposes compatibility analysis over REST.
type HTTPHandlers struct {
	analyzer *Analyzer
	logger   zerolog.Logger
}

func NewHTTPHandlers(analyzer *Analyzer, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		analyzer: analyzer,
		logger:   logger.With().Str("component", "compatibility_http").Logger(),
	}
}

type analyzeRequest struct {
	User1Answers Answers `json:"user1_answers"`
	User2Answers Answers `json:"user2_answers"`
}

// Analyze handles POST /v1/compatibility/analyze
func (h *HTTPHandlers) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	report := h.analyzer.Analyze(req.User1Answers, req.User2Answers)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		h.logger.Warn().Err(err).Msg("response encode failed")
	}
}
