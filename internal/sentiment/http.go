package sentiment

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/echohq/couples-platform/pkg/http/errors"
)

// HTTPHandlers exposes sentiment analysis over REST.
type HTTPHandlers struct {
	analyzer *Analyzer
	logger   zerolog.Logger
}

func NewHTTPHandlers(analyzer *Analyzer, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		analyzer: analyzer,
		logger:   logger.With().Str("component", "sentiment_http").Logger(),
	}
}

type analyzeCommunicationRequest struct {
	Messages []string `json:"messages"`
}

// AnalyzeCommunication handles POST /v1/communication/analyze
func (h *HTTPHandlers) AnalyzeCommunication(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req analyzeCommunicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	report := h.analyzer.AnalyzeCommunication(req.Messages)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		h.logger.Warn().Err(err).Msg("response encode failed")
	}
}
