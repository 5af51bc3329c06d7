package question

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/echohq/couples-platform/pkg/http/errors"
)

const maxPackCount = 10

// HTTPHandlers exposes question generation over REST.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "question_http").Logger(),
	}
}

type generateRequest struct {
	UserID   string `json:"user_id"`
	Category string `json:"category,omitempty"`
	Count    int    `json:"count,omitempty"`
}

// Generate handles POST /v1/questions/generate
func (h *HTTPHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.UserID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "user_id is required", "user_id")
		return
	}
	if req.Count < 0 {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "count must be positive", "count")
		return
	}
	if req.Category == "" {
		req.Category = "general"
	}
	count := req.Count
	if count == 0 {
		count = 5
	}
	if count > maxPackCount {
		count = maxPackCount
	}

	resp, err := h.service.GeneratePack(r.Context(), req.UserID, req.Category, count)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", req.UserID).Msg("pack generation failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeGenerationFailed, "Failed to generate questions")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
