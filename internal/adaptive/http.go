package adaptive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/echohq/couples-platform/pkg/http/errors"
	ws "github.com/echohq/couples-platform/pkg/http/ws"
)

// PoolProvider supplies a default candidate pool when a selection request
// does not carry one (the question bank implements this).
type PoolProvider interface {
	DefaultPool(ctx context.Context, profile *UserProfile) []Question
}

// HandlerOptions bounds request parameters at the boundary.
type HandlerOptions struct {
	DefaultQuestionCount int // default 5
	MaxQuestionCount     int // default 10
}

// HTTPHandlers exposes the engine operations over REST.
type HTTPHandlers struct {
	service      *Service
	insightCache *InsightCache
	pool         PoolProvider
	hub          *ws.Hub
	defaultCount int
	maxCount     int
	logger       zerolog.Logger
}

// NewHTTPHandlers creates handlers for the adaptive endpoints. insightCache,
// pool, and hub are optional.
func NewHTTPHandlers(service *Service, insightCache *InsightCache, pool PoolProvider, hub *ws.Hub, opts HandlerOptions, logger zerolog.Logger) *HTTPHandlers {
	if opts.DefaultQuestionCount <= 0 {
		opts.DefaultQuestionCount = 5
	}
	if opts.MaxQuestionCount <= 0 {
		opts.MaxQuestionCount = 10
	}
	return &HTTPHandlers{
		service:      service,
		insightCache: insightCache,
		pool:         pool,
		hub:          hub,
		defaultCount: opts.DefaultQuestionCount,
		maxCount:     opts.MaxQuestionCount,
		logger:       logger.With().Str("component", "adaptive_http").Logger(),
	}
}

type recordSessionRequest struct {
	UserID         string       `json:"user_id"`
	PartnerID      string       `json:"partner_id"`
	Session        SessionData  `json:"session"`
	PartnerSession *SessionData `json:"partner_session,omitempty"`
}

// RecordSession handles POST /v1/sessions
func (h *HTTPHandlers) RecordSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req recordSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	if err := validateRecordSession(&req); err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, err.Error(), err.Field)
		return
	}

	if err := h.service.RecordSession(r.Context(), RecordSessionRequest{
		UserID:         req.UserID,
		PartnerID:      req.PartnerID,
		Session:        req.Session,
		PartnerSession: req.PartnerSession,
	}); err != nil {
		h.logger.Error().Err(err).Str("user_id", req.UserID).Msg("failed to record session")
		httperrors.RespondInternalError(w, "Failed to record session")
		return
	}

	if h.insightCache != nil {
		if err := h.insightCache.Invalidate(r.Context(), req.UserID, req.PartnerID); err != nil {
			h.logger.Warn().Err(err).Msg("insight cache invalidation failed")
		}
	}
	h.notifySessionRecorded(req)

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{"recorded": true})
}

func (h *HTTPHandlers) notifySessionRecorded(req recordSessionRequest) {
	if h.hub == nil {
		return
	}
	coupleKey := CoupleKey(req.UserID, req.PartnerID)
	h.hub.BroadcastToCouple(coupleKey, ws.NewMessage(ws.TypeSessionRecorded, ws.SessionRecordedPayload{
		CoupleKey:     coupleKey,
		RecordedBy:    req.UserID,
		QuestionCount: len(req.Session.QuestionIDs),
		Engagement:    req.Session.EngagementScore,
	}))
	for _, userID := range []string{req.UserID, req.PartnerID} {
		h.hub.SendToUser(userID, ws.NewMessage(ws.TypeInsightsUpdated, ws.InsightsUpdatedPayload{UserID: userID}))
	}
}

// GetDifficulty handles GET /v1/users/{id}/difficulty
func (h *HTTPHandlers) GetDifficulty(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "user id is required", "id")
		return
	}

	difficulty, err := h.service.OptimalDifficulty(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("difficulty estimate failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeDifficultyFailed, "Failed to estimate difficulty")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":            userID,
		"optimal_difficulty": difficulty,
	})
}

type selectQuestionsRequest struct {
	UserID    string     `json:"user_id"`
	PartnerID string     `json:"partner_id"`
	Questions []Question `json:"questions,omitempty"`
	Count     int        `json:"count,omitempty"`
}

// SelectQuestions handles POST /v1/questions/select
func (h *HTTPHandlers) SelectQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req selectQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	if req.UserID == "" || req.PartnerID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "user_id and partner_id are required", "user_id")
		return
	}
	if req.Count < 0 {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "count must be positive", "count")
		return
	}
	count := req.Count
	if count == 0 {
		count = h.defaultCount
	}
	if count > h.maxCount {
		count = h.maxCount
	}

	pool := req.Questions
	if len(pool) == 0 && h.pool != nil {
		profile, err := h.service.profiles.Get(r.Context(), req.UserID)
		if err != nil {
			h.logger.Error().Err(err).Str("user_id", req.UserID).Msg("profile load failed")
			httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeSelectionFailed, "Failed to select questions")
			return
		}
		pool = h.pool.DefaultPool(r.Context(), profile)
	}

	selected, err := h.service.SelectQuestions(r.Context(), req.UserID, req.PartnerID, pool, count)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", req.UserID).Msg("question selection failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeSelectionFailed, "Failed to select questions")
		return
	}
	if selected == nil {
		selected = []Question{}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"questions": selected,
		"count":     len(selected),
	})
}

// GetInsights handles GET /v1/users/{id}/insights
func (h *HTTPHandlers) GetInsights(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "user id is required", "id")
		return
	}

	if h.insightCache != nil {
		if cached, err := h.insightCache.Get(r.Context(), userID); err == nil && cached != nil {
			h.respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	report, err := h.service.Insights(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("insight report failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeInsightsFailed, "Failed to build insights")
		return
	}

	if h.insightCache != nil {
		if err := h.insightCache.Set(r.Context(), userID, report); err != nil {
			h.logger.Warn().Err(err).Msg("insight cache store failed")
		}
	}

	h.respondJSON(w, http.StatusOK, report)
}

// ValidationError carries the failing field for 400 responses.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validateRecordSession(req *recordSessionRequest) *ValidationError {
	if req.UserID == "" {
		return &ValidationError{Field: "user_id", Message: "user_id is required"}
	}
	if req.PartnerID == "" {
		return &ValidationError{Field: "partner_id", Message: "partner_id is required"}
	}
	if err := validateSessionData(&req.Session, "session"); err != nil {
		return err
	}
	if req.PartnerSession != nil {
		if err := validateSessionData(req.PartnerSession, "partner_session"); err != nil {
			return err
		}
	}
	return nil
}

func validateSessionData(s *SessionData, field string) *ValidationError {
	if s.Score < 0 || s.Score > 1 {
		return &ValidationError{Field: field + ".score", Message: "score must be in [0,1]"}
	}
	if s.EngagementScore < 0 || s.EngagementScore > 1 {
		return &ValidationError{Field: field + ".engagement_score", Message: "engagement_score must be in [0,1]"}
	}
	if s.Category == "" {
		return &ValidationError{Field: field + ".category", Message: "category is required"}
	}
	if !ValidDifficulty(s.Difficulty) {
		return &ValidationError{Field: field + ".difficulty", Message: fmt.Sprintf("difficulty must be one of %s, %s, %s", DifficultyEasy, DifficultyMedium, DifficultyHard)}
	}
	return nil
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn().Err(err).Msg("response encode failed")
	}
}
