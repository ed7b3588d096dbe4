package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/archguru/advisor-backend/internal/entity"
	"github.com/archguru/advisor-backend/internal/pkg/formatter"
	"github.com/archguru/advisor-backend/internal/pkg/logger"
	"github.com/archguru/advisor-backend/internal/pkg/response"
	"github.com/archguru/advisor-backend/internal/pkg/validator"
	pkghttp "github.com/archguru/advisor-backend/pkg/http"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	store       SessionStore
	newPipeline PipelineFactory
	validator   *validator.Validator
	formatters  *formatter.Factory
}

func NewHandler(
	store SessionStore,
	newPipeline PipelineFactory,
	validator *validator.Validator,
	formatters *formatter.Factory,
) *Handler {
	return &Handler{
		store:       store,
		newPipeline: newPipeline,
		validator:   validator,
		formatters:  formatters,
	}
}

// CreateSession handles POST /wizard-session - start a new wizard session
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateSession")

	pipeline := h.newPipeline()
	id := h.store.Create(pipeline)

	ctxzap.Info(ctx, "wizard session created", zap.String("session_id", id))

	response.Created(w, toSessionDTO(id, pipeline))
}

// GetSession handles GET /wizard-session/{id} - session state snapshot
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "GetSession"),
	)

	pipeline, err := h.store.Get(sessionID)
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(sessionID, pipeline))
}

// SubmitProject handles POST /wizard-session/{id}/project - submit project
// facts and receive the first question round
func (h *Handler) SubmitProject(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "SubmitProject"),
	)

	var req entity.SubmitProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateSubmitProject(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		h.handleError(ctx, w, err)
		return
	}

	pipeline, err := h.store.Get(sessionID)
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	round, err := pipeline.SubmitProject(ctx, entity.ProjectFacts{
		Name:          req.Name,
		Description:   req.Description,
		MainChallenge: req.MainChallenge,
		Challenges:    req.Challenges,
	})
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	response.Success(w, &entity.QuestionsResponse{
		SessionID: sessionID,
		Round:     1,
		Kind:      round.Kind,
		Questions: round.Questions,
		Fallback:  round.Fallback,
	})
}

// SubmitAnswers handles POST /wizard-session/{id}/answers - submit answers
// for the current round; replies with the next round or the recommendation
func (h *Handler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "SubmitAnswers"),
	)

	var req entity.SubmitAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateSubmitAnswers(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		h.handleError(ctx, w, err)
		return
	}

	pipeline, err := h.store.Get(sessionID)
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	result, err := pipeline.SubmitAnswers(ctx, req.Round, req.Answers)
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	if result.Document != nil {
		response.Success(w, &entity.RecommendationResponse{
			SessionID: sessionID,
			Document:  result.Document,
			Fallback:  result.DocumentFallback,
		})
		return
	}

	response.Success(w, &entity.QuestionsResponse{
		SessionID: sessionID,
		Round:     result.NextRoundNumber,
		Kind:      result.NextRound.Kind,
		Questions: result.NextRound.Questions,
		Fallback:  result.NextRound.Fallback,
	})
}

// Back handles POST /wizard-session/{id}/back - move one phase backwards
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "Back"),
	)

	pipeline, err := h.store.Get(sessionID)
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	if err := pipeline.Back(); err != nil {
		h.handleError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(sessionID, pipeline))
}

// Reset handles POST /wizard-session/{id}/reset - return to the initial state
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "Reset"),
	)

	pipeline, err := h.store.Get(sessionID)
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	pipeline.Reset()

	ctxzap.Info(ctx, "wizard session reset")

	response.Success(w, toSessionDTO(sessionID, pipeline))
}

// GetResult handles GET /wizard-session/{id}/result - export the
// recommendation document in the requested format
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "GetResult"),
	)

	format := entity.ResultFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.FormatMarkdown
	}

	if err := h.validator.ValidateResultFormat(format); err != nil {
		h.handleError(ctx, w, err)
		return
	}

	pipeline, err := h.store.Get(sessionID)
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	state := pipeline.State()
	if state.Phase != entity.PhaseDone || state.Document == nil {
		h.handleError(ctx, w, entity.ErrNoDocument)
		return
	}

	fmtr, err := h.formatters.Create(format)
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	content, err := fmtr.Format(formatter.Flatten(state.Document))
	if err != nil {
		ctxzap.Error(ctx, "failed to format recommendation", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to format result")
		return
	}

	w.Header().Set("Content-Type", fmtr.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=recommendation%s", fmtr.FileExtension()))
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// DeleteSession handles DELETE /wizard-session/{id} - drop the session
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "DeleteSession"),
	)

	h.store.Delete(sessionID)

	ctxzap.Info(ctx, "wizard session deleted")

	response.NoContent(w)
}

// handleError translates domain errors to HTTP status codes.
func (h *Handler) handleError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Warn(ctx, "request failed", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrMissingField), errors.Is(err, entity.ErrInvalidParameter):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrWrongPhase), errors.Is(err, entity.ErrNoDocument):
		response.Error(w, http.StatusConflict, err.Error())
	case isUpstream(err):
		response.Error(w, http.StatusBadGateway, "completion service unavailable")
	default:
		response.Error(w, http.StatusInternalServerError, err.Error())
	}
}

func isUpstream(err error) bool {
	var netErr *pkghttp.NetworkError
	var httpErr *pkghttp.HTTPError
	return errors.As(err, &netErr) || errors.As(err, &httpErr)
}
