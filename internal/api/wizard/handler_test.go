package wizard

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/archguru/advisor-backend/internal/entity"
	"github.com/archguru/advisor-backend/internal/integration/llm"
	"github.com/archguru/advisor-backend/internal/pkg/formatter"
	"github.com/archguru/advisor-backend/internal/pkg/validator"
	"github.com/archguru/advisor-backend/internal/session"
	wizarduc "github.com/archguru/advisor-backend/internal/usecase/wizard"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(cfg wizarduc.Config) chi.Router {
	logger := zap.NewNop()
	completer := llm.NewMockConnector(logger)
	store := session.NewStore(time.Minute, time.Minute)

	handler := NewHandler(
		store,
		func() *wizarduc.Pipeline { return wizarduc.NewPipeline(cfg, completer, logger) },
		validator.NewValidator(),
		formatter.NewFactory(),
	)

	router := chi.NewRouter()
	RegisterRoutes(router, handler)
	return router
}

func doJSON(t *testing.T, router chi.Router, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func createSession(t *testing.T, router chi.Router) string {
	t.Helper()

	var dto entity.SessionDTO
	rec := doJSON(t, router, http.MethodPost, "/wizard-session", nil, &dto)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, dto.ID)
	require.Equal(t, entity.PhaseCollecting, dto.Phase)
	return dto.ID
}

func TestFullWizardFlow(t *testing.T) {
	router := newTestRouter(wizarduc.DefaultConfig())
	id := createSession(t, router)

	// Submit project facts, receive the first question round
	var questions entity.QuestionsResponse
	rec := doJSON(t, router, http.MethodPost, "/wizard-session/"+id+"/project", entity.SubmitProjectRequest{
		Name:          "StockPilot",
		Description:   "inventory management for a retail chain",
		MainChallenge: "stock counts drift between warehouses",
		Challenges:    []entity.Challenge{entity.ChallengeScalability},
	}, &questions)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, questions.Round)
	assert.Equal(t, entity.RoundKindScope, questions.Kind)
	assert.NotEmpty(t, questions.Questions)
	assert.False(t, questions.Fallback)

	// Answer rounds 1 and 2, each yields the next round
	for round := 1; round <= 2; round++ {
		var next entity.QuestionsResponse
		rec = doJSON(t, router, http.MethodPost, "/wizard-session/"+id+"/answers", entity.SubmitAnswersRequest{
			Round:   round,
			Answers: entity.AnswerMap{questions.Questions[0]: "an answer"},
		}, &next)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, round+1, next.Round)
		questions = next
	}

	// Final round yields the recommendation document
	var recommendation entity.RecommendationResponse
	rec = doJSON(t, router, http.MethodPost, "/wizard-session/"+id+"/answers", entity.SubmitAnswersRequest{
		Round:   3,
		Answers: entity.AnswerMap{questions.Questions[0]: "final answer"},
	}, &recommendation)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, recommendation.Document)
	assert.False(t, recommendation.Fallback)
	assert.True(t, recommendation.Document.Complete())

	// Session snapshot reflects completion
	var dto entity.SessionDTO
	rec = doJSON(t, router, http.MethodGet, "/wizard-session/"+id, nil, &dto)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.PhaseDone, dto.Phase)
	assert.True(t, dto.HasDocument)
	assert.Equal(t, 3, dto.TotalRounds)

	// Markdown export
	req := httptest.NewRequest(http.MethodGet, "/wizard-session/"+id+"/result?format=markdown", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", res.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=recommendation.md", res.Header().Get("Content-Disposition"))
	assert.Contains(t, res.Body.String(), "# Architecture Recommendation")
}

func TestGetSessionNotFound(t *testing.T) {
	router := newTestRouter(wizarduc.DefaultConfig())

	rec := doJSON(t, router, http.MethodGet, "/wizard-session/unknown", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitProjectValidationError(t *testing.T) {
	router := newTestRouter(wizarduc.DefaultConfig())
	id := createSession(t, router)

	rec := doJSON(t, router, http.MethodPost, "/wizard-session/"+id+"/project",
		entity.SubmitProjectRequest{Description: "  "}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/wizard-session/"+id+"/project",
		entity.SubmitProjectRequest{
			Description: "x",
			Challenges:  []entity.Challenge{"Velocity"},
		}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitAnswersWrongRound(t *testing.T) {
	router := newTestRouter(wizarduc.SingleRoundConfig())
	id := createSession(t, router)

	rec := doJSON(t, router, http.MethodPost, "/wizard-session/"+id+"/project",
		entity.SubmitProjectRequest{Description: "a crm"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/wizard-session/"+id+"/answers",
		entity.SubmitAnswersRequest{Round: 2}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitAnswersBeforeProject(t *testing.T) {
	router := newTestRouter(wizarduc.DefaultConfig())
	id := createSession(t, router)

	rec := doJSON(t, router, http.MethodPost, "/wizard-session/"+id+"/answers",
		entity.SubmitAnswersRequest{Round: 1}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetResultBeforeDone(t *testing.T) {
	router := newTestRouter(wizarduc.DefaultConfig())
	id := createSession(t, router)

	rec := doJSON(t, router, http.MethodGet, "/wizard-session/"+id+"/result", nil, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetResultUnsupportedFormat(t *testing.T) {
	router := newTestRouter(wizarduc.DefaultConfig())
	id := createSession(t, router)

	rec := doJSON(t, router, http.MethodGet, "/wizard-session/"+id+"/result?format=html", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBackAndReset(t *testing.T) {
	router := newTestRouter(wizarduc.SingleRoundConfig())
	id := createSession(t, router)

	rec := doJSON(t, router, http.MethodPost, "/wizard-session/"+id+"/project",
		entity.SubmitProjectRequest{Description: "a crm"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var dto entity.SessionDTO
	rec = doJSON(t, router, http.MethodPost, "/wizard-session/"+id+"/back", nil, &dto)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.PhaseCollecting, dto.Phase)

	// Back from the initial phase is rejected
	rec = doJSON(t, router, http.MethodPost, "/wizard-session/"+id+"/back", nil, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/wizard-session/"+id+"/reset", nil, &dto)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.PhaseCollecting, dto.Phase)
	assert.False(t, dto.HasDocument)
}

func TestDeleteSession(t *testing.T) {
	router := newTestRouter(wizarduc.DefaultConfig())
	id := createSession(t, router)

	rec := doJSON(t, router, http.MethodDelete, "/wizard-session/"+id, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/wizard-session/"+id, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
