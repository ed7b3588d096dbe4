package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/archguru/advisor-backend/internal/config"
	"github.com/archguru/advisor-backend/internal/entity"
	"github.com/archguru/advisor-backend/internal/pkg/retry"
	pkghttp "github.com/archguru/advisor-backend/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func completionReply(content string) entity.ChatCompletionResponse {
	return entity.ChatCompletionResponse{
		ID: "cmpl-test",
		Choices: []entity.ChatCompletionChoice{
			{Index: 0, Message: entity.ChatMessage{Role: entity.RoleAssistant, Content: content}},
		},
	}
}

func testConnectorConfig(baseURL string) config.LLMConnectorConfig {
	return config.LLMConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			Url:            baseURL,
			Token:          "test-token",
			RequestTimeout: 5 * time.Second,
			ConnTimeout:    time.Second,
		},
		CompletionsEndpoint: "/v1/chat/completions",
		Model:               "test-model",
		Temperature:         0.7,
		Retry: retry.RetryConfig{
			Attempts: 3,
			Delay:    time.Millisecond,
			MaxDelay: 5 * time.Millisecond,
		},
	}
}

func testMessages() []entity.ChatMessage {
	return entity.Prompt{System: "sys", User: "usr"}.Messages()
}

func TestConnectorComplete(t *testing.T) {
	var gotReq entity.ChatCompletionRequest
	var gotAuth, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionReply("the generated text"))
	}))
	defer server.Close()

	connector := NewConnector(testConnectorConfig(server.URL), zap.NewNop())

	content, err := connector.Complete(context.Background(), testMessages())
	require.NoError(t, err)
	assert.Equal(t, "the generated text", content)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "test-model", gotReq.Model)
	assert.Equal(t, 0.7, gotReq.Temperature)
	assert.Equal(t, testMessages(), gotReq.Messages)
}

func TestConnectorRetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(completionReply("recovered"))
	}))
	defer server.Close()

	connector := NewConnector(testConnectorConfig(server.URL), zap.NewNop())

	content, err := connector.Complete(context.Background(), testMessages())
	require.NoError(t, err)
	assert.Equal(t, "recovered", content)
	assert.Equal(t, int32(3), calls.Load())
}

func TestConnectorDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	connector := NewConnector(testConnectorConfig(server.URL), zap.NewNop())

	_, err := connector.Complete(context.Background(), testMessages())
	require.Error(t, err)

	var httpErr *pkghttp.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load(), "4xx responses are not retried")
}

func TestConnectorExhaustsRetries(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	connector := NewConnector(testConnectorConfig(server.URL), zap.NewNop())

	_, err := connector.Complete(context.Background(), testMessages())
	require.Error(t, err)

	var httpErr *pkghttp.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, int32(3), calls.Load())
}

func TestConnectorNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(entity.ChatCompletionResponse{ID: "cmpl-empty"})
	}))
	defer server.Close()

	connector := NewConnector(testConnectorConfig(server.URL), zap.NewNop())

	_, err := connector.Complete(context.Background(), testMessages())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestMockConnectorShapes(t *testing.T) {
	mock := NewMockConnector(zap.NewNop())
	ctx := context.Background()

	reply, err := mock.Complete(ctx, []entity.ChatMessage{
		{Role: entity.RoleUser, Content: "Return ONLY a JSON array of strings"},
	})
	require.NoError(t, err)
	var questions []string
	require.NoError(t, json.Unmarshal([]byte(reply), &questions))
	assert.NotEmpty(t, questions)

	reply, err = mock.Complete(ctx, []entity.ChatMessage{
		{Role: entity.RoleUser, Content: "Return your response as a JSON object"},
	})
	require.NoError(t, err)
	var doc entity.RecommendationDocument
	require.NoError(t, json.Unmarshal([]byte(reply), &doc))
	assert.True(t, doc.Complete())

	reply, err = mock.Complete(ctx, []entity.ChatMessage{
		{Role: entity.RoleUser, Content: "Provide a detailed analysis."},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
}
