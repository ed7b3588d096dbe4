package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/archguru/advisor-backend/internal/config"
	"github.com/archguru/advisor-backend/internal/entity"
	"github.com/archguru/advisor-backend/internal/integration/common"
	pkghttp "github.com/archguru/advisor-backend/pkg/http"
	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector talks to an OpenAI-compatible chat-completions endpoint.
// Transient upstream failures (network, 5xx, 429) are retried per the
// configured policy; everything else propagates to the caller.
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Complete performs one blocking completion call and returns the text of the
// first choice.
func (c *Connector) Complete(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	ctxzap.Info(ctx, "requesting completion",
		zap.String("model", c.config.Model),
		zap.Int("message_count", len(messages)),
	)

	req := &entity.ChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: c.config.Temperature,
	}

	var resp entity.ChatCompletionResponse
	err := retry.Do(
		func() error {
			return c.connector.DoRequest(ctx, http.MethodPost, c.config.CompletionsEndpoint, req, &resp)
		},
		append(c.config.Retry.ToRetryOptions(),
			retry.Context(ctx),
			retry.RetryIf(isTransient),
		)...,
	)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("invalid completion response: no choices returned")
	}

	content := resp.Choices[0].Message.Content

	ctxzap.Info(ctx, "completion received", zap.Int("content_length", len(content)))

	return content, nil
}

func isTransient(err error) bool {
	var netErr *pkghttp.NetworkError
	if errors.As(err, &netErr) {
		return true
	}

	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Retryable()
	}

	return false
}
