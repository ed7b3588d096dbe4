package llm

import (
	"context"
	"strings"

	"github.com/archguru/advisor-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a canned completion implementation for local development
// and tests. It inspects the last user message to decide which reply shape
// the prompt contract expects.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

const mockQuestions = `[
  "What industry is this project targeting?",
  "Who are the primary users and how many do you expect?",
  "Which existing systems must the solution integrate with?",
  "What is your team size and technical expertise?",
  "What are your security and compliance requirements?",
  "What is your timeline and budget?"
]`

const mockAnalysis = `The project is a typical line-of-business system with moderate scale
requirements. The stated challenges suggest prioritizing delivery speed and
operational simplicity over premature scaling. Team size and timeline favor
a small number of well-understood technologies.`

const mockRecommendation = `{
  "option1": {
    "overview": "# Modular Monolith\n\nA single deployable with strictly separated internal modules.",
    "technical": "## Technical\n\nLayered architecture, relational database, module boundaries enforced through internal interfaces.",
    "implementation": "## Implementation\n\nWalking skeleton first, modules added incrementally, CI/CD from day one.",
    "rationale": "## Rationale\n\nLowest operational overhead and fastest path to production for a small team."
  },
  "option2": {
    "overview": "# Service-Oriented Architecture\n\nA small set of coarse-grained services split by business capability.",
    "technical": "## Technical\n\nWell-defined APIs between services, one datastore per service, centralized observability.",
    "implementation": "## Implementation\n\nStart with two or three services, invest in infrastructure automation before splitting further.",
    "rationale": "## Rationale\n\nIndependent delivery and scaling at the cost of higher operational effort."
  }
}`

// Complete returns a canned reply matching the shape the prompt asks for.
func (m *MockConnector) Complete(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	var lastUser string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == entity.RoleUser {
			lastUser = messages[i].Content
			break
		}
	}

	var reply string
	switch {
	case strings.Contains(lastUser, "JSON array"):
		reply = mockQuestions
	case strings.Contains(lastUser, "JSON object"):
		reply = mockRecommendation
	default:
		reply = mockAnalysis
	}

	ctxzap.Info(ctx, "[MOCK] completion served",
		zap.Int("message_count", len(messages)),
		zap.Int("content_length", len(reply)),
	)

	return reply, nil
}
