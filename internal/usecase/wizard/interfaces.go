package wizard

import (
	"context"

	"github.com/archguru/advisor-backend/internal/entity"
)

// Completer is the single upstream of the pipeline: one blocking
// request/response exchange with the language model. Failures propagate
// untouched; the pipeline never retries a completion call.
type Completer interface {
	Complete(ctx context.Context, messages []entity.ChatMessage) (string, error)
}
