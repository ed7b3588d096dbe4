package wizard

import (
	wizarduc "github.com/archguru/advisor-backend/internal/usecase/wizard"
)

// SessionStore provides the per-session pipeline lookup.
type SessionStore interface {
	Create(pipeline *wizarduc.Pipeline) string
	Get(id string) (*wizarduc.Pipeline, error)
	Delete(id string)
}

// PipelineFactory constructs a fresh pipeline for a new session.
type PipelineFactory func() *wizarduc.Pipeline
