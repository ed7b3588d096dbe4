package validator

import (
	"fmt"
	"strings"

	"github.com/archguru/advisor-backend/internal/entity"
)

// Validator performs structural validation of incoming wizard requests.
// Content requirements that depend on the pipeline variant (e.g. whether a
// main challenge is mandatory) are enforced by the pipeline itself.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSubmitProject validates SubmitProjectRequest
func (v *Validator) ValidateSubmitProject(req *entity.SubmitProjectRequest) error {
	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: description", entity.ErrMissingField)
	}

	for _, c := range req.Challenges {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// ValidateSubmitAnswers validates SubmitAnswersRequest. An empty answer map
// is allowed; the user may skip every question of a round.
func (v *Validator) ValidateSubmitAnswers(req *entity.SubmitAnswersRequest) error {
	if req.Round < 1 {
		return fmt.Errorf("%w: round must be positive, got %d", entity.ErrInvalidParameter, req.Round)
	}

	return nil
}

// ValidateResultFormat validates the export format query parameter.
func (v *Validator) ValidateResultFormat(format entity.ResultFormat) error {
	switch format {
	case entity.FormatMarkdown, entity.FormatPDF, entity.FormatDOCX:
		return nil
	default:
		return fmt.Errorf("%w: unsupported format %q", entity.ErrInvalidParameter, string(format))
	}
}
