package wizard

import (
	"fmt"
	"strings"

	"github.com/archguru/advisor-backend/internal/entity"
	"github.com/archguru/advisor-backend/internal/pkg/jsonutil"
)

// parseQuestionSet coerces a model reply into an ordered question list.
// The reply must decode to a JSON array of strings; blank entries are a
// contract violation, not silently dropped.
func parseQuestionSet(kind entity.RoundKind, raw string) (entity.QuestionSet, error) {
	var questions []string
	if err := jsonutil.UnmarshalFlex(raw, &questions); err != nil {
		return nil, entity.NewGenerationFormatError(kind, fmt.Sprintf("decode question array: %v", err))
	}

	if len(questions) == 0 {
		return nil, entity.NewGenerationFormatError(kind, "empty question array")
	}

	for i, q := range questions {
		if strings.TrimSpace(q) == "" {
			return nil, entity.NewGenerationFormatError(kind, fmt.Sprintf("blank question at index %d", i))
		}
	}

	return entity.QuestionSet(questions), nil
}

// parseRecommendation coerces a model reply into the recommendation
// document. Both options with all four sections must be present and
// non-empty; anything less is a single format-error kind.
func parseRecommendation(raw string) (*entity.RecommendationDocument, error) {
	var doc entity.RecommendationDocument
	if err := jsonutil.UnmarshalFlex(raw, &doc); err != nil {
		return nil, entity.NewGenerationFormatError(entity.RoundKindFinal, fmt.Sprintf("decode recommendation object: %v", err))
	}

	if !doc.Complete() {
		return nil, entity.NewGenerationFormatError(entity.RoundKindFinal, "recommendation object is missing required sections")
	}

	return &doc, nil
}
