package wizard

import (
	"testing"

	"github.com/archguru/advisor-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionSet(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    entity.QuestionSet
		wantErr bool
	}{
		{
			name: "plain array",
			raw:  `["What industry?", "What team size?"]`,
			want: entity.QuestionSet{"What industry?", "What team size?"},
		},
		{
			name: "fenced array",
			raw:  "```json\n[\"Q1?\", \"Q2?\"]\n```",
			want: entity.QuestionSet{"Q1?", "Q2?"},
		},
		{
			name: "array wrapped in prose",
			raw:  `Here are the questions: ["Q1?", "Q2?"] hope this helps!`,
			want: entity.QuestionSet{"Q1?", "Q2?"},
		},
		{
			name:    "empty array",
			raw:     `[]`,
			wantErr: true,
		},
		{
			name:    "blank entry",
			raw:     `["Q1?", "   "]`,
			wantErr: true,
		},
		{
			name:    "object instead of array",
			raw:     `{"questions": ["Q1?"]}`,
			wantErr: true,
		},
		{
			name:    "no json at all",
			raw:     "I cannot produce questions for this project.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQuestionSet(entity.RoundKindScope, tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, entity.IsGenerationFormatError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRecommendation(t *testing.T) {
	doc, err := parseRecommendation(validRecommendation)
	require.NoError(t, err)
	assert.Equal(t, "o1", doc.Option1.Overview)
	assert.Equal(t, "r2", doc.Option2.Rationale)
}

func TestParseRecommendationFenced(t *testing.T) {
	doc, err := parseRecommendation("```json\n" + validRecommendation + "\n```")
	require.NoError(t, err)
	assert.True(t, doc.Complete())
}

func TestParseRecommendationMissingSection(t *testing.T) {
	raw := `{
  "option1": {"overview": "o1", "technical": "t1", "implementation": "i1", "rationale": "r1"},
  "option2": {"overview": "o2", "technical": "t2", "implementation": "i2"}
}`
	_, err := parseRecommendation(raw)
	require.Error(t, err)
	assert.True(t, entity.IsGenerationFormatError(err))
}

func TestParseRecommendationMissingOption(t *testing.T) {
	raw := `{"option1": {"overview": "o1", "technical": "t1", "implementation": "i1", "rationale": "r1"}}`
	_, err := parseRecommendation(raw)
	require.Error(t, err)
	assert.True(t, entity.IsGenerationFormatError(err))
}

func TestParseRecommendationNotJSON(t *testing.T) {
	_, err := parseRecommendation("I'd recommend a monolith.")
	require.Error(t, err)
	assert.True(t, entity.IsGenerationFormatError(err))
}
