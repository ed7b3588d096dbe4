package formatter

import (
	"strings"
	"testing"

	"github.com/archguru/advisor-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *entity.RecommendationDocument {
	return &entity.RecommendationDocument{
		Option1: entity.RecommendationOption{
			Overview:       "monolith overview",
			Technical:      "monolith technical",
			Implementation: "monolith implementation",
			Rationale:      "monolith rationale",
		},
		Option2: entity.RecommendationOption{
			Overview:       "services overview",
			Technical:      "services technical",
			Implementation: "services implementation",
			Rationale:      "services rationale",
		},
	}
}

func TestFlatten(t *testing.T) {
	text := Flatten(sampleDocument())

	assert.Contains(t, text, "## Option 1")
	assert.Contains(t, text, "## Option 2")
	for _, section := range []string{"Overview", "Technical", "Implementation", "Rationale"} {
		assert.Contains(t, text, "### "+section)
	}
	assert.Contains(t, text, "monolith rationale")
	assert.Contains(t, text, "services overview")

	// Option 1 renders before option 2
	assert.Less(t, strings.Index(text, "## Option 1"), strings.Index(text, "## Option 2"))
}

func TestFactoryCreate(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		format      entity.ResultFormat
		contentType string
		extension   string
	}{
		{entity.FormatMarkdown, "text/markdown; charset=utf-8", ".md"},
		{entity.FormatPDF, "application/pdf", ".pdf"},
		{entity.FormatDOCX, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ".docx"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f, err := factory.Create(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.contentType, f.ContentType())
			assert.Equal(t, tt.extension, f.FileExtension())
		})
	}

	_, err := factory.Create(entity.ResultFormat("xlsx"))
	require.Error(t, err)
}

func TestMarkdownFormatter(t *testing.T) {
	f := NewMarkdownFormatter()

	out, err := f.Format(Flatten(sampleDocument()))
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "# Architecture Recommendation\n"))
	assert.Contains(t, text, "monolith overview")
}

func TestPDFFormatterProducesDocument(t *testing.T) {
	f := NewPDFFormatter()

	out, err := f.Format(Flatten(sampleDocument()))
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
