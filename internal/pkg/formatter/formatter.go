package formatter

import (
	"fmt"
	"strings"

	"github.com/archguru/advisor-backend/internal/entity"
)

const baseTitle = "Architecture Recommendation"

type Formatter interface {
	Format(plainText string) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Flatten renders the recommendation document as one markdown text,
// both options in order with their four sections.
func Flatten(doc *entity.RecommendationDocument) string {
	var sb strings.Builder

	writeOption(&sb, "Option 1", doc.Option1)
	sb.WriteString("\n---\n\n")
	writeOption(&sb, "Option 2", doc.Option2)

	return sb.String()
}

func writeOption(sb *strings.Builder, title string, opt entity.RecommendationOption) {
	fmt.Fprintf(sb, "## %s\n\n", title)
	for _, section := range []struct {
		name string
		body string
	}{
		{"Overview", opt.Overview},
		{"Technical", opt.Technical},
		{"Implementation", opt.Implementation},
		{"Rationale", opt.Rationale},
	} {
		fmt.Fprintf(sb, "### %s\n\n%s\n\n", section.name, section.body)
	}
}
