package extractor

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/secureai/docshield/internal/core/domain"
)

// Extractor converts uploaded files into plain UTF-8 text, dispatching on
// the declared filename suffix. Suffix matching is exact and case-sensitive;
// anything else is an unsupported format, never partial text.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(ctx context.Context, filename string, body io.Reader) (string, error) {
	if filename == "" {
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "extract",
			fmt.Errorf("filename is missing"))
	}

	switch {
	case strings.HasSuffix(filename, ".txt"):
		return extractText(body)
	case strings.HasSuffix(filename, ".pdf"):
		return extractPDF(ctx, body)
	case strings.HasSuffix(filename, ".docx"):
		return extractDOCX(body)
	case strings.HasSuffix(filename, ".xlsx"):
		return extractXLSX(body)
	default:
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "extract",
			fmt.Errorf("unrecognized file extension: %s", filename))
	}
}

func extractText(body io.Reader) (string, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtractionFailed, "read txt", err)
	}
	return string(raw), nil
}
