package extractor

import (
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/secureai/docshield/internal/core/domain"
)

// extractDOCX concatenates paragraph text in body order, newline-separated.
// go-docx needs a ReadSeeker plus size, so the stream goes through a temp
// file which is removed on every exit path.
func extractDOCX(body io.Reader) (string, error) {
	tmp, err := os.CreateTemp("", "docshield-docx-*.docx")
	if err != nil {
		return "", domain.WrapError(domain.ErrExtractionFailed, "create docx temp file", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, body)
	if err != nil {
		tmp.Close()
		return "", domain.WrapError(domain.ErrExtractionFailed, "write docx temp file", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return "", domain.WrapError(domain.ErrExtractionFailed, "seek docx temp file", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return "", domain.WrapError(domain.ErrExtractionFailed, "parse docx", err)
	}

	var buf strings.Builder
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
