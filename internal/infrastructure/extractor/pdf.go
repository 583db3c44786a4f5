package extractor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/secureai/docshield/internal/core/domain"
)

// extractPDF strips text from every page in order. ledongthuc/pdf needs a
// ReadSeeker plus size, so the stream goes through a temp file which is
// removed on every exit path.
func extractPDF(ctx context.Context, body io.Reader) (string, error) {
	tmp, err := os.CreateTemp("", "docshield-pdf-*.pdf")
	if err != nil {
		return "", domain.WrapError(domain.ErrExtractionFailed, "create pdf temp file", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", domain.WrapError(domain.ErrExtractionFailed, "write pdf temp file", err)
	}
	tmp.Close()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtractionFailed, "open pdf", err)
	}
	defer f.Close()

	return joinPageTexts(reader.NumPage(), func(i int) (string, bool, error) {
		page := reader.Page(i)
		if page.V.IsNull() {
			return "", false, nil
		}
		text, err := page.GetPlainText(nil)
		return text, true, err
	})
}

// joinPageTexts concatenates per-page text, skipping pages that fail with a
// logged diagnostic. A document where every extractable page failed is a
// failure, not an empty document.
func joinPageTexts(numPages int, pageText func(i int) (text string, extractable bool, err error)) (string, error) {
	var buf strings.Builder
	failedPages := 0
	for i := 1; i <= numPages; i++ {
		text, extractable, err := pageText(i)
		if !extractable {
			continue
		}
		if err != nil {
			slog.Warn("pdf_page_extraction_failed", "page", i, "error", err)
			failedPages++
			continue
		}
		buf.WriteString(text)
	}
	if buf.Len() == 0 && failedPages > 0 {
		return "", domain.WrapError(domain.ErrExtractionFailed, "extract pdf pages",
			fmt.Errorf("%d of %d pages failed extraction, none yielded text", failedPages, numPages))
	}
	return buf.String(), nil
}
