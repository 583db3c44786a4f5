package extractor

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/secureai/docshield/internal/core/domain"
)

// extractXLSX concatenates every cell of every row of every sheet,
// tab-separating cells and newline-separating rows, in stored sheet and row
// order.
func extractXLSX(body io.Reader) (string, error) {
	workbook, err := excelize.OpenReader(body)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtractionFailed, "open xlsx", err)
	}
	defer workbook.Close()

	var buf strings.Builder
	for _, sheet := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			return "", domain.WrapError(domain.ErrExtractionFailed, "read xlsx rows", err)
		}
		for _, row := range rows {
			for _, cell := range row {
				buf.WriteString(cell)
				buf.WriteString("\t")
			}
			buf.WriteString("\n")
		}
	}
	return buf.String(), nil
}
