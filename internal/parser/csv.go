package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/doccheck/internal/document"
)

// CSVParser handles CSV files. Each data row flattens to one labeled line so
// downstream segmentation and comparison see linear text.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) ([]document.Line, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// First row is headers.
	headers := records[0]

	var lines []document.Line
	for _, row := range records[1:] {
		var sb strings.Builder
		for j, cell := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			if j < len(headers) {
				sb.WriteString(headers[j] + ": " + cell)
			} else {
				sb.WriteString(cell)
			}
		}
		lines = append(lines, document.Line{Text: sb.String()})
	}

	return lines, nil
}
