package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVExtractor renders a CSV draft as a markdown table. Table rows are
// structural lines for the reflow classifier, so they survive formatting
// column-aligned instead of being re-wrapped.
type CSVExtractor struct{}

func (e *CSVExtractor) Extract(r io.Reader, filename string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	// First row is headers.
	writeRow(records[0])
	sep := make([]string, len(records[0]))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(sep)
	for _, row := range records[1:] {
		writeRow(row)
	}

	return strings.TrimRight(b.String(), "\n"), nil
}
