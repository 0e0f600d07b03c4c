package importer

import (
	"fmt"
	"io"
	"strings"
)

// TextExtractor handles plain text and markdown drafts. Markdown is already
// the reflow input format, so both pass through with line endings normalized.
type TextExtractor struct{}

func (e *TextExtractor) Extract(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read draft: %w", err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.TrimRight(text, "\n"), nil
}
