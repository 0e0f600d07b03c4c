package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// ToHTML renders markdown post content to HTML for the mobile view.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
