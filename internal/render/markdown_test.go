package render

import (
	"strings"
	"testing"
)

func TestToHTML_BasicElements(t *testing.T) {
	out, err := ToHTML("# Title\n\nSome *emphasis* here.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<h1>Title</h1>") {
		t.Errorf("expected h1 in output, got %q", out)
	}
	if !strings.Contains(out, "<em>emphasis</em>") {
		t.Errorf("expected em in output, got %q", out)
	}
}

func TestToHTML_EmptyInput(t *testing.T) {
	out, err := ToHTML("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}
