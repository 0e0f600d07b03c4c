package importer

import (
	"strings"
	"testing"
)

func TestHTMLExtractor_HeadingsBecomeMarkdown(t *testing.T) {
	in := `<html><body><h1>Main</h1><p>Intro text.</p><h2>Sub</h2><p>More.</p></body></html>`
	e := &HTMLExtractor{}
	got, err := e.Extract(strings.NewReader(in), "draft.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "# Main\n\nIntro text.\n\n## Sub\n\nMore."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestHTMLExtractor_ListItemsBecomeBullets(t *testing.T) {
	in := `<ul><li>first point</li><li>second point</li></ul>`
	e := &HTMLExtractor{}
	got, err := e.Extract(strings.NewReader(in), "list.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "- first point\n\n- second point"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestHTMLExtractor_SkipsNonContentElements(t *testing.T) {
	in := `<body><nav>menu</nav><script>x()</script><p>Only this.</p><footer>foot</footer></body>`
	e := &HTMLExtractor{}
	got, err := e.Extract(strings.NewReader(in), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Only this." {
		t.Errorf("expected %q, got %q", "Only this.", got)
	}
}

func TestHTMLExtractor_CollapsesInternalWhitespace(t *testing.T) {
	in := "<p>spaced   out\n  text</p>"
	e := &HTMLExtractor{}
	got, err := e.Extract(strings.NewReader(in), "ws.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "spaced out text" {
		t.Errorf("expected %q, got %q", "spaced out text", got)
	}
}
