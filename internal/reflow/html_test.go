package reflow

import (
	"strings"
	"testing"
)

func TestFormatHTMLForMobile_EmptyInput(t *testing.T) {
	if got := FormatHTMLForMobile(""); got != "" {
		t.Errorf("expected empty output for empty input, got %q", got)
	}
}

func TestFormatHTMLForMobile_StripsTags(t *testing.T) {
	got := FormatHTMLForMobile("<p>Hello world</p>")
	if got != "Hello world" {
		t.Errorf("expected %q, got %q", "Hello world", got)
	}
}

func TestFormatHTMLForMobile_BrVariantsBecomeLineBreaks(t *testing.T) {
	got := FormatHTMLForMobile("line one<br>line two<BR/>line three<br />line four")
	want := "line one<br>line two<br>line three<br>line four"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatHTMLForMobile_NoLiteralNewlines(t *testing.T) {
	got := FormatHTMLForMobile("alpha\nbeta<br>gamma")
	if strings.Contains(got, "\n") {
		t.Errorf("output contains literal newline: %q", got)
	}
	want := "alpha<br>beta<br>gamma"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatHTMLForMobile_DecodesEntities(t *testing.T) {
	got := FormatHTMLForMobile("fish &amp; chips")
	if got != "fish & chips" {
		t.Errorf("expected %q, got %q", "fish & chips", got)
	}
}

func TestFormatHTMLForMobile_SkipsScriptAndStyle(t *testing.T) {
	got := FormatHTMLForMobile("<script>var x = 1;</script><style>p{}</style>Visible")
	if got != "Visible" {
		t.Errorf("expected %q, got %q", "Visible", got)
	}
}

func TestFormatHTMLForMobile_MalformedMarkupIsBestEffort(t *testing.T) {
	// Unclosed tags must not raise; the parser recovers the text.
	got := FormatHTMLForMobile("<div><p>unclosed")
	if got != "unclosed" {
		t.Errorf("expected %q, got %q", "unclosed", got)
	}
}

func TestFormatHTMLForMobile_LongProseWrapsWithBr(t *testing.T) {
	in := "<p>This sentence is comfortably longer than the target and will wrap.</p>"
	got := FormatHTMLForMobile(in)
	if strings.Contains(got, "\n") {
		t.Errorf("output contains literal newline: %q", got)
	}
	parts := strings.Split(got, "<br>")
	if len(parts) < 2 {
		t.Fatalf("expected wrapped output with <br> breaks, got %q", got)
	}
	for i, p := range parts {
		if n := len([]rune(p)); n > DefaultTarget {
			t.Errorf("segment %d: length %d exceeds target %d: %q", i, n, DefaultTarget, p)
		}
	}
}
