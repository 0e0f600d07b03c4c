package refs

import (
	"strings"
	"testing"
)

func TestStripCitations_RemovesMarkers(t *testing.T) {
	in := "Sleep matters.[1] Exercise too.[12]"
	got := StripCitations(in)
	want := "Sleep matters. Exercise too."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestStripCitations_NoMarkers(t *testing.T) {
	in := "Nothing to strip here."
	if got := StripCitations(in); got != in {
		t.Errorf("expected unchanged content, got %q", got)
	}
}

func TestAppend_GroupsSourcesByType(t *testing.T) {
	content := "A short post body."
	sources := []Source{
		{Type: "news", Title: "Daily item", URL: "https://news.example/a", Date: "2025-03-01", Site: "Example News"},
		{Type: "academic", Title: "A study", URL: "https://doi.example/b"},
		{Type: "general", Title: "Some page", URL: "https://web.example/c"},
		{Type: "news", Title: "No URL so skipped"},
	}

	out := Append(content, sources)

	if !strings.HasPrefix(out, "A short post body.") {
		t.Errorf("expected body preserved, got %q", out)
	}
	if !strings.Contains(out, SectionHeading) {
		t.Error("expected references heading in output")
	}
	for _, want := range []string{"#### News", "#### Research", "#### Web"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected group heading %q in output", want)
		}
	}
	if strings.Contains(out, "No URL so skipped") {
		t.Error("expected source without URL to be skipped")
	}
	if !strings.Contains(out, "[Daily item](https://news.example/a) (2025-03-01) - Example News") {
		t.Errorf("expected dated news entry, got:\n%s", out)
	}
}

func TestAppend_DetectsCitedSources(t *testing.T) {
	content := "According to the annual sleep report findings most adults rest too little."
	sources := []Source{
		{Type: "news", Title: "Annual sleep report findings", URL: "https://news.example/sleep"},
		{Type: "general", Title: "Unrelated topic entirely", URL: "https://web.example/other",
			Snippet: "completely different subject matter"},
	}

	out := Append(content, sources)

	citedIdx := strings.Index(out, "### Cited in this post")
	furtherIdx := strings.Index(out, "### Further reading")
	if citedIdx < 0 {
		t.Fatalf("expected cited section, got:\n%s", out)
	}
	sleepIdx := strings.Index(out, "https://news.example/sleep")
	if sleepIdx < citedIdx || sleepIdx > furtherIdx {
		t.Error("expected cited source listed in the cited section")
	}
	otherIdx := strings.Index(out, "https://web.example/other")
	if otherIdx < furtherIdx {
		t.Error("expected uncited source under further reading")
	}
}

func TestAppend_DropsPreviousTrailingSection(t *testing.T) {
	content := "Body text.\n\n---\n" + SectionHeading + "\n1. [Old](https://old.example)\n"
	out := Append(content, []Source{{Type: "general", Title: "New", URL: "https://new.example"}})

	if strings.Contains(out, "https://old.example") {
		t.Error("expected previous references section to be dropped")
	}
	if !strings.Contains(out, "https://new.example") {
		t.Error("expected new reference present")
	}
}

func TestExtract_ReturnsLinksInOrder(t *testing.T) {
	content := "Body.\n\n---\n" + SectionHeading + "\n" +
		"1. [First source](https://a.example/one) - Site A\n" +
		"2. [Second source](https://b.example/two)\n"

	got := Extract(content)
	if len(got) != 2 {
		t.Fatalf("expected 2 references, got %d", len(got))
	}
	if got[0].Title != "First source" || got[0].URL != "https://a.example/one" {
		t.Errorf("unexpected first reference %+v", got[0])
	}
	if got[1].Title != "Second source" || got[1].URL != "https://b.example/two" {
		t.Errorf("unexpected second reference %+v", got[1])
	}
}

func TestExtract_IgnoresBodyLinks(t *testing.T) {
	content := "See [inline](https://inline.example) link.\nNo references section here."
	if got := Extract(content); got != nil {
		t.Errorf("expected nil without references section, got %v", got)
	}
}
