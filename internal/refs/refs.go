package refs

import (
	"fmt"
	"regexp"
	"strings"
)

// Source is one collected research item attached to a generated post.
type Source struct {
	Type    string `json:"type"` // "news", "academic", or "general"
	Title   string `json:"title"`
	URL     string `json:"url"`
	Date    string `json:"date,omitempty"`
	Site    string `json:"source,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// Reference is a single link extracted from a post's references section.
type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SectionHeading marks the start of the appended references block.
const SectionHeading = "## References"

var (
	citationRe = regexp.MustCompile(`\[\d+\]`)
	linkRe     = regexp.MustCompile(`\[(.*?)\]\((https?://[^\s)]+)\)`)
	phraseRe   = regexp.MustCompile(`[^\s,]+\s[^\s,]+\s[^\s,]+`)
)

// StripCitations removes inline [n] citation markers from a post body.
func StripCitations(content string) string {
	return citationRe.ReplaceAllString(content, "")
}

// Append strips citation markers, drops any previous trailing section after
// the first horizontal rule, and appends a grouped references block. Sources
// without a URL are skipped.
func Append(content string, sources []Source) string {
	clean := StripCitations(content)
	body := strings.TrimSpace(strings.SplitN(clean, "---", 2)[0])

	var cited, extra []Source
	for _, s := range sources {
		if s.URL == "" {
			continue
		}
		if isCited(clean, s) {
			cited = append(cited, s)
		} else {
			extra = append(extra, s)
		}
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\n---\n" + SectionHeading + "\n")

	if len(cited) > 0 {
		b.WriteString("\n### Cited in this post\n")
		for i, s := range cited {
			writeEntry(&b, i+1, s)
		}
	}

	b.WriteString("\n### Further reading\n")
	writeGroup(&b, "#### News", byType(extra, "news"))
	writeGroup(&b, "#### Research", byType(extra, "academic"))
	writeGroup(&b, "#### Web", byType(extra, "general"))

	return b.String()
}

// Extract returns the links listed under the references heading, in order.
// Content without a references section yields nil.
func Extract(content string) []Reference {
	_, after, found := strings.Cut(content, SectionHeading)
	if !found {
		return nil
	}
	var out []Reference
	for _, m := range linkRe.FindAllStringSubmatch(after, -1) {
		out = append(out, Reference{
			Title: strings.TrimSpace(m[1]),
			URL:   m[2],
		})
	}
	return out
}

// isCited reports whether the source appears to be quoted in the body. The
// heuristic looks for any run of three consecutive words from the source
// title or snippet inside the body text.
func isCited(content string, s Source) bool {
	lower := strings.ToLower(content)
	for _, field := range []string{s.Title, s.Snippet} {
		for _, phrase := range phraseRe.FindAllString(strings.ToLower(field), -1) {
			if strings.Contains(lower, phrase) {
				return true
			}
		}
	}
	return false
}

func byType(sources []Source, kind string) []Source {
	var out []Source
	for _, s := range sources {
		if s.Type == kind {
			out = append(out, s)
		}
	}
	return out
}

func writeGroup(b *strings.Builder, heading string, sources []Source) {
	if len(sources) == 0 {
		return
	}
	b.WriteString("\n" + heading + "\n")
	for i, s := range sources {
		writeEntry(b, i+1, s)
	}
}

func writeEntry(b *strings.Builder, n int, s Source) {
	switch {
	case s.Date != "" && s.Site != "":
		fmt.Fprintf(b, "%d. [%s](%s) (%s) - %s\n", n, s.Title, s.URL, s.Date, s.Site)
	case s.Site != "":
		fmt.Fprintf(b, "%d. [%s](%s) - %s\n", n, s.Title, s.URL, s.Site)
	default:
		fmt.Fprintf(b, "%d. [%s](%s)\n", n, s.Title, s.URL)
	}
}
