package reflow

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	brTagRe  = regexp.MustCompile(`(?i)<br\s*/?\s*>`)
	anyTagRe = regexp.MustCompile(`<[^>]*>`)
)

// FormatHTMLForMobile re-wraps HTML content for a narrow viewport. <br>
// variants become line boundaries, remaining markup is stripped down to its
// visible text, the text is reflowed, and line breaks come back as <br>
// tags. The result never contains a literal newline.
func FormatHTMLForMobile(htmlContent string) string {
	return FormatHTML(htmlContent, DefaultConfig())
}

// FormatHTML is FormatHTMLForMobile with an explicit Config.
func FormatHTML(htmlContent string, cfg Config) string {
	if htmlContent == "" {
		return ""
	}
	text := brTagRe.ReplaceAllString(htmlContent, "\n")
	text = stripTags(text)
	formatted := FormatText(text, cfg)
	return strings.ReplaceAll(formatted, "\n", "<br>")
}

// stripTags extracts the visible text from markup, decoding entities along
// the way. x/net/html tolerates arbitrarily malformed input; if parsing
// still fails we fall back to a regex strip so the function stays total.
func stripTags(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return anyTagRe.ReplaceAllString(s, "")
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return buf.String()
}
