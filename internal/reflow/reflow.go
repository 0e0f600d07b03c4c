package reflow

import (
	"regexp"
	"strings"
)

// DefaultTarget is the desired maximum rune count per reflowed line.
// Chosen for comfortable reading on a narrow phone viewport.
const DefaultTarget = 20

const (
	// Words longer than Target*overflowFactor cannot be wrapped and are
	// sliced at fixed width instead.
	overflowFactor = 1.5
	// Minimum fill ratio before a trailing comma triggers an early break.
	softBreakRatio = 0.7
)

// Config controls prose re-wrapping.
type Config struct {
	Target int // target runes per reflowed line, separating spaces included
}

// DefaultConfig returns the standard mobile reflow settings.
func DefaultConfig() Config {
	return Config{Target: DefaultTarget}
}

// LineKind classifies a single input line.
type LineKind int

const (
	LineProse LineKind = iota
	LineHeading
	LineBlank
	LineListItem
	LineStructural
)

var listMarkerRe = regexp.MustCompile(`^(-|\*|\d+\.)\s`)

// Classify determines how a line is treated: everything except Prose is
// passed through unchanged. Checks run in precedence order, first match wins.
func Classify(line string) LineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "#"):
		return LineHeading
	case trimmed == "":
		return LineBlank
	case listMarkerRe.MatchString(trimmed):
		return LineListItem
	case strings.HasPrefix(trimmed, "```"),
		strings.HasPrefix(trimmed, "---"),
		strings.HasPrefix(trimmed, "|"):
		return LineStructural
	}
	return LineProse
}

// FormatPlainText re-wraps prose lines to the default target length while
// leaving headings, blank lines, list items, code fences, rules, and table
// rows untouched. It is total: any input string yields a string, and empty
// input yields an empty string.
func FormatPlainText(content string) string {
	return FormatText(content, DefaultConfig())
}

// FormatText is FormatPlainText with an explicit Config.
func FormatText(content string, cfg Config) string {
	if content == "" {
		return ""
	}
	if cfg.Target <= 0 {
		cfg.Target = DefaultTarget
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if Classify(line) != LineProse {
			out = append(out, line)
			continue
		}
		out = append(out, reflowLine(line, cfg)...)
	}
	return strings.Join(out, "\n")
}

// softBreaks maps a trailing punctuation mark on the running chunk to
// whether the break is gated by the fill threshold. Only the comma case is
// gated; the others break as soon as the chunk is non-empty. The asymmetry
// is deliberate and matches the shipped behavior.
var softBreaks = []struct {
	suffix string
	gated  bool
}{
	{",", true},
	{".", false},
	{"?", false},
	{"!", false},
	{":", false},
	{";", false},
}

// reflowLine splits a prose line into words and regroups them into chunks
// near the target length, preferring breaks right after punctuation. Word
// order is preserved; each returned chunk becomes one output line.
func reflowLine(line string, cfg Config) []string {
	words := strings.Fields(line)
	maxWord := int(float64(cfg.Target) * overflowFactor)

	var chunks []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, string(current))
			current = current[:0]
		}
	}

	for _, word := range words {
		runes := []rune(word)

		if len(runes) > maxWord {
			// Unsplittable token: emit fixed-width slices. The final
			// remainder starts the next chunk rather than its own line.
			flush()
			for len(runes) > cfg.Target {
				chunks = append(chunks, string(runes[:cfg.Target]))
				runes = runes[cfg.Target:]
			}
			current = append(current, runes...)
			continue
		}

		newLen := len(current) + len(runes)
		if len(current) > 0 {
			newLen++ // separating space
		}

		if len(current) > 0 && breakBefore(current, newLen, cfg.Target) {
			flush()
			current = append(current, runes...)
			continue
		}
		if len(current) > 0 {
			current = append(current, ' ')
		}
		current = append(current, runes...)
	}
	flush()

	return chunks
}

// breakBefore decides whether the chunk ends before the next word is
// appended. newLen is the chunk length as it would be with the word added.
func breakBefore(current []rune, newLen, target int) bool {
	if newLen > target {
		return true
	}
	chunk := string(current)
	threshold := float64(target) * softBreakRatio
	for _, sb := range softBreaks {
		if !strings.HasSuffix(chunk, sb.suffix) {
			continue
		}
		if sb.gated && float64(newLen) <= threshold {
			continue
		}
		return true
	}
	return false
}
