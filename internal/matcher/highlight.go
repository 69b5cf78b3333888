package matcher

import "strings"

// Highlighter wraps matched spans of a text in marker strings.
type Highlighter struct {
	Open  string
	Close string
}

// DefaultHighlighter matches the markup the puzzle UI styles.
func DefaultHighlighter() Highlighter {
	return Highlighter{Open: `<mark class="match-highlight">`, Close: `</mark>`}
}

// Render copies text verbatim except that every non-empty match is wrapped.
// Matches must be ordered and non-overlapping, as FindAll returns them.
func (h Highlighter) Render(text string, matches []Match) string {
	if len(matches) == 0 {
		return text
	}
	runes := []rune(text)
	var sb strings.Builder
	sb.Grow(len(text) + len(matches)*(len(h.Open)+len(h.Close)))

	pos := 0
	for _, m := range matches {
		end := m.Index + m.Length
		if m.Length == 0 || m.Index < pos || end > len(runes) {
			continue
		}
		sb.WriteString(string(runes[pos:m.Index]))
		sb.WriteString(h.Open)
		sb.WriteString(string(runes[m.Index:end]))
		sb.WriteString(h.Close)
		pos = end
	}
	sb.WriteString(string(runes[pos:]))
	return sb.String()
}
