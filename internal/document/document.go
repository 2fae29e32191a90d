package document

import "strings"

// Line is one line of visible text extracted from a source document.
// Heading is the explicit structural heading level carried by the source
// format (DOCX paragraph style, Markdown heading, HTML h1-h6); 0 means the
// source gave the line no heading styling.
type Line struct {
	Text    string
	Heading int
}

// Plain returns lines carrying the given texts with no heading styling.
func Plain(texts ...string) []Line {
	lines := make([]Line, 0, len(texts))
	for _, t := range texts {
		lines = append(lines, Line{Text: t})
	}
	return lines
}

// Join flattens a line sequence back into a single text blob, one line per
// source line. Used to build the filled-document text for comparison.
func Join(lines []Line) string {
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(l.Text)
	}
	return sb.String()
}
