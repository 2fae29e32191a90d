package segment

import (
	"fmt"
	"strings"

	"github.com/dgallion1/doccheck/internal/document"
)

// PreambleTitle names the implicit section collecting body lines that appear
// before the first detected heading. They are kept rather than discarded.
const PreambleTitle = "Preamble"

// DefaultHeadingMaxLen bounds how long a line may be for the structural
// (colon-label, all-caps) detectors to consider it a heading.
const DefaultHeadingMaxLen = 60

// Segmenter splits an ordered line sequence into sections using a fixed,
// ordered set of heading detectors.
type Segmenter struct {
	detectors []Detector
}

// New returns a Segmenter with the standard detector order: numbering first,
// then source styling, then colon labels, then short all-caps lines.
func New(headingMaxLen int) *Segmenter {
	if headingMaxLen <= 0 {
		headingMaxLen = DefaultHeadingMaxLen
	}
	return &Segmenter{
		detectors: []Detector{
			NumberingDetector(),
			StyledDetector(),
			ColonLabelDetector(headingMaxLen),
			AllCapsDetector(headingMaxLen),
		},
	}
}

// isHeading reports whether any detector classifies the line as a heading.
func (s *Segmenter) isHeading(line document.Line) bool {
	for _, d := range s.detectors {
		if d.Match(line) {
			return true
		}
	}
	return false
}

// Segment scans lines in order and produces the ordered section sequence.
// A new section begins at each heading candidate; body lines accumulate into
// the current section until the next heading or end of input. Lines before
// the first heading form an implicit Preamble section if any are non-blank.
// Empty input yields zero sections.
func (s *Segmenter) Segment(lines []document.Line) []Section {
	var sections []Section
	titleCount := make(map[string]int)

	var title string
	var body []string
	open := false // a heading has been seen

	flush := func() {
		content := strings.TrimSpace(strings.Join(body, "\n"))
		body = body[:0]
		if !open {
			// Preamble: only kept when it has actual content.
			if content != "" {
				sections = append(sections, Section{Title: PreambleTitle, Content: content})
				titleCount[PreambleTitle]++
			}
			return
		}
		sections = append(sections, Section{Title: title, Content: content})
	}

	for _, line := range lines {
		if s.isHeading(line) {
			flush()
			title = uniqueTitle(strings.TrimSpace(line.Text), titleCount)
			open = true
			continue
		}
		body = append(body, line.Text)
	}
	flush()

	// Non-empty input never segments to zero sections: all-blank input
	// yields a single empty Preamble.
	if len(sections) == 0 && len(lines) > 0 {
		sections = append(sections, Section{Title: PreambleTitle})
	}

	return sections
}

// uniqueTitle disambiguates repeated headings by position: the second
// occurrence of "Notes" becomes "Notes (2)".
func uniqueTitle(title string, seen map[string]int) string {
	seen[title]++
	if n := seen[title]; n > 1 {
		return fmt.Sprintf("%s (%d)", title, n)
	}
	return title
}
