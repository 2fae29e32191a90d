package segment

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/doccheck/internal/document"
)

// Detector classifies a single line as a heading candidate. Detectors are
// pure and evaluated in order; the first match wins.
type Detector struct {
	Name  string
	Match func(line document.Line) bool
}

var (
	// Numeric/alphanumeric enumerator followed by a separator:
	// "1. Scope", "1.1 Overview", "2) Budget", "10.2.3: Details".
	numberingRe = regexp.MustCompile(`^\d+(\.\d+)*[.):]`)

	// Letter enumerator: "A) Terms", "B. Conditions".
	letterRe = regexp.MustCompile(`^[A-Z][.)]\s+\S`)

	// Named enumerator: "Section 3:", "Article 12", "Appendix B".
	namedRe = regexp.MustCompile(`(?i)^(section|article|chapter|part|appendix)\s+[0-9A-Z]+[.:]?(\s|$)`)

	// Short label ending in a colon: "Conclusion:", "Scope Of Work:".
	colonLabelRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9 /&-]*:$`)
)

// NumberingDetector matches enumerated heading lines.
func NumberingDetector() Detector {
	return Detector{
		Name: "numbering",
		Match: func(line document.Line) bool {
			t := strings.TrimSpace(line.Text)
			return numberingRe.MatchString(t) || letterRe.MatchString(t) || namedRe.MatchString(t)
		},
	}
}

// StyledDetector matches lines the source format explicitly styled as a
// heading (DOCX heading style, Markdown heading, HTML h1-h6).
func StyledDetector() Detector {
	return Detector{
		Name: "styled",
		Match: func(line document.Line) bool {
			return line.Heading > 0 && strings.TrimSpace(line.Text) != ""
		},
	}
}

// ColonLabelDetector matches short capitalized labels ending in a colon,
// e.g. "Conclusion:".
func ColonLabelDetector(maxLen int) Detector {
	return Detector{
		Name: "colon-label",
		Match: func(line document.Line) bool {
			t := strings.TrimSpace(line.Text)
			return len(t) <= maxLen && colonLabelRe.MatchString(t)
		},
	}
}

// AllCapsDetector matches short standalone all-caps lines in plain text,
// e.g. "EXECUTIVE SUMMARY". Lines of 3 characters or fewer never match:
// acronyms like "TBD" or "N/A" are body text, not headings.
func AllCapsDetector(maxLen int) Detector {
	return Detector{
		Name: "all-caps",
		Match: func(line document.Line) bool {
			t := strings.TrimSpace(line.Text)
			if len(t) <= 3 || len(t) > maxLen {
				return false
			}
			hasLetter := false
			for _, r := range t {
				if unicode.IsLower(r) {
					return false
				}
				if unicode.IsLetter(r) {
					hasLetter = true
				}
			}
			if !hasLetter {
				return false
			}
			return !strings.ContainsAny(t, ".!?")
		},
	}
}
