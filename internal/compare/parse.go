package compare

import (
	"regexp"
	"strconv"
	"strings"
)

// Outcome tags how much structure was recovered from a model response.
type Outcome int

const (
	// OutcomeStructured: status and match percentage both recognized.
	OutcomeStructured Outcome = iota
	// OutcomeDegraded: response received but fields were defaulted.
	OutcomeDegraded
	// OutcomeFailed: nothing usable in the response.
	OutcomeFailed
)

// Parsed holds the fields recovered from a model response.
type Parsed struct {
	Status      Status
	Reasoning   string
	Remediation string
	Match       int
	Outcome     Outcome
}

var (
	intRe     = regexp.MustCompile(`-?\d+`)
	percentRe = regexp.MustCompile(`(\d{1,3})\s*%`)
)

// ParseResponse recovers verdict fields from loosely structured model text.
// The response is expected to carry labeled lines (Status/Reason/Remediation/
// Match Percentage) but nothing is guaranteed; every field degrades to a
// documented default rather than failing.
func ParseResponse(raw string, synonyms map[string]Status) Parsed {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Parsed{Status: StatusOther, Match: 0, Outcome: OutcomeFailed}
	}

	p := Parsed{Status: StatusOther}
	statusSeen := false
	statusKnown := false
	matchSeen := false

	for _, line := range strings.Split(raw, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(label)) {
		case "status", "state", "classification":
			statusSeen = true
			p.Status, statusKnown = normalizeStatus(value, synonyms)
		case "reason", "reasoning", "analysis", "explanation":
			p.Reasoning = value
		case "remediation", "fix", "suggestion", "suggested fix":
			p.Remediation = value
		case "match", "match percentage", "match percent", "percentage", "score":
			if m := intRe.FindString(value); m != "" {
				n, err := strconv.Atoi(m)
				if err == nil {
					p.Match = clampPercent(n)
					matchSeen = true
				}
			}
		}
	}

	degraded := false

	if !statusSeen {
		// No recognizable structure at all: keep the text as reasoning so
		// nothing is lost, but flag the verdict.
		if p.Reasoning == "" {
			p.Reasoning = truncate(raw, 500)
		}
		degraded = true
	} else if !statusKnown {
		degraded = true
	}

	if !matchSeen {
		switch {
		case p.Status == StatusMissing:
			p.Match = 0
		case p.Status == StatusSufficient:
			p.Match = 100
		default:
			// Best-effort numeric extraction from the full response.
			if n, ok := scanNumber(raw); ok {
				p.Match = clampPercent(n)
				break
			}
			p.Match = 50
			degraded = true
		}
	}

	if degraded {
		p.Outcome = OutcomeDegraded
	} else {
		p.Outcome = OutcomeStructured
	}
	return p
}

// scanNumber finds a percentage-like number in free text, preferring an
// explicit "NN%" over the first bare number.
func scanNumber(raw string) (int, bool) {
	if m := percentRe.FindStringSubmatch(raw); len(m) > 1 {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	if m := intRe.FindString(raw); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n, true
		}
	}
	return 0, false
}

func clampPercent(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
