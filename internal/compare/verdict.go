package compare

// Status classifies how well a filled section satisfies its template
// section. The four string values are part of the export contract and must
// not change.
type Status string

const (
	StatusSufficient Status = "Sufficient"
	StatusMissing    Status = "Missing"
	StatusLacking    Status = "Lacking Information"
	StatusOther      Status = "Other Issue"
)

// AllStatuses returns the four statuses in display order.
func AllStatuses() []Status {
	return []Status{StatusSufficient, StatusMissing, StatusLacking, StatusOther}
}

// ParseStatus maps an exact external status string to its Status value.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusSufficient, StatusMissing, StatusLacking, StatusOther:
		return Status(s), true
	}
	return "", false
}

// Icon returns the display icon for a status.
func (s Status) Icon() string {
	switch s {
	case StatusSufficient:
		return "✅"
	case StatusMissing:
		return "❌"
	case StatusLacking:
		return "⚠️"
	default:
		return "❓"
	}
}

// Verdict is the outcome of comparing one template section against a filled
// document. Verdicts form an ordered sequence aligned 1:1 with the
// template's section order.
type Verdict struct {
	SectionTitle    string `json:"section_title"`
	Status          Status `json:"status"`
	Reasoning       string `json:"reasoning"`
	Remediation     string `json:"remediation"`
	MatchPercentage int    `json:"match_percentage"`

	// Degraded marks verdicts whose fields were only partially recoverable
	// from the model response. Not part of the export contract.
	Degraded bool `json:"-"`
}
