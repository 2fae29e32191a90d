package compare

import "strings"

// DefaultSynonyms returns the built-in table mapping free-text status words
// from model responses to the four-value enum. Keys are lowercase. The table
// is heuristic, not exhaustive; STATUS_SYNONYMS extends it at runtime.
func DefaultSynonyms() map[string]Status {
	return map[string]Status{
		"sufficient": StatusSufficient,
		"ok":         StatusSufficient,
		"okay":       StatusSufficient,
		"complete":   StatusSufficient,
		"completed":  StatusSufficient,
		"pass":       StatusSufficient,
		"adequate":   StatusSufficient,
		"matches":    StatusSufficient,

		"missing":   StatusMissing,
		"absent":    StatusMissing,
		"not found": StatusMissing,
		"empty":     StatusMissing,
		"omitted":   StatusMissing,

		"lacking information": StatusLacking,
		"lacking":             StatusLacking,
		"partial":             StatusLacking,
		"partially complete":  StatusLacking,
		"incomplete":          StatusLacking,
		"insufficient":        StatusLacking,

		"other issue": StatusOther,
		"issue":       StatusOther,
		"error":       StatusOther,
		"unclear":     StatusOther,
	}
}

// ExtendSynonyms parses a comma-separated "label=Status" list and merges it
// over the base table. Malformed entries and unknown statuses are skipped.
func ExtendSynonyms(base map[string]Status, spec string) map[string]Status {
	for _, pair := range strings.Split(spec, ",") {
		label, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		label = strings.ToLower(strings.TrimSpace(label))
		status, ok := ParseStatus(strings.TrimSpace(value))
		if label == "" || !ok {
			continue
		}
		base[label] = status
	}
	return base
}

// normalizeStatus maps a raw status word through the synonym table.
// Unrecognized words fall through to Other Issue with ok=false.
func normalizeStatus(raw string, synonyms map[string]Status) (Status, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.Trim(key, `'".`)
	if s, ok := synonyms[key]; ok {
		return s, true
	}
	return StatusOther, false
}
