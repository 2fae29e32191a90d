package report

import (
	"encoding/json"
	"fmt"

	"github.com/dgallion1/doccheck/internal/compare"
)

// Filter returns the subsequence of verdicts whose status is in the selected
// set, preserving original order. An empty selection yields an empty result,
// not "all".
func Filter(verdicts []compare.Verdict, selected []compare.Status) []compare.Verdict {
	want := make(map[compare.Status]bool, len(selected))
	for _, s := range selected {
		want[s] = true
	}
	out := make([]compare.Verdict, 0, len(verdicts))
	for _, v := range verdicts {
		if want[v.Status] {
			out = append(out, v)
		}
	}
	return out
}

// Export serializes a verdict sequence to its canonical form: a JSON array
// of objects with keys section_title, status, reasoning, remediation, and
// match_percentage, in sequence order. The shape is an external contract.
func Export(verdicts []compare.Verdict) ([]byte, error) {
	if verdicts == nil {
		verdicts = []compare.Verdict{}
	}
	data, err := json.MarshalIndent(verdicts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal verdicts: %w", err)
	}
	return data, nil
}

// Import reconstructs a verdict sequence from an exported serialization.
// Export followed by Import round-trips field-for-field.
func Import(data []byte) ([]compare.Verdict, error) {
	var verdicts []compare.Verdict
	if err := json.Unmarshal(data, &verdicts); err != nil {
		return nil, fmt.Errorf("decode verdicts: %w", err)
	}
	for i, v := range verdicts {
		if _, ok := compare.ParseStatus(string(v.Status)); !ok {
			return nil, fmt.Errorf("verdict %d: unknown status %q", i, v.Status)
		}
	}
	return verdicts, nil
}
