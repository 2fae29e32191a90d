package report

import (
	"reflect"
	"testing"

	"github.com/dgallion1/doccheck/internal/compare"
)

func sampleVerdicts() []compare.Verdict {
	return []compare.Verdict{
		{SectionTitle: "1. Scope", Status: compare.StatusSufficient, Reasoning: "all present", Remediation: "None needed.", MatchPercentage: 95},
		{SectionTitle: "2. Budget", Status: compare.StatusMissing, Reasoning: "no budget found", Remediation: "Add a budget table.", MatchPercentage: 0},
		{SectionTitle: "3. Timeline", Status: compare.StatusLacking, Reasoning: "dates vague", Remediation: "Add concrete dates.", MatchPercentage: 40},
		{SectionTitle: "4. Risks", Status: compare.StatusOther, Reasoning: "could not parse", Remediation: "", MatchPercentage: 0},
	}
}

func TestFilter_SubsetPreservesOrder(t *testing.T) {
	got := Filter(sampleVerdicts(), []compare.Status{compare.StatusMissing, compare.StatusLacking})
	if len(got) != 2 {
		t.Fatalf("expected 2 verdicts, got %d", len(got))
	}
	if got[0].SectionTitle != "2. Budget" || got[1].SectionTitle != "3. Timeline" {
		t.Errorf("order not preserved: %q, %q", got[0].SectionTitle, got[1].SectionTitle)
	}
}

func TestFilter_EmptySelectionYieldsEmpty(t *testing.T) {
	got := Filter(sampleVerdicts(), nil)
	if len(got) != 0 {
		t.Errorf("expected empty result for empty selection, got %d", len(got))
	}
}

func TestFilter_AllStatusesYieldsAll(t *testing.T) {
	verdicts := sampleVerdicts()
	got := Filter(verdicts, compare.AllStatuses())
	if !reflect.DeepEqual(got, verdicts) {
		t.Errorf("expected unchanged sequence, got %+v", got)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	verdicts := sampleVerdicts()
	data, err := Export(verdicts)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	got, err := Import(data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !reflect.DeepEqual(got, verdicts) {
		t.Errorf("round-trip mismatch:\nwant %+v\ngot  %+v", verdicts, got)
	}
}

func TestExport_EmptySequence(t *testing.T) {
	data, err := Export(nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	got, err := Import(data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty sequence, got %d", len(got))
	}
}

func TestImport_UnknownStatusRejected(t *testing.T) {
	data := []byte(`[{"section_title":"x","status":"Fine","reasoning":"","remediation":"","match_percentage":1}]`)
	if _, err := Import(data); err == nil {
		t.Error("expected error for unknown status value")
	}
}
