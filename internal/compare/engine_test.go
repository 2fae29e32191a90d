package compare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dgallion1/doccheck/internal/segment"
)

// fakeInvoker returns canned responses for testing.
type fakeInvoker struct {
	fn    func(prompt string) (string, error)
	calls atomic.Int64
}

func (f *fakeInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	return f.fn(prompt)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTemplate(n int) segment.Template {
	tmpl := segment.Template{Name: "test.json"}
	for i := 0; i < n; i++ {
		tmpl.Sections = append(tmpl.Sections, segment.Section{
			Title:   fmt.Sprintf("%d. Section", i+1),
			Content: fmt.Sprintf("expected content %d", i+1),
		})
	}
	return tmpl
}

func TestCompare_OneVerdictPerSection(t *testing.T) {
	llm := &fakeInvoker{fn: func(prompt string) (string, error) {
		return "Status: Sufficient\nReason: fine\nRemediation: None needed\nMatch Percentage: 90", nil
	}}
	e := NewEngine(llm, testLogger(), Config{})

	tmpl := testTemplate(5)
	verdicts := e.Compare(context.Background(), tmpl, "some filled text", nil)

	if len(verdicts) != 5 {
		t.Fatalf("expected 5 verdicts, got %d", len(verdicts))
	}
	for i, v := range verdicts {
		if v.SectionTitle != tmpl.Sections[i].Title {
			t.Errorf("verdict %d: expected title %q, got %q", i, tmpl.Sections[i].Title, v.SectionTitle)
		}
		if v.Status != StatusSufficient || v.MatchPercentage != 90 {
			t.Errorf("verdict %d: got status %q match %d", i, v.Status, v.MatchPercentage)
		}
	}
}

func TestCompare_AllInvocationsFail(t *testing.T) {
	llm := &fakeInvoker{fn: func(prompt string) (string, error) {
		return "", errors.New("connection refused")
	}}
	e := NewEngine(llm, testLogger(), Config{})

	tmpl := testTemplate(4)
	verdicts := e.Compare(context.Background(), tmpl, "filled", nil)

	if len(verdicts) != 4 {
		t.Fatalf("expected 4 verdicts even on total failure, got %d", len(verdicts))
	}
	for i, v := range verdicts {
		if v.Status != StatusOther {
			t.Errorf("verdict %d: expected Other Issue, got %q", i, v.Status)
		}
		if v.MatchPercentage != 0 {
			t.Errorf("verdict %d: expected match 0, got %d", i, v.MatchPercentage)
		}
		if !v.Degraded {
			t.Errorf("verdict %d: expected degraded flag", i)
		}
		if !strings.Contains(v.Reasoning, "connection refused") {
			t.Errorf("verdict %d: reasoning should describe the failure, got %q", i, v.Reasoning)
		}
	}
}

func TestCompare_OrderPreservedUnderConcurrency(t *testing.T) {
	// Later sections answer faster; output must still follow template order.
	llm := &fakeInvoker{fn: func(prompt string) (string, error) {
		delay := 50 * time.Millisecond
		if strings.Contains(prompt, `"5. Section"`) || strings.Contains(prompt, `"6. Section"`) {
			delay = time.Millisecond
		}
		time.Sleep(delay)
		return "Status: Missing\nReason: nope", nil
	}}
	e := NewEngine(llm, testLogger(), Config{MaxConcurrent: 6})

	tmpl := testTemplate(6)
	verdicts := e.Compare(context.Background(), tmpl, "filled", nil)

	if len(verdicts) != 6 {
		t.Fatalf("expected 6 verdicts, got %d", len(verdicts))
	}
	for i, v := range verdicts {
		if v.SectionTitle != tmpl.Sections[i].Title {
			t.Errorf("verdict %d: expected %q, got %q", i, tmpl.Sections[i].Title, v.SectionTitle)
		}
	}
}

func TestCompare_VerbatimMatchSkipsLLM(t *testing.T) {
	llm := &fakeInvoker{fn: func(prompt string) (string, error) {
		return "", errors.New("should not be called")
	}}
	e := NewEngine(llm, testLogger(), Config{})

	tmpl := segment.Template{Sections: []segment.Section{
		{Title: "1. Scope", Content: "This defines scope."},
	}}
	verdicts := e.Compare(context.Background(), tmpl, "Header\nThis defines scope.\nFooter", nil)

	if llm.calls.Load() != 0 {
		t.Errorf("expected no LLM calls for verbatim match, got %d", llm.calls.Load())
	}
	if verdicts[0].Status != StatusSufficient || verdicts[0].MatchPercentage != 100 {
		t.Errorf("expected Sufficient/100, got %q/%d", verdicts[0].Status, verdicts[0].MatchPercentage)
	}
}

func TestCompare_EmptyResponseDegrades(t *testing.T) {
	llm := &fakeInvoker{fn: func(prompt string) (string, error) {
		return "", nil
	}}
	e := NewEngine(llm, testLogger(), Config{})

	tmpl := testTemplate(1)
	verdicts := e.Compare(context.Background(), tmpl, "filled", nil)

	v := verdicts[0]
	if v.Status != StatusOther || v.MatchPercentage != 0 || !v.Degraded {
		t.Errorf("expected degraded Other Issue/0, got %q/%d degraded=%v", v.Status, v.MatchPercentage, v.Degraded)
	}
}

func TestCompare_OnSectionCallback(t *testing.T) {
	llm := &fakeInvoker{fn: func(prompt string) (string, error) {
		return "Status: Missing", nil
	}}
	e := NewEngine(llm, testLogger(), Config{})

	var count atomic.Int64
	e.Compare(context.Background(), testTemplate(3), "filled", func() { count.Add(1) })

	if count.Load() != 3 {
		t.Errorf("expected callback 3 times, got %d", count.Load())
	}
}

func TestCompare_EmptyTemplate(t *testing.T) {
	llm := &fakeInvoker{fn: func(prompt string) (string, error) { return "", nil }}
	e := NewEngine(llm, testLogger(), Config{})

	verdicts := e.Compare(context.Background(), segment.Template{}, "filled", nil)
	if len(verdicts) != 0 {
		t.Errorf("expected 0 verdicts for empty template, got %d", len(verdicts))
	}
}
