package segment

import (
	"testing"

	"github.com/dgallion1/doccheck/internal/document"
)

func TestSegment_NumberedHeadings(t *testing.T) {
	lines := document.Plain("1. Scope", "This defines scope.", "2. Budget", "TBD")
	sections := New(0).Segment(lines)

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "1. Scope" || sections[0].Content != "This defines scope." {
		t.Errorf("section 0: got {%q, %q}", sections[0].Title, sections[0].Content)
	}
	if sections[1].Title != "2. Budget" || sections[1].Content != "TBD" {
		t.Errorf("section 1: got {%q, %q}", sections[1].Title, sections[1].Content)
	}
}

func TestSegment_SectionCountMatchesHeadingCount(t *testing.T) {
	lines := document.Plain(
		"1. One", "body",
		"2. Two", "body",
		"2.1 Two-one", "body",
		"A) Letter", "body",
		"Section 5: Named", "body",
	)
	sections := New(0).Segment(lines)
	if len(sections) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(sections))
	}
}

func TestSegment_PreambleCollected(t *testing.T) {
	lines := document.Plain("intro text before any heading", "more intro", "1. First", "body")
	sections := New(0).Segment(lines)

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != PreambleTitle {
		t.Errorf("expected preamble first, got %q", sections[0].Title)
	}
	if sections[0].Content != "intro text before any heading\nmore intro" {
		t.Errorf("unexpected preamble content: %q", sections[0].Content)
	}
}

func TestSegment_NoPreambleWhenBlank(t *testing.T) {
	lines := document.Plain("", "   ", "1. First", "body")
	sections := New(0).Segment(lines)

	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Title != "1. First" {
		t.Errorf("expected %q, got %q", "1. First", sections[0].Title)
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	sections := New(0).Segment(nil)
	if len(sections) != 0 {
		t.Errorf("expected 0 sections for empty input, got %d", len(sections))
	}
}

func TestSegment_BlankOnlyInput(t *testing.T) {
	sections := New(0).Segment(document.Plain("", "   ", "\t"))
	if len(sections) != 1 {
		t.Fatalf("expected 1 section for blank-only input, got %d", len(sections))
	}
	if sections[0].Title != PreambleTitle || sections[0].Content != "" {
		t.Errorf("expected empty preamble, got {%q, %q}", sections[0].Title, sections[0].Content)
	}
}

func TestSegment_ShortAcronymStaysBodyText(t *testing.T) {
	lines := document.Plain("1. Scope", "This defines scope.", "2. Budget", "TBD")
	sections := New(0).Segment(lines)

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[1].Title != "2. Budget" || sections[1].Content != "TBD" {
		t.Errorf("section 1: got {%q, %q}", sections[1].Title, sections[1].Content)
	}
}

func TestSegment_HeadingWithNoBody(t *testing.T) {
	lines := document.Plain("1. Empty", "2. Full", "content")
	sections := New(0).Segment(lines)

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Content != "" {
		t.Errorf("expected empty content, got %q", sections[0].Content)
	}
}

func TestSegment_InternalBlankLinesPreserved(t *testing.T) {
	lines := document.Plain("1. Body", "para one", "", "para two")
	sections := New(0).Segment(lines)

	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Content != "para one\n\npara two" {
		t.Errorf("expected internal blank line preserved, got %q", sections[0].Content)
	}
}

func TestSegment_StyledHeadings(t *testing.T) {
	lines := []document.Line{
		{Text: "Introduction", Heading: 1},
		{Text: "Some intro text."},
		{Text: "Methods", Heading: 2},
		{Text: "Some method text."},
	}
	sections := New(0).Segment(lines)

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "Introduction" || sections[1].Title != "Methods" {
		t.Errorf("unexpected titles: %q, %q", sections[0].Title, sections[1].Title)
	}
}

func TestSegment_DuplicateTitlesDisambiguated(t *testing.T) {
	lines := document.Plain("Notes:", "first", "Notes:", "second")
	sections := New(0).Segment(lines)

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "Notes:" {
		t.Errorf("section 0 title: got %q", sections[0].Title)
	}
	if sections[1].Title != "Notes: (2)" {
		t.Errorf("section 1 title: got %q", sections[1].Title)
	}
}

func TestSegment_OrderPreserved(t *testing.T) {
	lines := document.Plain("3. Third", "c", "1. First", "a", "2. Second", "b")
	sections := New(0).Segment(lines)

	want := []string{"3. Third", "1. First", "2. Second"}
	if len(sections) != len(want) {
		t.Fatalf("expected %d sections, got %d", len(want), len(sections))
	}
	for i, w := range want {
		if sections[i].Title != w {
			t.Errorf("section %d: expected %q, got %q", i, w, sections[i].Title)
		}
	}
}
