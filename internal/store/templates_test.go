package store

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dgallion1/doccheck/internal/segment"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestSaveLoad_RoundTripPreservesOrder(t *testing.T) {
	s := testStore(t)
	tmpl := segment.Template{
		Name: "contract",
		Sections: []segment.Section{
			{Title: "3. Third", Content: "c"},
			{Title: "1. First", Content: "a"},
			{Title: "2. Second", Content: "b\n\nwith blank line"},
		},
	}

	if err := s.Save(tmpl); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load("contract")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "contract.json" {
		t.Errorf("expected canonical name %q, got %q", "contract.json", got.Name)
	}
	if !reflect.DeepEqual(got.Sections, tmpl.Sections) {
		t.Errorf("sections mismatch:\nwant %+v\ngot  %+v", tmpl.Sections, got.Sections)
	}
}

func TestSave_Overwrite(t *testing.T) {
	s := testStore(t)
	first := segment.Template{Name: "t.json", Sections: []segment.Section{{Title: "old", Content: "x"}}}
	second := segment.Template{Name: "t.json", Sections: []segment.Section{{Title: "new", Content: "y"}}}

	if err := s.Save(first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := s.Save(second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := s.Load("t.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Sections) != 1 || got.Sections[0].Title != "new" {
		t.Errorf("expected overwrite, got %+v", got.Sections)
	}
}

func TestLoad_NotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.Load("nope.json")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestList_SortedNames(t *testing.T) {
	s := testStore(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		tmpl := segment.Template{Name: name}
		if err := s.Save(tmpl); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}

	names, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"alpha.json", "mid.json", "zeta.json"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}
}

func TestDelete(t *testing.T) {
	s := testStore(t)
	if err := s.Save(segment.Template{Name: "gone"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete("gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Load("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestCanonicalName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"template1", "template1.json"},
		{"template1.json", "template1.json"},
		{"  spaced  ", "spaced.json"},
		{"../../etc/passwd", "passwd.json"},
		{"", ""},
		{".", ""},
	}
	for _, tc := range cases {
		if got := CanonicalName(tc.in); got != tc.want {
			t.Errorf("CanonicalName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
