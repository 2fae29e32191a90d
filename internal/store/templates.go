package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgallion1/doccheck/internal/segment"
)

// ErrNotFound is returned when a named template does not exist.
var ErrNotFound = errors.New("template not found")

// Store persists segmentation templates as JSON files under a single
// directory, keyed by user-chosen name. Last writer wins; this store makes
// no multi-writer guarantees.
type Store struct {
	dir string
}

// Open ensures the template directory exists and returns a store over it.
// Opened once per process and passed down explicitly.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create template dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes a template under its name, creating or overwriting. The write
// is atomic: temp file then rename.
func (s *Store) Save(tmpl segment.Template) error {
	name := CanonicalName(tmpl.Name)
	if name == "" {
		return fmt.Errorf("invalid template name %q", tmpl.Name)
	}
	tmpl.Name = name

	data, err := json.MarshalIndent(tmpl, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal template: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmpl-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write template: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename template: %w", err)
	}
	return nil
}

// Load reads a template by name. Section order comes back exactly as saved.
func (s *Store) Load(name string) (segment.Template, error) {
	canonical := CanonicalName(name)
	if canonical == "" {
		return segment.Template{}, fmt.Errorf("invalid template name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, canonical))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return segment.Template{}, fmt.Errorf("%w: %s", ErrNotFound, canonical)
		}
		return segment.Template{}, fmt.Errorf("read template: %w", err)
	}

	var tmpl segment.Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return segment.Template{}, fmt.Errorf("decode template %s: %w", canonical, err)
	}
	tmpl.Name = canonical
	return tmpl, nil
}

// List returns the names of all stored templates, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a template by name.
func (s *Store) Delete(name string) error {
	canonical := CanonicalName(name)
	if canonical == "" {
		return fmt.Errorf("invalid template name %q", name)
	}
	if err := os.Remove(filepath.Join(s.dir, canonical)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, canonical)
		}
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// CanonicalName sanitizes a user-chosen template name to a flat .json
// filename. Returns "" when nothing usable remains.
func CanonicalName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		return ""
	}
	if !strings.HasSuffix(strings.ToLower(name), ".json") {
		name += ".json"
	}
	return name
}
