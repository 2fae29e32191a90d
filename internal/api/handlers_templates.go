package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/doccheck/internal/parser"
	"github.com/dgallion1/doccheck/internal/segment"
	"github.com/dgallion1/doccheck/internal/store"
	"github.com/go-chi/chi/v5"
)

// readUpload pulls the named file field from a multipart request, enforcing
// size limits and extension support. Returns the sanitized filename and the
// file bytes.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, field string) (string, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		jsonError(w, field+" is required: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return "", nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return "", nil, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return "", nil, false
	}
	return filename, data, true
}

// segmentUpload extracts and segments an uploaded document, writing the
// error response itself on failure.
func (s *Server) segmentUpload(w http.ResponseWriter, filename string, data []byte) ([]segment.Section, bool) {
	lines, err := parser.Extract(bytes.NewReader(data), filename)
	if err != nil {
		var extErr *parser.ExtractionError
		switch {
		case errors.Is(err, parser.ErrUnsupportedFormat):
			jsonError(w, err.Error(), http.StatusBadRequest)
		case errors.As(err, &extErr):
			jsonError(w, fmt.Sprintf("could not extract text from %s: %s", filename, extErr.Err), http.StatusUnprocessableEntity)
		default:
			jsonError(w, err.Error(), http.StatusInternalServerError)
		}
		return nil, false
	}
	return s.segmenter.Segment(lines), true
}

// handleSegment previews segmentation without persisting a template.
func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r, "file")
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()

	sections, ok := s.segmentUpload(w, filename, data)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"filename": filename,
		"sections": sections,
	})
}

// handleCreateTemplate segments an uploaded document and saves the result
// under the chosen name, overwriting any existing template of that name.
func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r, "file")
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		jsonError(w, "name is required", http.StatusBadRequest)
		return
	}
	canonical := store.CanonicalName(name)
	if canonical == "" {
		jsonError(w, fmt.Sprintf("invalid template name %q", name), http.StatusBadRequest)
		return
	}

	sections, ok := s.segmentUpload(w, filename, data)
	if !ok {
		return
	}

	tmpl := segment.Template{Name: canonical, Sections: sections}
	if err := s.templates.Save(tmpl); err != nil {
		jsonError(w, "failed to save template: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(tmpl)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	names, err := s.templates.List()
	if err != nil {
		jsonError(w, "failed to list templates: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if names == nil {
		names = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"templates": names})
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	tmpl, err := s.templates.Load(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		jsonError(w, "failed to load template: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tmpl)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.templates.Delete(name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		jsonError(w, "failed to delete template: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
