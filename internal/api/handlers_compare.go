package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgallion1/doccheck/internal/compare"
	"github.com/dgallion1/doccheck/internal/pipeline"
	"github.com/dgallion1/doccheck/internal/report"
	"github.com/dgallion1/doccheck/internal/store"
	"github.com/go-chi/chi/v5"
)

// handleCompare starts a comparison run of an uploaded filled document
// against a stored template.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r, "file")
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()

	templateName := strings.TrimSpace(r.FormValue("template"))
	if templateName == "" {
		jsonError(w, "template is required", http.StatusBadRequest)
		return
	}
	// Reject unknown templates up front rather than failing the run later.
	if _, err := s.templates.Load(templateName); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		jsonError(w, "failed to load template: "+err.Error(), http.StatusInternalServerError)
		return
	}

	now := time.Now()
	run := &pipeline.Run{
		ID:           pipeline.NewRunID(),
		TemplateName: store.CanonicalName(templateName),
		Filename:     filename,
		Status:       pipeline.StatusQueued,
		Phase:        "queued",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	run.SetFileData(data)

	if err := s.orchestrator.Submit(run); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	// A worker may already be mutating the run; read through Snapshot.
	snap := run.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"run_id":   snap.ID,
		"template": snap.TemplateName,
		"status":   snap.Status,
		"poll_url": fmt.Sprintf("/api/compare/%s/status", snap.ID),
	})
}

func (s *Server) handleRunStatus(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	run := s.orchestrator.GetRun(runID)
	if run == nil {
		jsonError(w, "run not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run.Snapshot())
}

// resultItem pairs a verdict with its display icon.
type resultItem struct {
	compare.Verdict
	Icon string `json:"icon"`
}

// handleRunResults returns a completed run's verdicts, optionally filtered
// by repeated status query parameters. No status parameter means all
// verdicts; an unknown status value is a client error.
func (s *Server) handleRunResults(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	run := s.orchestrator.GetRun(runID)
	if run == nil {
		jsonError(w, "run not found", http.StatusNotFound)
		return
	}
	snap := run.Snapshot()
	if snap.Status != pipeline.StatusCompleted {
		jsonError(w, fmt.Sprintf("run %s is not completed (status: %s)", runID, snap.Status), http.StatusConflict)
		return
	}

	verdicts := run.Verdicts()
	if raw := r.URL.Query()["status"]; len(raw) > 0 {
		selected := make([]compare.Status, 0, len(raw))
		for _, v := range raw {
			status, ok := compare.ParseStatus(v)
			if !ok {
				jsonError(w, fmt.Sprintf("unknown status %q", v), http.StatusBadRequest)
				return
			}
			selected = append(selected, status)
		}
		verdicts = report.Filter(verdicts, selected)
	}

	items := make([]resultItem, 0, len(verdicts))
	for _, v := range verdicts {
		items = append(items, resultItem{Verdict: v, Icon: v.Status.Icon()})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"run_id":   snap.ID,
		"template": snap.TemplateName,
		"results":  items,
	})
}

// handleRunExport downloads a completed run's verdicts in the canonical
// export serialization.
func (s *Server) handleRunExport(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	run := s.orchestrator.GetRun(runID)
	if run == nil {
		jsonError(w, "run not found", http.StatusNotFound)
		return
	}
	snap := run.Snapshot()
	if snap.Status != pipeline.StatusCompleted {
		jsonError(w, fmt.Sprintf("run %s is not completed (status: %s)", runID, snap.Status), http.StatusConflict)
		return
	}

	data, err := report.Export(run.Verdicts())
	if err != nil {
		jsonError(w, "failed to export results: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="comparison_results.json"`)
	w.Write(data)
}
