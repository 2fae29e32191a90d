package api

import (
	"encoding/json"
	"net/http"
)

// handleLLMStats reports rolling latency aggregates for the comparison
// calls, keyed by the configured model.
func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.claude == nil || s.claude.Stats == nil {
		jsonError(w, "no comparison stats recorded", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"model": s.claude.Model(),
		"stats": s.claude.Stats.Snapshot(),
	})
}
