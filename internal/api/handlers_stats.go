package api

import "net/http"

// handleBackendStats reports backend call latency over the rolling window.
func (s *Server) handleBackendStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"backend":     s.stats.Snapshot(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
