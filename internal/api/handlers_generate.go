package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/blogkey/blogkey/internal/backend"
	"github.com/blogkey/blogkey/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleGenerate queues a content-generation job and returns immediately.
// The backend generates synchronously and slowly, so clients poll the job
// instead of holding a connection open for minutes.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		KeywordID      int            `json:"keyword_id"`
		TargetAudience map[string]any `json:"target_audience,omitempty"`
		BusinessInfo   map[string]any `json:"business_info,omitempty"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.KeywordID == 0 {
		jsonError(w, "keyword_id is required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.NewJobID(),
		KeywordID: req.KeywordID,
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetRequest(backend.GenerateRequest{
		KeywordID:      req.KeywordID,
		TargetAudience: req.TargetAudience,
		BusinessInfo:   req.BusinessInfo,
	})

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": "/api/generate/" + job.ID + "/status",
	})
}

// handleGenerateStatus returns the current snapshot of a generation job.
func (s *Server) handleGenerateStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found: "+jobID, http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	writeJSON(w, http.StatusOK, &snap)
}
