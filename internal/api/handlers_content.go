package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/blogkey/blogkey/internal/reflow"
	"github.com/blogkey/blogkey/internal/refs"
	"github.com/blogkey/blogkey/internal/render"
	"github.com/go-chi/chi/v5"
)

// handleListContents proxies the backend's generated-post list.
func (s *Server) handleListContents(w http.ResponseWriter, r *http.Request) {
	contents, err := s.orchestrator.Backend().ListContents(r.Context())
	if err != nil {
		s.log.Error("list contents failed", "error", err)
		jsonError(w, "backend error: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contents": contents})
}

// handleContentMobile fetches a stored post and returns its mobile
// rendition. format=text reflows the raw markdown; format=html renders the
// markdown first and reflows the result with <br> breaks.
func (s *Server) handleContentMobile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "contentID"))
	if err != nil {
		jsonError(w, "invalid content id", http.StatusBadRequest)
		return
	}

	content, err := s.orchestrator.Backend().GetContent(r.Context(), id)
	if err != nil {
		s.log.Error("get content failed", "content_id", id, "error", err)
		jsonError(w, "backend error: "+err.Error(), http.StatusBadGateway)
		return
	}

	body := refs.StripCitations(content.Content)
	if len(content.References) == 0 {
		content.References = refs.Extract(content.Content)
	}

	format := r.URL.Query().Get("format")
	var formatted string
	switch format {
	case "", "text":
		format = "text"
		formatted = reflow.FormatText(body, s.reflowCfg)
	case "html":
		htmlBody, err := render.ToHTML(body)
		if err != nil {
			s.log.Error("markdown render failed", "content_id", id, "error", err)
			jsonError(w, "render failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		formatted = reflow.FormatHTML(htmlBody, s.reflowCfg)
	default:
		jsonError(w, "unsupported format: "+format, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"content_id": content.ID,
		"title":      content.Title,
		"format":     format,
		"formatted":  formatted,
		"references": content.References,
	})
}

// handleContentSummary asks the backend to reformat a post for secondary
// channels (short-video script, social post, bullet summary).
func (s *Server) handleContentSummary(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "contentID"))
	if err != nil {
		jsonError(w, "invalid content id", http.StatusBadRequest)
		return
	}

	var req struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Type == "" {
		req.Type = "vrew"
	}

	summary, err := s.orchestrator.Backend().CreateSummary(r.Context(), id, req.Type)
	if err != nil {
		s.log.Error("create summary failed", "content_id", id, "type", req.Type, "error", err)
		jsonError(w, "backend error: "+err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"content_id": id,
		"type":       req.Type,
		"summary":    summary,
	})
}
