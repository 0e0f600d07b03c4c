package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// handleListKeywords proxies the backend's keyword list.
func (s *Server) handleListKeywords(w http.ResponseWriter, r *http.Request) {
	keywords, err := s.orchestrator.Backend().ListKeywords(r.Context())
	if err != nil {
		s.log.Error("list keywords failed", "error", err)
		jsonError(w, "backend error: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"keywords": keywords})
}

// handleCreateKeyword registers a keyword on the backend, which analyzes
// search intent for it.
func (s *Server) handleCreateKeyword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Keyword string `json:"keyword"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	req.Keyword = strings.TrimSpace(req.Keyword)
	if req.Keyword == "" {
		jsonError(w, "keyword is required", http.StatusBadRequest)
		return
	}

	kw, err := s.orchestrator.Backend().CreateKeyword(r.Context(), req.Keyword)
	if err != nil {
		s.log.Error("create keyword failed", "keyword", req.Keyword, "error", err)
		jsonError(w, "backend error: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusCreated, kw)
}

// handleDeleteKeyword removes a keyword and its contents from the backend.
func (s *Server) handleDeleteKeyword(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "keywordID"))
	if err != nil {
		jsonError(w, "invalid keyword id", http.StatusBadRequest)
		return
	}

	if err := s.orchestrator.Backend().DeleteKeyword(r.Context(), id); err != nil {
		s.log.Error("delete keyword failed", "keyword_id", id, "error", err)
		jsonError(w, "backend error: "+err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
