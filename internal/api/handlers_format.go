package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/blogkey/blogkey/internal/importer"
	"github.com/blogkey/blogkey/internal/reflow"
)

// handleFormatText reflows raw text or markdown for mobile reading.
func (s *Server) handleFormatText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
		Target  int    `json:"target,omitempty"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	cfg := s.reflowCfg
	if req.Target > 0 {
		cfg.Target = req.Target
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"formatted": reflow.FormatText(req.Content, cfg),
	})
}

// handleFormatHTML reflows HTML content, replacing line breaks with <br>.
func (s *Server) handleFormatHTML(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HTML   string `json:"html"`
		Target int    `json:"target,omitempty"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	cfg := s.reflowCfg
	if req.Target > 0 {
		cfg.Target = req.Target
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"formatted": reflow.FormatHTML(req.HTML, cfg),
	})
}

// handleFormatUpload extracts text from an uploaded draft (txt, md, html,
// csv, pdf, docx) and reflows it.
func (s *Server) handleFormatUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !importer.IsSupportedExtension(filename) {
		jsonError(w, "unsupported file type: "+filepath.Ext(filename), http.StatusBadRequest)
		return
	}

	extractor, err := importer.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	text, err := extractor.Extract(file, filename)
	if err != nil {
		s.log.Error("extraction failed", "filename", filename, "error", err)
		jsonError(w, "extraction failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"filename":  filename,
		"formatted": reflow.FormatText(text, s.reflowCfg),
	})
}

// sanitizeFilename strips path components from a client-supplied name.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." || name == "/" {
		return "upload"
	}
	return name
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
