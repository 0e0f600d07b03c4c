package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blogkey/blogkey/internal/backend"
	"github.com/blogkey/blogkey/internal/config"
	"github.com/blogkey/blogkey/internal/pipeline"
)

const testAPIKey = "test-key"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Config{
		APIKey:         testAPIKey,
		WorkerCount:    1,
		MaxQueueSize:   4,
		MaxUploadBytes: 1 << 20,
		ReflowTarget:   20,
		JobTTL:         time.Hour,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	stats := backend.NewStats(time.Hour)
	client := backend.NewClient("http://backend.invalid", "token", stats)
	orch := pipeline.NewOrchestrator(cfg, client, log)
	return NewServer(orch, stats, log, cfg)
}

func authedRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestHealth_NoAuthRequired(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"content":"hello"}`)
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/format/text", body))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_WrongKey(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/format/text", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer wrong")
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestFormatText_ReflowsProse(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"content":"The quick brown fox jumps over the lazy dog"}`)
	s.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/format/text", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Formatted string `json:"formatted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.Formatted, "\n") {
		t.Errorf("expected reflowed output with line breaks, got %q", resp.Formatted)
	}
	for _, line := range strings.Split(resp.Formatted, "\n") {
		if n := len([]rune(line)); n > 20 {
			t.Errorf("line %q exceeds target: %d runes", line, n)
		}
	}
}

func TestFormatText_CustomTarget(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"content":"aaaa bbbb cccc dddd","target":10}`)
	s.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/format/text", body))

	var resp struct {
		Formatted string `json:"formatted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, line := range strings.Split(resp.Formatted, "\n") {
		if n := len([]rune(line)); n > 10 {
			t.Errorf("line %q exceeds custom target: %d runes", line, n)
		}
	}
}

func TestFormatText_InvalidBody(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/format/text", strings.NewReader("not json")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestFormatHTML_UsesBrBreaks(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"html":"<p>The quick brown fox jumps over the lazy dog</p>"}`)
	s.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/format/html", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Formatted string `json:"formatted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.Formatted, "<br>") {
		t.Errorf("expected <br> breaks in output, got %q", resp.Formatted)
	}
	if strings.Contains(resp.Formatted, "\n") {
		t.Errorf("expected no literal newlines in HTML output, got %q", resp.Formatted)
	}
}

func TestFormatUpload_TextFile(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "draft.txt")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("# Title\n\nThe quick brown fox jumps over the lazy dog.\n"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/format/upload", &buf)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Filename  string `json:"filename"`
		Formatted string `json:"formatted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Filename != "draft.txt" {
		t.Errorf("expected filename %q, got %q", "draft.txt", resp.Filename)
	}
	if !strings.HasPrefix(resp.Formatted, "# Title") {
		t.Errorf("expected heading preserved, got %q", resp.Formatted)
	}
}

func TestFormatUpload_UnsupportedExtension(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "archive.zip")
	part.Write([]byte("binary"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/format/upload", &buf)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestFormatUpload_MissingFile(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("other", "value")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/format/upload", &buf)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "passwd"},
		{"dir/nested.txt", "nested.txt"},
		{"", "upload"},
	}
	for _, c := range cases {
		if got := sanitizeFilename(c.in); got != c.want {
			t.Errorf("sanitizeFilename(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}
