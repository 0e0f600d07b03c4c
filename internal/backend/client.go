package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/blogkey/blogkey/internal/refs"
)

// Client communicates with the blog-content backend HTTP API. The backend
// owns persistence and all AI generation; this client only wraps its JSON
// endpoints.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	stats      *Stats
}

// NewClient creates a backend client. Generation calls are synchronous on
// the backend side and can take minutes, hence the generous timeout.
func NewClient(baseURL, token string, stats *Stats) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 180 * time.Second,
		},
		stats: stats,
	}
}

// RetryableError marks backend failures worth retrying (rate limits and
// server-side errors).
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("backend status %d: %s", e.StatusCode, e.Message)
}

// Keyword is a managed search keyword with its analysis results.
type Keyword struct {
	ID         int      `json:"id"`
	Keyword    string   `json:"keyword"`
	MainIntent string   `json:"main_intent,omitempty"`
	InfoNeeded []string `json:"info_needed,omitempty"`
	PainPoints []string `json:"pain_points,omitempty"`
	CreatedAt  string   `json:"created_at,omitempty"`
}

// Content is a generated blog post as stored by the backend.
type Content struct {
	ID          int              `json:"id"`
	KeywordID   int              `json:"keyword"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	References  []refs.Reference `json:"references,omitempty"`
	Sources     []refs.Source    `json:"sources,omitempty"`
	CharCount   int              `json:"char_count,omitempty"`
	IsOptimized bool             `json:"is_optimized,omitempty"`
	CreatedAt   string           `json:"created_at,omitempty"`
}

// GenerateRequest is the body for POST /api/content/generate/.
type GenerateRequest struct {
	KeywordID      int            `json:"keyword_id"`
	TargetAudience map[string]any `json:"target_audience,omitempty"`
	BusinessInfo   map[string]any `json:"business_info,omitempty"`
}

// ListKeywords returns the user's keywords.
func (c *Client) ListKeywords(ctx context.Context) ([]Keyword, error) {
	var out []Keyword
	if err := c.do(ctx, http.MethodGet, "/api/key-word/keywords/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateKeyword registers a new keyword for analysis.
func (c *Client) CreateKeyword(ctx context.Context, keyword string) (*Keyword, error) {
	body := map[string]string{"keyword": keyword}
	var out Keyword
	if err := c.do(ctx, http.MethodPost, "/api/key-word/keywords/", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteKeyword removes a keyword and its generated contents.
func (c *Client) DeleteKeyword(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/key-word/keywords/%d/", id), nil, nil)
}

// GetContent fetches a single generated post.
func (c *Client) GetContent(ctx context.Context, id int) (*Content, error) {
	var out Content
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/content/%d/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListContents returns the user's generated posts, newest first.
func (c *Client) ListContents(ctx context.Context) ([]Content, error) {
	var out []Content
	if err := c.do(ctx, http.MethodGet, "/api/content/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateContent asks the backend to generate a post for a keyword. The
// call blocks until the backend finishes; run it from a worker.
func (c *Client) GenerateContent(ctx context.Context, req GenerateRequest) (*Content, error) {
	var envelope struct {
		Message string   `json:"message"`
		Data    *Content `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/content/generate/", req, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("generate content: empty response data")
	}
	return envelope.Data, nil
}

// CreateSummary asks the backend to reformat a post for secondary use.
// Known types are "vrew" (short-video script), "social", and "bullet".
func (c *Client) CreateSummary(ctx context.Context, contentID int, summaryType string) (string, error) {
	body := map[string]any{
		"content_id":   contentID,
		"summary_type": summaryType,
	}
	var out struct {
		Summary string `json:"summary"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/title/summary/", body, &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

// do executes one JSON request against the backend, recording its latency.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Token "+c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.stats != nil {
		c.stats.Record(time.Since(start).Milliseconds())
	}
	if err != nil {
		return fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    truncate(string(respBody), 200),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, truncate(string(respBody), 200))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Close releases any resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
