package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/blogkey/blogkey/internal/backend"
	"github.com/blogkey/blogkey/internal/reflow"
	"github.com/blogkey/blogkey/internal/refs"
	"github.com/blogkey/blogkey/internal/render"
)

// Worker drives a single generation job: it makes the slow synchronous
// backend call with retry, then produces the mobile-formatted renditions.
type Worker struct {
	client    *backend.Client
	log       *slog.Logger
	reflowCfg reflow.Config
}

func NewWorker(client *backend.Client, log *slog.Logger, reflowCfg reflow.Config) *Worker {
	return &Worker{
		client:    client,
		log:       log,
		reflowCfg: reflowCfg,
	}
}

// Process runs the job to completion.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "keyword_id", job.KeywordID)

	// Phase 1: Generate on the backend.
	job.SetStatus(StatusGenerating, "generating")
	var content *backend.Content
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		content, lastErr = w.client.GenerateContent(ctx, job.Request())
		job.IncrAttempts()
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable generation error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			job.AddError(ctx.Err().Error())
			job.SetStatus(StatusFailed, "generating")
			return
		}
	}
	if lastErr != nil {
		log.Error("generation failed", "error", lastErr)
		job.AddError(lastErr.Error())
		job.SetStatus(StatusFailed, "generating")
		return
	}

	// Phase 2: Format for mobile.
	job.SetStatus(StatusFormatting, "formatting")

	// The backend returns research sources alongside the post; fold them
	// into a grouped references section. Inline [n] markers go away either
	// way, they read poorly on narrow screens.
	if len(content.Sources) > 0 {
		content.Content = refs.Append(content.Content, content.Sources)
	} else {
		content.Content = refs.StripCitations(content.Content)
	}
	if len(content.References) == 0 {
		content.References = refs.Extract(content.Content)
	}

	mobileText := reflow.FormatText(content.Content, w.reflowCfg)

	var mobileHTML string
	if htmlBody, err := render.ToHTML(content.Content); err != nil {
		// The text rendition still succeeds; record and move on.
		log.Warn("markdown render failed", "error", err)
		job.AddError(fmt.Sprintf("render: %s", err))
	} else {
		mobileHTML = reflow.FormatHTML(htmlBody, w.reflowCfg)
	}

	job.SetResult(content, mobileText, mobileHTML)
	job.SetStatus(StatusCompleted, "done")
	log.Info("generation complete", "content_id", content.ID, "attempts", job.Snapshot().Result.Attempts)
}
