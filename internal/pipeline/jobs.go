package pipeline

import (
	"sync"
	"time"

	"github.com/blogkey/blogkey/internal/backend"
	"github.com/blogkey/blogkey/internal/refs"
)

// JobStatus represents the state of a generation job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusGenerating JobStatus = "generating"
	StatusFormatting JobStatus = "formatting"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks one background content-generation request. Callers poll its
// snapshot over the API while a worker drives it to completion.
type Job struct {
	mu sync.Mutex

	ID        string
	KeywordID int

	Status JobStatus
	Phase  string

	ContentID int
	Title     string

	Result Result

	CreatedAt time.Time
	UpdatedAt time.Time

	request backend.GenerateRequest
	errors  []string
}

// Result carries the formatted renditions of a finished job.
type Result struct {
	Content    string           `json:"content,omitempty"`     // raw markdown from the backend
	MobileText string           `json:"mobile_text,omitempty"` // reflowed markdown
	MobileHTML string           `json:"mobile_html,omitempty"` // rendered HTML with <br> line breaks
	References []refs.Reference `json:"references,omitempty"`
	Attempts   int              `json:"attempts"`
	Errors     []string         `json:"errors"`
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Result.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrAttempts counts one backend generation attempt.
func (j *Job) IncrAttempts() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Result.Attempts++
	j.UpdatedAt = time.Now()
}

// SetRequest stores the backend request the worker will send.
func (j *Job) SetRequest(req backend.GenerateRequest) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.request = req
}

// Request returns the stored backend request.
func (j *Job) Request() backend.GenerateRequest {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.request
}

// SetResult records the generated post and its formatted renditions.
func (j *Job) SetResult(content *backend.Content, mobileText, mobileHTML string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentID = content.ID
	j.Title = content.Title
	j.Result.Content = content.Content
	j.Result.MobileText = mobileText
	j.Result.MobileHTML = mobileHTML
	j.Result.References = content.References
	j.UpdatedAt = time.Now()
}

// LastUpdated returns the job's last modification time. Workers update the
// timestamp under the job mutex, so concurrent readers must go through here.
func (j *Job) LastUpdated() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.UpdatedAt
}

// Snapshot is a consistent, lock-free copy of a job for serialization.
type Snapshot struct {
	ID        string    `json:"job_id"`
	KeywordID int       `json:"keyword_id"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	ContentID int       `json:"content_id,omitempty"`
	Title     string    `json:"title,omitempty"`
	Result    Result    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a consistent copy for serialization.
func (j *Job) Snapshot() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	snap := Snapshot{
		ID:        j.ID,
		KeywordID: j.KeywordID,
		Status:    j.Status,
		Phase:     j.Phase,
		ContentID: j.ContentID,
		Title:     j.Title,
		Result:    j.Result,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
	snap.Result.Errors = append([]string{}, j.errors...)
	return snap
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.LastUpdated()) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
