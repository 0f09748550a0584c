package domain

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusDone       JobStatus = "done"
	JobStatusError      JobStatus = "error"
)

// Job is one asynchronous unit of work taking a source URL and a time range
// to a finished clip or a terminal error. A job reaches a terminal state
// exactly once; after that its fields are immutable and the result or error
// field is authoritative for status queries.
type Job struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	Start        float64   `json:"start"`
	End          float64   `json:"end"`
	CookiePath   string    `json:"cookie_path,omitempty"`
	Status       JobStatus `json:"status"`
	OutputExt    string    `json:"output_ext,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewJob(sourceURL string, r ClipRange) *Job {
	return &Job{
		ID:        uuid.NewString(),
		URL:       sourceURL,
		Start:     r.Start,
		End:       r.End,
		Status:    JobStatusQueued,
		CreatedAt: time.Now().UTC(),
	}
}

func (j *Job) MarkProcessing() {
	j.Status = JobStatusProcessing
}

func (j *Job) MarkDone(ext string) {
	j.Status = JobStatusDone
	j.OutputExt = ext
}

func (j *Job) MarkFailed(cause string) {
	j.Status = JobStatusError
	j.ErrorMessage = cause
}

// IsTerminal reports whether the job has reached done or error.
func (j *Job) IsTerminal() bool {
	return j.Status == JobStatusDone || j.Status == JobStatusError
}
