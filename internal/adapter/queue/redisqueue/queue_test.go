package redisqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/clipd/internal/domain"
)

func TestDescriptorCarriesJobIdentity(t *testing.T) {
	job := &domain.Job{
		ID:         "abc-123",
		URL:        "https://example.com/v",
		Start:      10,
		End:        40,
		CookiePath: "/tmp/cookies/abc-123.txt",
		Status:     domain.JobStatusQueued,
	}

	got := fromDescriptor(toDescriptor(job))

	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, job.URL, got.URL)
	assert.Equal(t, job.Start, got.Start)
	assert.Equal(t, job.End, got.End)
	assert.Equal(t, job.CookiePath, got.CookiePath)
	// A dequeued job always starts from queued; the consumer marks it
	// processing itself.
	assert.Equal(t, domain.JobStatusQueued, got.Status)
}

func TestDescriptorOmitsEmptyCookie(t *testing.T) {
	d := toDescriptor(&domain.Job{ID: "x", URL: "u", Start: 1, End: 2})
	assert.Empty(t, d.Cookie)
}
