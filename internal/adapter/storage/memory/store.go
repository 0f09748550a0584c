package memory

import (
	"context"
	"sync"

	"github.com/bnema/clipd/internal/domain"
	"github.com/bnema/clipd/internal/port"
)

// Store is an in-memory job store. Entries live for the process lifetime;
// there is no eviction and no explicit deletion.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]domain.Job
}

func NewStore() *Store {
	return &Store{
		jobs: make(map[string]domain.Job),
	}
}

// Save stores a snapshot of the job, so later mutations by the executor
// are not visible to readers until the next Save.
func (s *Store) Save(_ context.Context, job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[job.ID] = *job
	return nil
}

func (s *Store) Get(_ context.Context, id string) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &job, nil
}

var _ port.JobStore = (*Store)(nil)
