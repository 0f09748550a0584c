package port

import (
	"context"

	"github.com/bnema/clipd/internal/domain"
)

// JobStore maps job IDs to their current lifecycle state. Implementations
// must support concurrent set/get by key; only the single executor handling
// a job ever writes its terminal state.
type JobStore interface {
	Save(ctx context.Context, job *domain.Job) error
	Get(ctx context.Context, id string) (*domain.Job, error)
}
