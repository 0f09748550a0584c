package port

import (
	"context"

	"github.com/bnema/clipd/internal/domain"
)

// JobQueue is the transport for the queue-backed deployment shape. Delivery
// is at-most-once: a descriptor leaves the queue on pop, before processing
// completes.
type JobQueue interface {
	Enqueue(ctx context.Context, job *domain.Job) error
	// Dequeue blocks until a job is available or ctx is cancelled.
	Dequeue(ctx context.Context) (*domain.Job, error)
}
