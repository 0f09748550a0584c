package redisqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bnema/clipd/internal/domain"
	"github.com/bnema/clipd/internal/port"
)

const (
	defaultKey  = "clipd:queue"
	popInterval = 5 * time.Second
)

// descriptor is the serialized job shape carried on the queue.
type descriptor struct {
	ID     string  `json:"id"`
	URL    string  `json:"url"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Cookie string  `json:"cookie,omitempty"`
}

// Queue is a Redis list used as a single FIFO work queue. Delivery is
// at-most-once: BRPOP removes the descriptor before processing begins.
type Queue struct {
	client redis.UniversalClient
	key    string
}

func NewQueue(client redis.UniversalClient) *Queue {
	return &Queue{client: client, key: defaultKey}
}

func NewQueueWithKey(client redis.UniversalClient, key string) *Queue {
	return &Queue{client: client, key: key}
}

func (q *Queue) Enqueue(ctx context.Context, job *domain.Job) error {
	data, err := json.Marshal(toDescriptor(job))
	if err != nil {
		return fmt.Errorf("marshal descriptor: %w", err)
	}
	return q.client.LPush(ctx, q.key, data).Err()
}

// Dequeue blocks until a descriptor arrives or ctx is cancelled. The pop
// uses a short timeout so cancellation is observed promptly.
func (q *Queue) Dequeue(ctx context.Context) (*domain.Job, error) {
	for {
		res, err := q.client.BRPop(ctx, popInterval, q.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				continue
			}
			return nil, fmt.Errorf("brpop: %w", err)
		}
		// BRPOP returns [key, value].
		if len(res) != 2 {
			return nil, fmt.Errorf("brpop: unexpected reply length %d", len(res))
		}

		var d descriptor
		if err := json.Unmarshal([]byte(res[1]), &d); err != nil {
			return nil, fmt.Errorf("unmarshal descriptor: %w", err)
		}
		return fromDescriptor(d), nil
	}
}

func toDescriptor(job *domain.Job) descriptor {
	return descriptor{
		ID:     job.ID,
		URL:    job.URL,
		Start:  job.Start,
		End:    job.End,
		Cookie: job.CookiePath,
	}
}

func fromDescriptor(d descriptor) *domain.Job {
	return &domain.Job{
		ID:         d.ID,
		URL:        d.URL,
		Start:      d.Start,
		End:        d.End,
		CookiePath: d.Cookie,
		Status:     domain.JobStatusQueued,
	}
}

var _ port.JobQueue = (*Queue)(nil)
