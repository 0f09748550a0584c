package redisstore

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

const defaultPrefix = "clipd:job:"

// Store is a Redis-backed job store. Retention is the key TTL: a ttl of
// zero keeps entries until Redis evicts them.
type Store struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewStore(client redis.UniversalClient, ttl time.Duration) *Store {
	return &Store{
		client: client,
		prefix: defaultPrefix,
		ttl:    ttl,
	}
}

func NewStoreWithPrefix(client redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	return &Store{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *Store) Save(ctx context.Context, job *domain.Job) error {
	if job.ID == "" {
		return errors.New("job ID cannot be empty")
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	return s.client.Set(ctx, s.key(job.ID), data, s.ttl).Err()
}

func (s *Store) Get(ctx context.Context, id string) (*domain.Job, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}

	data, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var job domain.Job
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return nil, fmt.Errorf("unmarshal job: %w", err)
	}
	return &job, nil
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

var _ port.JobStore = (*Store)(nil)
