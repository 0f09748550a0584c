package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/clipd/internal/domain"
)

func TestStoreKeying(t *testing.T) {
	s := NewStore(nil, time.Hour)
	assert.Equal(t, "clipd:job:abc-123", s.key("abc-123"))

	custom := NewStoreWithPrefix(nil, "jobs:", time.Hour)
	assert.Equal(t, "jobs:abc-123", custom.key("abc-123"))
}

func TestStoreTTLCarried(t *testing.T) {
	s := NewStore(nil, 24*time.Hour)
	assert.Equal(t, 24*time.Hour, s.ttl)

	// Zero TTL means no expiry; Redis keeps entries until evicted.
	s = NewStore(nil, 0)
	assert.Equal(t, time.Duration(0), s.ttl)
}

func TestStoreRejectsEmptyIdentifiers(t *testing.T) {
	s := NewStore(nil, time.Hour)

	// Both paths return before any client call, so a nil client is safe.
	assert.Error(t, s.Save(context.Background(), &domain.Job{}))

	_, err := s.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
