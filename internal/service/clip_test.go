package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/clipd/internal/adapter/storage/memory"
	"github.com/bnema/clipd/internal/domain"
)

type fakeQueue struct {
	enqueued []*domain.Job
}

func (f *fakeQueue) Enqueue(_ context.Context, job *domain.Job) error {
	f.enqueued = append(f.enqueued, job)
	return nil
}

func (f *fakeQueue) Dequeue(_ context.Context) (*domain.Job, error) {
	if len(f.enqueued) == 0 {
		return nil, context.Canceled
	}
	job := f.enqueued[0]
	f.enqueued = f.enqueued[1:]
	return job, nil
}

func newTestClipService(t *testing.T, queueBacked bool) (*ClipService, *memory.Store, *fakeQueue) {
	t.Helper()

	store := memory.NewStore()
	extractor := &fakeExtractor{catalog: combinedCatalog()}
	remuxer := &fakeRemuxer{writeOutput: true}
	executor := NewExecutor(extractor, remuxer, store, nil, t.TempDir(), ModeStream, 0)

	var queue *fakeQueue
	svc := NewClipService(store, nil, executor, domain.RangePolicy{MaxSeconds: 600, MinSeconds: 1}, t.TempDir())
	if queueBacked {
		queue = &fakeQueue{}
		svc = NewClipService(store, queue, executor, domain.RangePolicy{MaxSeconds: 600, MinSeconds: 1}, t.TempDir())
	}
	return svc, store, queue
}

func TestClipService_Submit_RejectsBeforeJobCreation(t *testing.T) {
	svc, _, _ := newTestClipService(t, false)

	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{name: "end before start", start: "40", end: "10", wantErr: domain.ErrInvalidRange},
		{name: "span too long", start: "0", end: "700", wantErr: domain.ErrClipTooLong},
		{name: "span too short", start: "0", end: "0.5", wantErr: domain.ErrClipTooShort},
		{name: "bad time format", start: "bad:format:x", end: "40", wantErr: domain.ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := svc.Submit(context.Background(), "https://example.com/v", tt.start, tt.end, nil)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, job)
		})
	}
}

func TestClipService_Submit_InlineRunsToCompletion(t *testing.T) {
	svc, store, _ := newTestClipService(t, false)

	job, err := svc.Submit(context.Background(), "https://example.com/v", "10", "40", nil)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.NotEmpty(t, job.ID)

	// Admission returns immediately; the executor finishes in the background.
	require.Eventually(t, func() bool {
		stored, err := store.Get(context.Background(), job.ID)
		return err == nil && stored.Status == domain.JobStatusDone
	}, 2*time.Second, 10*time.Millisecond)
}

func TestClipService_Submit_QueueDispatch(t *testing.T) {
	svc, store, queue := newTestClipService(t, true)

	job, err := svc.Submit(context.Background(), "https://example.com/v", "10", "40", nil)
	require.NoError(t, err)

	// Queue dispatch pushes a descriptor instead of running inline.
	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, job.ID, queue.enqueued[0].ID)

	stored, err := store.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusQueued, stored.Status)
}

func TestClipService_Submit_PersistsCookie(t *testing.T) {
	store := memory.NewStore()
	executor := NewExecutor(&fakeExtractor{catalog: combinedCatalog()}, &fakeRemuxer{writeOutput: true}, store, nil, t.TempDir(), ModeStream, 0)
	cookieDir := t.TempDir()
	queue := &fakeQueue{}
	svc := NewClipService(store, queue, executor, domain.RangePolicy{MaxSeconds: 600}, cookieDir)

	job, err := svc.Submit(context.Background(), "https://example.com/v", "10", "40", bytes.NewReader([]byte("session=abc")))
	require.NoError(t, err)

	wantPath := filepath.Join(cookieDir, job.ID+".txt")
	assert.Equal(t, wantPath, job.CookiePath)

	data, err := os.ReadFile(wantPath)
	require.NoError(t, err)
	assert.Equal(t, "session=abc", string(data))

	info, err := os.Stat(wantPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestClipService_Status(t *testing.T) {
	svc, store, _ := newTestClipService(t, true)

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Status(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("terminal status is stable across queries", func(t *testing.T) {
		job := domain.NewJob("https://example.com/v", domain.ClipRange{Start: 0, End: 10})
		job.MarkProcessing()
		job.MarkDone("mp4")
		require.NoError(t, store.Save(context.Background(), job))

		first, err := svc.Status(context.Background(), job.ID)
		require.NoError(t, err)
		second, err := svc.Status(context.Background(), job.ID)
		require.NoError(t, err)

		assert.Equal(t, first.Status, second.Status)
		assert.Equal(t, first.OutputExt, second.OutputExt)
		assert.Equal(t, domain.JobStatusDone, first.Status)
	})
}
