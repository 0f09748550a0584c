package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bnema/clipd/internal/domain"
	"github.com/bnema/clipd/internal/infrastructure/logger"
	"github.com/bnema/clipd/internal/port"
)

// ClipService validates and admits clip requests. Admission never blocks on
// extraction or remuxing: the job is handed to a background executor or
// pushed onto the work queue and the ID is returned immediately.
type ClipService struct {
	store     port.JobStore
	queue     port.JobQueue // nil for inline dispatch
	executor  *Executor
	policy    domain.RangePolicy
	cookieDir string
}

func NewClipService(
	store port.JobStore,
	queue port.JobQueue,
	executor *Executor,
	policy domain.RangePolicy,
	cookieDir string,
) *ClipService {
	return &ClipService{
		store:     store,
		queue:     queue,
		executor:  executor,
		policy:    policy,
		cookieDir: cookieDir,
	}
}

// Submit validates the time range synchronously, persists the optional
// credential blob to a per-job file and dispatches the job. Range and
// format errors reject the request before any job record exists.
func (s *ClipService) Submit(ctx context.Context, sourceURL, startSpec, endSpec string, cookie io.Reader) (*domain.Job, error) {
	clipRange, err := domain.NewClipRange(startSpec, endSpec, s.policy)
	if err != nil {
		return nil, err
	}
	if sourceURL == "" {
		return nil, fmt.Errorf("%w: missing source url", domain.ErrExtractionFailed)
	}

	job := domain.NewJob(sourceURL, clipRange)

	if cookie != nil {
		cookiePath, err := s.persistCookie(job.ID, cookie)
		if err != nil {
			return nil, err
		}
		job.CookiePath = cookiePath
	}

	if err := s.store.Save(ctx, job); err != nil {
		s.removeCookie(job)
		return nil, fmt.Errorf("save job: %w", err)
	}

	if s.queue != nil {
		if err := s.queue.Enqueue(ctx, job); err != nil {
			s.removeCookie(job)
			return nil, fmt.Errorf("enqueue job: %w", err)
		}
	} else {
		go s.executor.Run(context.Background(), job)
	}

	logger.Info.Printf("job %s: admitted url=%s", job.ID, logger.SanitizeForLog(sourceURL))
	return job, nil
}

// Status looks the job up by ID. Unknown IDs surface domain.ErrNotFound;
// the HTTP layer deliberately reports those as still processing.
func (s *ClipService) Status(ctx context.Context, id string) (*domain.Job, error) {
	return s.store.Get(ctx, id)
}

// ArtifactPath resolves an artifact name to its on-disk location.
func (s *ClipService) ArtifactPath(name string) string {
	return filepath.Join(s.executor.downloadDir, name)
}

func (s *ClipService) persistCookie(jobID string, cookie io.Reader) (string, error) {
	if err := os.MkdirAll(s.cookieDir, 0o755); err != nil {
		return "", fmt.Errorf("create cookie directory: %w", err)
	}

	path := filepath.Join(s.cookieDir, jobID+".txt")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("create cookie file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if _, err := io.Copy(f, cookie); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write cookie file: %w", err)
	}
	return path, nil
}

func (s *ClipService) removeCookie(job *domain.Job) {
	if job.CookiePath == "" {
		return
	}
	if err := os.Remove(job.CookiePath); err != nil && !os.IsNotExist(err) {
		logger.Warn.Printf("job %s: cookie cleanup failed: %v", job.ID, err)
	}
}
