package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/bnema/clipd/internal/domain"
	"github.com/bnema/clipd/internal/infrastructure/logger"
	"github.com/bnema/clipd/internal/port"
)

// ExecMode selects how the executor obtains the media to trim.
type ExecMode string

const (
	// ModeStream trims directly against the remote stream URLs.
	ModeStream ExecMode = "stream"
	// ModeDownload fetches the full media first, then trims the local file.
	// The intermediate download is removed after the job terminates.
	ModeDownload ExecMode = "download"
)

const outputExt = "mp4"

// Executor runs one job through resolve, select, remux and the terminal
// store update. One job failure never affects another in-flight job.
type Executor struct {
	extractor   port.StreamExtractor
	remuxer     port.Remuxer
	store       port.JobStore
	events      EventPublisher
	downloadDir string
	mode        ExecMode
	timeout     time.Duration

	group singleflight.Group
}

func NewExecutor(
	extractor port.StreamExtractor,
	remuxer port.Remuxer,
	store port.JobStore,
	events EventPublisher,
	downloadDir string,
	mode ExecMode,
	timeout time.Duration,
) *Executor {
	if mode != ModeDownload {
		mode = ModeStream
	}
	return &Executor{
		extractor:   extractor,
		remuxer:     remuxer,
		store:       store,
		events:      events,
		downloadDir: downloadDir,
		mode:        mode,
		timeout:     timeout,
	}
}

// OutputPath returns where the finished clip for a job is written.
func (e *Executor) OutputPath(jobID string) string {
	return filepath.Join(e.downloadDir, jobID+"."+outputExt)
}

// Run executes the job to a terminal state. The single-flight group keyed
// on the job ID guarantees at most one executor works a given job even if
// the same descriptor is dispatched twice.
func (e *Executor) Run(ctx context.Context, job *domain.Job) {
	_, _, _ = e.group.Do(job.ID, func() (any, error) {
		e.run(ctx, job)
		return nil, nil
	})
}

func (e *Executor) run(ctx context.Context, job *domain.Job) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	logger.Info.Printf("job %s: start url=%s clip=%.2f->%.2f", job.ID, logger.SanitizeForLog(job.URL), job.Start, job.End)

	job.MarkProcessing()
	e.saveAndPublish(ctx, job)

	var intermediate string
	defer func() {
		e.cleanup(job, intermediate)
	}()

	catalog, err := e.extractor.Extract(ctx, job.URL, job.CookiePath)
	if err != nil {
		e.fail(ctx, job, err)
		return
	}

	outputPath := e.OutputPath(job.ID)

	var sel *domain.Selection
	switch e.mode {
	case ModeDownload:
		intermediate = filepath.Join(e.downloadDir, job.ID+".source."+outputExt)
		if err := e.extractor.Download(ctx, job.URL, job.CookiePath, intermediate); err != nil {
			e.fail(ctx, job, err)
			return
		}
		sel = &domain.Selection{Mode: domain.CombinedStream, VideoURL: intermediate}
	default:
		sel, err = SelectStreams(catalog)
		if err != nil {
			e.fail(ctx, job, err)
			return
		}
	}

	logger.Info.Printf("job %s: remuxing (%s)", job.ID, sel.Mode)
	if err := e.remuxer.Remux(ctx, sel, job.Start, job.End, outputPath); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			e.fail(ctx, job, fmt.Errorf("timeout after %s", e.timeout))
			return
		}
		e.fail(ctx, job, err)
		return
	}

	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		e.fail(ctx, job, domain.ErrArtifactMissing)
		return
	}

	job.MarkDone(outputExt)
	e.saveAndPublish(context.WithoutCancel(ctx), job)
	logger.Info.Printf("job %s: done (%.2f MB)", job.ID, float64(info.Size())/1024/1024)
}

func (e *Executor) fail(ctx context.Context, job *domain.Job, cause error) {
	job.MarkFailed(cause.Error())
	e.saveAndPublish(context.WithoutCancel(ctx), job)
	logger.Error.Printf("job %s: failed: %s", job.ID, logger.SanitizeForLog(cause.Error()))
}

func (e *Executor) saveAndPublish(ctx context.Context, job *domain.Job) {
	if err := e.store.Save(ctx, job); err != nil {
		logger.Error.Printf("job %s: store update failed: %v", job.ID, err)
	}
	if e.events != nil {
		e.events.Publish(job.ID, Event{Status: string(job.Status), Message: job.ErrorMessage})
	}
}

// cleanup removes the per-job credential artifact and, in download mode,
// the full intermediate download. Best-effort on every exit path; failures
// are logged and never escalate into the job's own state.
func (e *Executor) cleanup(job *domain.Job, intermediate string) {
	if job.CookiePath != "" {
		if err := os.Remove(job.CookiePath); err != nil && !os.IsNotExist(err) {
			logger.Warn.Printf("job %s: cookie cleanup failed: %v", job.ID, err)
		}
	}
	if intermediate != "" {
		if err := os.Remove(intermediate); err != nil && !os.IsNotExist(err) {
			logger.Warn.Printf("job %s: intermediate cleanup failed: %v", job.ID, err)
		}
	}
}
