package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bnema/clipd/config"
	"github.com/bnema/clipd/internal/adapter/extractor/ytdlp"
	"github.com/bnema/clipd/internal/adapter/queue/redisqueue"
	ffmpegremux "github.com/bnema/clipd/internal/adapter/remux/ffmpeg"
	"github.com/bnema/clipd/internal/adapter/storage/redisstore"
	"github.com/bnema/clipd/internal/infrastructure/logger"
	"github.com/bnema/clipd/internal/service"
)

// clipd-worker is the consumer half of the queue-backed deployment: it
// block-pops job descriptors and runs each through the executor. Workers
// share job state with the server through the Redis job store.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error.Printf("failed to load config: %v", err)
		os.Exit(1)
	}

	for _, dir := range []string{cfg.DownloadDir, cfg.CookieDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error.Printf("failed to create %s: %v", dir, err)
			os.Exit(1)
		}
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error.Printf("invalid REDIS_URL: %v", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(opt)
	defer func() { _ = redisClient.Close() }()

	store := redisstore.NewStore(redisClient, cfg.JobTTL)
	queue := redisqueue.NewQueue(redisClient)

	executor := service.NewExecutor(
		ytdlp.NewExtractor(cfg.YtDlpBinary),
		ffmpegremux.NewRemuxer(cfg.FfmpegBinary),
		store,
		nil,
		cfg.DownloadDir,
		service.ExecMode(cfg.ClipMode),
		cfg.JobTimeout,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info.Printf("starting %d workers, queue dispatch via redis", cfg.Workers)

	var wg sync.WaitGroup
	for i := range cfg.Workers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(ctx, id, queue, executor)
		}(i)
	}

	wg.Wait()
	logger.Info.Printf("all workers stopped")
}

func runWorker(ctx context.Context, id int, queue *redisqueue.Queue, executor *service.Executor) {
	for {
		job, err := queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				logger.Info.Printf("worker %d shutting down", id)
				return
			}
			logger.Error.Printf("worker %d: dequeue failed: %v", id, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
			}
			continue
		}

		logger.Info.Printf("worker %d: processing job %s", id, job.ID)
		// Jobs in flight finish even when shutdown begins.
		executor.Run(context.WithoutCancel(ctx), job)
	}
}
