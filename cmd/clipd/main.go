package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bnema/clipd/config"
	"github.com/bnema/clipd/internal/adapter/extractor/ytdlp"
	HTTPAdapter "github.com/bnema/clipd/internal/adapter/http"
	"github.com/bnema/clipd/internal/adapter/queue/redisqueue"
	ffmpegremux "github.com/bnema/clipd/internal/adapter/remux/ffmpeg"
	"github.com/bnema/clipd/internal/adapter/storage/memory"
	"github.com/bnema/clipd/internal/adapter/storage/redisstore"
	"github.com/bnema/clipd/internal/domain"
	"github.com/bnema/clipd/internal/infrastructure/logger"
	"github.com/bnema/clipd/internal/port"
	"github.com/bnema/clipd/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error.Printf("failed to load config: %v", err)
		os.Exit(1)
	}

	logger.Info.Printf("starting clipd on port %d, dispatch=%s, mode=%s", cfg.Port, cfg.Dispatch, cfg.ClipMode)

	for _, dir := range []string{cfg.DownloadDir, cfg.CookieDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error.Printf("failed to create %s: %v", dir, err)
			os.Exit(1)
		}
	}

	var redisClient redis.UniversalClient
	if cfg.JobStore == config.StoreRedis || cfg.Dispatch == config.DispatchQueue {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error.Printf("invalid REDIS_URL: %v", err)
			os.Exit(1)
		}
		redisClient = redis.NewClient(opt)
		defer func() { _ = redisClient.Close() }()
	}

	var store port.JobStore
	if cfg.JobStore == config.StoreRedis {
		store = redisstore.NewStore(redisClient, cfg.JobTTL)
	} else {
		store = memory.NewStore()
	}

	extractor := ytdlp.NewExtractor(cfg.YtDlpBinary)
	remuxer := ffmpegremux.NewRemuxer(cfg.FfmpegBinary)
	eventBus := service.NewEventBus()

	executor := service.NewExecutor(
		extractor,
		remuxer,
		store,
		eventBus,
		cfg.DownloadDir,
		service.ExecMode(cfg.ClipMode),
		cfg.JobTimeout,
	)

	var queue port.JobQueue
	if cfg.Dispatch == config.DispatchQueue {
		queue = redisqueue.NewQueue(redisClient)
	}

	policy := domain.RangePolicy{
		MaxSeconds: cfg.MaxClipSeconds,
		MinSeconds: cfg.MinClipSeconds,
	}
	clipSvc := service.NewClipService(store, queue, executor, policy, cfg.CookieDir)

	server := HTTPAdapter.NewServer(clipSvc, eventBus, cfg.MaxCookieSizeKB)

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info.Printf("received %s, shutting down", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error.Printf("http shutdown error: %v", err)
		}

		logger.Info.Printf("shutdown complete")
	}()

	logger.Info.Printf("server listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error.Printf("server failed: %v", err)
		os.Exit(1)
	}
}
