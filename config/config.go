package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DispatchInline = "inline"
	DispatchQueue  = "queue"

	StoreMemory = "memory"
	StoreRedis  = "redis"

	ModeStream   = "stream"
	ModeDownload = "download"
)

type Config struct {
	Port int `env:"PORT" envDefault:"8080"`

	// DownloadDir holds finished clips and two-phase intermediates;
	// CookieDir holds per-job credential files. Filenames are keyed on
	// job IDs, so jobs never collide.
	DownloadDir string `env:"DOWNLOAD_DIR" envDefault:"/tmp/downloads"`
	CookieDir   string `env:"COOKIE_DIR"   envDefault:"/tmp/cookies"`

	MaxClipSeconds  float64 `env:"MAX_CLIP_SECONDS"   envDefault:"600"`
	MinClipSeconds  float64 `env:"MIN_CLIP_SECONDS"   envDefault:"1"`
	MaxCookieSizeKB int     `env:"MAX_COOKIE_SIZE_KB" envDefault:"64"`

	// Dispatch selects inline fire-and-forget execution or the
	// queue-backed worker deployment.
	Dispatch string `env:"DISPATCH" envDefault:"inline"`

	// ClipMode selects trimming directly from stream URLs or the
	// two-phase download-then-cut variant.
	ClipMode string `env:"CLIP_MODE" envDefault:"stream"`

	// JobStore selects where job state lives. The queue deployment needs
	// redis so the server and workers share state.
	JobStore string        `env:"JOB_STORE" envDefault:"memory"`
	JobTTL   time.Duration `env:"JOB_TTL"   envDefault:"24h"`

	// JobTimeout bounds one job's wall-clock execution; zero disables it.
	JobTimeout time.Duration `env:"JOB_TIMEOUT" envDefault:"0"`

	Workers int `env:"WORKERS" envDefault:"2"`

	YtDlpBinary  string `env:"YTDLP_BINARY"  envDefault:"yt-dlp"`
	FfmpegBinary string `env:"FFMPEG_BINARY" envDefault:"ffmpeg"`

	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
}

// Load reads configuration from the environment, with an optional .env
// file for development convenience.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.sanitize()

	if cfg.Dispatch == DispatchQueue && cfg.JobStore != StoreRedis {
		return nil, fmt.Errorf("queue dispatch requires JOB_STORE=redis so workers share job state")
	}

	return cfg, nil
}

// sanitize clamps nonsense values back to usable defaults.
func (c *Config) sanitize() {
	if c.Port <= 0 || c.Port > 65535 {
		c.Port = 8080
	}
	if c.MaxClipSeconds <= 0 {
		c.MaxClipSeconds = 600
	}
	if c.MinClipSeconds < 0 {
		c.MinClipSeconds = 0
	}
	if c.MaxCookieSizeKB <= 0 {
		c.MaxCookieSizeKB = 64
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.JobTimeout < 0 {
		c.JobTimeout = 0
	}
	if c.Dispatch != DispatchQueue {
		c.Dispatch = DispatchInline
	}
	if c.ClipMode != ModeDownload {
		c.ClipMode = ModeStream
	}
	if c.JobStore != StoreRedis {
		c.JobStore = StoreMemory
	}
}
