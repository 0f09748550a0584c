package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/tmp/downloads", cfg.DownloadDir)
	assert.Equal(t, "/tmp/cookies", cfg.CookieDir)
	assert.Equal(t, 600.0, cfg.MaxClipSeconds)
	assert.Equal(t, 1.0, cfg.MinClipSeconds)
	assert.Equal(t, DispatchInline, cfg.Dispatch)
	assert.Equal(t, ModeStream, cfg.ClipMode)
	assert.Equal(t, StoreMemory, cfg.JobStore)
	assert.Equal(t, 24*time.Hour, cfg.JobTTL)
	assert.Equal(t, time.Duration(0), cfg.JobTimeout)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "yt-dlp", cfg.YtDlpBinary)
	assert.Equal(t, "ffmpeg", cfg.FfmpegBinary)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_CLIP_SECONDS", "180")
	t.Setenv("DISPATCH", "queue")
	t.Setenv("JOB_STORE", "redis")
	t.Setenv("CLIP_MODE", "download")
	t.Setenv("JOB_TIMEOUT", "10m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 180.0, cfg.MaxClipSeconds)
	assert.Equal(t, DispatchQueue, cfg.Dispatch)
	assert.Equal(t, StoreRedis, cfg.JobStore)
	assert.Equal(t, ModeDownload, cfg.ClipMode)
	assert.Equal(t, 10*time.Minute, cfg.JobTimeout)
}

func TestLoad_ClampsNonsenseValues(t *testing.T) {
	t.Setenv("PORT", "-1")
	t.Setenv("MAX_CLIP_SECONDS", "-5")
	t.Setenv("WORKERS", "0")
	t.Setenv("DISPATCH", "sideways")
	t.Setenv("CLIP_MODE", "teleport")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 600.0, cfg.MaxClipSeconds)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, DispatchInline, cfg.Dispatch)
	assert.Equal(t, ModeStream, cfg.ClipMode)
}

func TestLoad_QueueDispatchRequiresRedisStore(t *testing.T) {
	t.Setenv("DISPATCH", "queue")
	t.Setenv("JOB_STORE", "memory")

	_, err := Load()
	assert.Error(t, err)
}
