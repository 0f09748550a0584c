package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/bnema/clipd/internal/domain"
	"github.com/bnema/clipd/internal/infrastructure/logger"
	"github.com/bnema/clipd/internal/port"
)

const (
	defaultBinary  = "yt-dlp"
	maxRetries     = 5
	initialBackoff = 500 * time.Millisecond
)

// Extractor drives the yt-dlp binary to resolve stream catalogs and, in the
// two-phase mode, to download full media.
type Extractor struct {
	binary     string
	maxRetries uint64
	backoff    time.Duration
}

func NewExtractor(binary string) *Extractor {
	if binary == "" {
		binary = defaultBinary
	}
	return &Extractor{
		binary:     binary,
		maxRetries: maxRetries,
		backoff:    initialBackoff,
	}
}

// Extract dumps the source's info JSON and converts it into a catalog.
// Transient tool failures are retried with increasing backoff; exhaustion
// surfaces domain.ErrExtractionFailed wrapping the last stderr.
func (e *Extractor) Extract(ctx context.Context, sourceURL, cookiePath string) (*domain.Catalog, error) {
	args := []string{"-J", "--no-warnings", "--no-playlist"}
	if cookiePath != "" {
		args = append(args, "--cookies", cookiePath)
	}
	args = append(args, sourceURL)

	var out []byte
	backoff := retry.WithMaxRetries(e.maxRetries, retry.NewFibonacci(e.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		cmd := exec.CommandContext(ctx, e.binary, args...)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			logger.Warn.Printf("yt-dlp extract retryable failure: %s", logger.SanitizeForLog(firstLine(stderr.String())))
			return retry.RetryableError(fmt.Errorf("%v: %s", err, strings.TrimSpace(stderr.String())))
		}
		out = stdout.Bytes()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	catalog, err := parseInfoJSON(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	return catalog, nil
}

// Download fetches the best muxed media for the source to outputPath.
func (e *Extractor) Download(ctx context.Context, sourceURL, cookiePath, outputPath string) error {
	args := []string{
		"-f", "bestvideo+bestaudio/b",
		"--merge-output-format", "mp4",
		"--no-playlist",
		"--no-warnings",
		"-o", outputPath,
	}
	if cookiePath != "" {
		args = append(args, "--cookies", cookiePath)
	}
	args = append(args, sourceURL)

	cmd := exec.CommandContext(ctx, e.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: download: %v: %s", domain.ErrExtractionFailed, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// infoDict is the subset of yt-dlp's -J output the resolver needs. A null
// height or tbr leaves the zero value, matching "unknown".
type infoDict struct {
	URL     string       `json:"url"`
	Ext     string       `json:"ext"`
	Formats []formatDict `json:"formats"`
}

type formatDict struct {
	URL    string  `json:"url"`
	Vcodec string  `json:"vcodec"`
	Acodec string  `json:"acodec"`
	Height int     `json:"height"`
	Tbr    float64 `json:"tbr"`
}

func parseInfoJSON(data []byte) (*domain.Catalog, error) {
	var info infoDict
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parse info json: %w", err)
	}

	catalog := &domain.Catalog{
		BestURL: info.URL,
		Ext:     info.Ext,
	}

	for _, f := range info.Formats {
		if f.URL == "" {
			continue
		}
		catalog.Variants = append(catalog.Variants, domain.StreamVariant{
			URL:      f.URL,
			HasVideo: codecPresent(f.Vcodec),
			HasAudio: codecPresent(f.Acodec),
			Height:   f.Height,
			Bitrate:  f.Tbr,
		})
	}

	if len(catalog.Variants) == 0 && catalog.BestURL == "" {
		return nil, fmt.Errorf("no usable formats in extractor output")
	}
	return catalog, nil
}

// codecPresent interprets yt-dlp codec fields: "none" (and empty) mean the
// component is absent from the stream.
func codecPresent(codec string) bool {
	return codec != "" && codec != "none"
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

var _ port.StreamExtractor = (*Extractor)(nil)
