package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/bnema/clipd/internal/domain"
	"github.com/bnema/clipd/internal/port"
)

const (
	defaultBinary = "ffmpeg"
	// maxStderrBytes bounds the diagnostic text recorded on failure.
	maxStderrBytes = 2048
)

// Remuxer trims selected streams with ffmpeg stream-copy. It never
// re-encodes, so cut accuracy is bounded by keyframe placement.
type Remuxer struct {
	binary string
}

func NewRemuxer(binary string) *Remuxer {
	if binary == "" {
		binary = defaultBinary
	}
	return &Remuxer{binary: binary}
}

// BuildArgs constructs the ffmpeg invocation for a selection. In the
// separate-streams shape, video and audio inputs are trimmed independently
// and mapped into one output; -avoid_negative_ts corrects the timestamp
// artifact that independent trimming introduces.
func BuildArgs(sel *domain.Selection, start, end float64, outputPath string) []string {
	startArg := formatSeconds(start)
	endArg := formatSeconds(end)

	if sel.Mode == domain.SeparateStreams {
		return []string{
			"-y",
			"-ss", startArg, "-to", endArg, "-i", sel.VideoURL,
			"-ss", startArg, "-to", endArg, "-i", sel.AudioURL,
			"-map", "0:v", "-map", "1:a",
			"-c", "copy",
			"-avoid_negative_ts", "1",
			outputPath,
		}
	}

	return []string{
		"-y",
		"-ss", startArg, "-to", endArg, "-i", sel.VideoURL,
		"-c", "copy",
		"-avoid_negative_ts", "1",
		outputPath,
	}
}

// Remux runs ffmpeg and captures stderr for diagnostics. A non-zero exit
// surfaces domain.ErrRemuxFailed wrapping the bounded stderr tail.
func (r *Remuxer) Remux(ctx context.Context, sel *domain.Selection, start, end float64, outputPath string) error {
	args := BuildArgs(sel, start, end, outputPath)

	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v: %s", domain.ErrRemuxFailed, err, truncate(stderr.String(), maxStderrBytes))
	}
	return nil
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// truncate keeps the tail of s, where ffmpeg prints the actual error.
func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max:]
}

var _ port.Remuxer = (*Remuxer)(nil)
