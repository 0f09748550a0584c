package port

import (
	"context"

	"github.com/bnema/clipd/internal/domain"
)

// StreamExtractor is the sole gateway to the external extraction tool.
type StreamExtractor interface {
	// Extract queries the source once (with bounded retries on transient
	// failure) and returns the available stream variants.
	Extract(ctx context.Context, sourceURL, cookiePath string) (*domain.Catalog, error)

	// Download fetches the full best-quality media to outputPath. Used by
	// the two-phase download-then-cut execution mode.
	Download(ctx context.Context, sourceURL, cookiePath, outputPath string) error
}
