package port

import (
	"context"

	"github.com/bnema/clipd/internal/domain"
)

// Remuxer losslessly trims the selected stream(s) to [start,end] and writes
// a single output file. Implementations must stream-copy, never re-encode.
type Remuxer interface {
	Remux(ctx context.Context, sel *domain.Selection, start, end float64, outputPath string) error
}
