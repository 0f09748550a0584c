package domain

import "fmt"

// RangePolicy bounds the duration of a requested clip. MinSeconds of zero
// disables the floor check.
type RangePolicy struct {
	MaxSeconds float64
	MinSeconds float64
}

// ClipRange is a validated start/end pair in canonical seconds.
type ClipRange struct {
	Start float64
	End   float64
}

// NewClipRange parses both time specs and validates the resulting span
// against the policy. It runs at admission, before any job is created,
// so invalid requests never reach the executor.
func NewClipRange(startSpec, endSpec string, policy RangePolicy) (ClipRange, error) {
	start, err := ParseTimeSpec(startSpec)
	if err != nil {
		return ClipRange{}, fmt.Errorf("start: %w", err)
	}
	end, err := ParseTimeSpec(endSpec)
	if err != nil {
		return ClipRange{}, fmt.Errorf("end: %w", err)
	}

	if end <= start {
		return ClipRange{}, ErrInvalidRange
	}

	span := end - start
	if policy.MaxSeconds > 0 && span > policy.MaxSeconds {
		return ClipRange{}, fmt.Errorf("%w: %.0fs > %.0fs", ErrClipTooLong, span, policy.MaxSeconds)
	}
	if policy.MinSeconds > 0 && span < policy.MinSeconds {
		return ClipRange{}, fmt.Errorf("%w: %.2fs < %.0fs", ErrClipTooShort, span, policy.MinSeconds)
	}

	return ClipRange{Start: start, End: end}, nil
}

// Duration returns the clip span in seconds.
func (r ClipRange) Duration() float64 {
	return r.End - r.Start
}
