package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimeSpec converts a human-entered time string into elapsed seconds.
// A digit-only string is read as whole seconds. Otherwise the string is
// split on ":" and read as M:S or H:M:S; a single non-digit token is read
// as a bare fractional seconds value.
func ParseTimeSpec(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidTimeFormat)
	}

	if isDigits(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		return v, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q has too many parts", ErrInvalidTimeFormat, s)
	}

	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		values[i] = v
	}

	switch len(values) {
	case 3:
		return values[0]*3600 + values[1]*60 + values[2], nil
	case 2:
		return values[0]*60 + values[1], nil
	default:
		return values[0], nil
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
