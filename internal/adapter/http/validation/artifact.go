package validation

import (
	"errors"
	"strings"
)

// maxArtifactNameLength bounds artifact names well past the UUID-plus-ext
// shape the executor produces.
const maxArtifactNameLength = 128

var (
	ErrEmptyName   = errors.New("artifact name is empty")
	ErrInvalidName = errors.New("invalid artifact name")
)

// ArtifactName validates a client-supplied artifact name before it is
// joined to the download directory. Artifacts are named <job-id>.<ext> by
// the executor, so anything outside that character set is rejected rather
// than sanitized.
func ArtifactName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > maxArtifactNameLength {
		return ErrInvalidName
	}
	if strings.HasPrefix(name, ".") || strings.Contains(name, "..") {
		return ErrInvalidName
	}
	for _, r := range name {
		if !validArtifactRune(r) {
			return ErrInvalidName
		}
	}
	return nil
}

func validArtifactRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_' || r == '.':
		return true
	}
	return false
}
