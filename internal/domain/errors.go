package domain

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidRange      = errors.New("end must be greater than start")
	ErrClipTooLong       = errors.New("clip duration exceeds maximum")
	ErrClipTooShort      = errors.New("clip duration below minimum")
	ErrExtractionFailed  = errors.New("stream extraction failed")
	ErrNoPlayableFormat  = errors.New("no playable format found")
	ErrRemuxFailed       = errors.New("remux failed")
	ErrArtifactMissing   = errors.New("output artifact missing after remux")
)
