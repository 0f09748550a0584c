package domain

// StreamVariant is one selectable encoding of a source asset, as reported
// by the extraction tool. Height is 0 when not applicable, Bitrate 0 when
// unknown.
type StreamVariant struct {
	URL      string
	HasVideo bool
	HasAudio bool
	Height   int
	Bitrate  float64
}

// Catalog is the result of one extraction call: the available variants plus
// an optional best-known combined location used as a last-resort fallback.
// Catalogs are ephemeral and never persisted.
type Catalog struct {
	Variants []StreamVariant
	BestURL  string
	Ext      string
}

// SelectionMode tags how the chosen streams must be remuxed.
type SelectionMode string

const (
	// SeparateStreams means video and audio come from two inputs that are
	// trimmed independently and mapped into one output.
	SeparateStreams SelectionMode = "separate-streams"
	// CombinedStream means a single input carries both components.
	CombinedStream SelectionMode = "combined-stream"
)

// Selection is the outcome of the format selection policy. AudioURL is only
// set in SeparateStreams mode.
type Selection struct {
	Mode     SelectionMode
	VideoURL string
	AudioURL string
}
