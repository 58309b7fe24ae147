package stream

// StreamOption configures Encoder/Decoder behavior.
type StreamOption func(*streamOpts)

type streamOpts struct {
	compact bool // no space after ',' and ':'
	markers bool // write --- before every document
}

// WithCompact drops the space after commas and colons in flow output,
// producing the densest form that still re-parses.
func WithCompact() StreamOption {
	return func(opts *streamOpts) {
		opts.compact = true
	}
}

// WithDocumentMarkers writes an explicit --- before every document,
// including the first.
func WithDocumentMarkers() StreamOption {
	return func(opts *streamOpts) {
		opts.markers = true
	}
}
