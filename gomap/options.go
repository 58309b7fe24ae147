package gomap

import (
	"github.com/signadot/yaml-format/go-yaml/encode"
	"github.com/signadot/yaml-format/go-yaml/parse"
)

// MapOption controls conversion from Go values to IR.
type MapOption interface {
	applyMap(*mapConfig)
}

// UnmapOption controls conversion from IR to Go values.
type UnmapOption interface {
	applyUnmap(*unmapConfig)
}

type mapConfig struct {
	EncodeOptions []encode.EncodeOption
}

type unmapConfig struct {
	ParseOptions    []parse.ParseOption
	DisallowUnknown bool
}

type encodeOptsOption []encode.EncodeOption

func (o encodeOptsOption) applyMap(cfg *mapConfig) {
	cfg.EncodeOptions = append(cfg.EncodeOptions, o...)
}

// WithEncodeOptions passes encoder options through when the resulting
// node is rendered to text.
func WithEncodeOptions(opts ...encode.EncodeOption) MapOption {
	return encodeOptsOption(opts)
}

type parseOptsOption []parse.ParseOption

func (o parseOptsOption) applyUnmap(cfg *unmapConfig) {
	cfg.ParseOptions = append(cfg.ParseOptions, o...)
}

// WithParseOptions passes parser options through when the input is
// parsed from text.
func WithParseOptions(opts ...parse.ParseOption) UnmapOption {
	return parseOptsOption(opts)
}

type disallowUnknownOption struct{}

func (disallowUnknownOption) applyUnmap(cfg *unmapConfig) {
	cfg.DisallowUnknown = true
}

// DisallowUnknownFields makes decoding fail on mapping keys that have
// no struct field, instead of skipping them.
func DisallowUnknownFields() UnmapOption {
	return disallowUnknownOption{}
}

// ToEncodeOptions extracts encoder options from MapOptions.
func ToEncodeOptions(opts ...MapOption) []encode.EncodeOption {
	var cfg mapConfig
	for _, opt := range opts {
		opt.applyMap(&cfg)
	}
	return cfg.EncodeOptions
}

// ToParseOptions extracts parser options from UnmapOptions.
func ToParseOptions(opts ...UnmapOption) []parse.ParseOption {
	var cfg unmapConfig
	for _, opt := range opts {
		opt.applyUnmap(&cfg)
	}
	return cfg.ParseOptions
}
