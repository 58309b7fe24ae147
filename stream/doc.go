// Package stream provides structural event-based encoding and
// decoding.
//
// The Decoder turns scanned tokens into a flat event stream: document
// boundaries, begin/end of mappings and sequences, scalars, and
// aliases. Block nesting is resolved here from token columns, so
// consumers never see indentation. The Encoder is the reverse surface:
// explicit Begin/End and Write methods producing flow-style output,
// with event-order validation through a State stack.
//
// Decoder and Encoder are symmetric: replaying a decoded event stream
// through Encoder.WriteEvent yields an equivalent document in flow
// form. The tree-building layer in package parse and the pretty
// printer in package encode sit on top of this one.
package stream
