// Package piecetable implements the authoritative text store for quill.
//
// Content is represented as an ordered list of pieces referencing two
// backing buffers: an immutable original snapshot and an append-only add
// buffer. Offsets and lengths are 0-based and counted in runes.
package piecetable
