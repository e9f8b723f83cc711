// Package editor provides the cursor, word-wrap display, and text buffer
// facade over the piecetable store.
//
// The package reconciles two coordinate systems: linear rune offsets into
// logical content, and (row, col) positions inside word-wrapped display
// lines. Every mutation reapplies the same sequence: edit the store,
// rebuild the display lines, recompute the cursor's real position against
// the new display.
package editor
