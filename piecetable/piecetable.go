package piecetable

import (
	"github.com/charmbracelet/log"
)

var logger = log.WithPrefix("piecetable")

type source uint8

const (
	sourceOriginal source = iota
	sourceAdded
)

// piece references one contiguous run of the current logical content.
// Pieces are never mutated in place; edits rebuild the piece list.
type piece struct {
	src      source
	start    int
	length   int
	styleKey string
}

// Run is one styled run of logical content, in document order.
type Run struct {
	Text     string
	StyleKey string
}

// PieceTable holds the document text. The zero value is not usable; use
// New. One PieceTable is created per editable surface and lives for that
// surface's lifetime; Empty resets it to a blank document in place.
type PieceTable struct {
	original []rune
	added    []rune
	pieces   []piece

	cache insertCache

	undoStack []action
	redoStack []action
}

// New returns a PieceTable whose initial content is text. The initial
// content is held in the immutable original buffer; everything inserted
// later goes to the add buffer.
func New(text string) *PieceTable {
	t := &PieceTable{original: []rune(text)}
	if len(t.original) > 0 {
		t.pieces = []piece{{src: sourceOriginal, start: 0, length: len(t.original)}}
	}
	return t
}

// CommittedLen returns the length in runes of the committed content,
// excluding any pending insert cache.
func (t *PieceTable) CommittedLen() int {
	n := 0
	for _, p := range t.pieces {
		n += p.length
	}
	return n
}

// Len returns the length in runes of the logical content, including any
// pending insert cache.
func (t *PieceTable) Len() int {
	return t.CommittedLen() + len(t.cache.pending)
}

// IsEmpty reports whether the logical content (cache included) is empty.
func (t *PieceTable) IsEmpty() bool {
	return len(t.pieces) == 0 && len(t.cache.pending) == 0
}

// Empty resets the table to a blank document. The undo and redo stacks
// and any pending insert cache are discarded.
func (t *PieceTable) Empty() {
	t.original = nil
	t.added = t.added[:0]
	t.pieces = nil
	t.cache = insertCache{}
	t.undoStack = nil
	t.redoStack = nil
}

// Content returns the logical content with any pending insert cache
// spliced in at its target offset, so callers never observe a different
// document in-cache vs committed.
func (t *PieceTable) Content() string {
	return string(t.ContentRunes())
}

// ContentRunes is Content as a rune slice. The returned slice is freshly
// allocated.
func (t *PieceTable) ContentRunes() []rune {
	committed := t.committedRunes()
	if len(t.cache.pending) == 0 {
		return committed
	}
	at := t.cache.offset
	if at > len(committed) {
		at = len(committed)
	}
	out := make([]rune, 0, len(committed)+len(t.cache.pending))
	out = append(out, committed[:at]...)
	out = append(out, t.cache.pending...)
	out = append(out, committed[at:]...)
	return out
}

// String returns the full logical content, cache included.
func (t *PieceTable) String() string {
	return t.Content()
}

// Runs returns the logical content as styled runs in document order.
// Adjacent runs with the same style key are merged; a pending insert
// cache is spliced in at its target offset.
func (t *PieceTable) Runs() []Run {
	type rawRun struct {
		text []rune
		key  string
	}
	raw := make([]rawRun, 0, len(t.pieces)+1)
	for _, p := range t.pieces {
		raw = append(raw, rawRun{text: t.pieceRunes(p), key: p.styleKey})
	}

	if len(t.cache.pending) > 0 {
		spliced := make([]rawRun, 0, len(raw)+2)
		remaining := t.cache.offset
		inserted := false
		for _, r := range raw {
			if !inserted && remaining <= len(r.text) {
				if remaining > 0 {
					spliced = append(spliced, rawRun{text: r.text[:remaining], key: r.key})
				}
				spliced = append(spliced, rawRun{text: t.cache.pending, key: t.cache.styleKey})
				if remaining < len(r.text) {
					spliced = append(spliced, rawRun{text: r.text[remaining:], key: r.key})
				}
				inserted = true
			} else {
				spliced = append(spliced, r)
			}
			if !inserted {
				remaining -= len(r.text)
			}
		}
		if !inserted {
			spliced = append(spliced, rawRun{text: t.cache.pending, key: t.cache.styleKey})
		}
		raw = spliced
	}

	runs := make([]Run, 0, len(raw))
	for _, r := range raw {
		if len(r.text) == 0 {
			continue
		}
		if n := len(runs); n > 0 && runs[n-1].StyleKey == r.key {
			runs[n-1].Text += string(r.text)
			continue
		}
		runs = append(runs, Run{Text: string(r.text), StyleKey: r.key})
	}
	return runs
}

// Insert commits text at offset as a single undoable edit. Any pending
// insert cache is committed first so offsets address committed content.
func (t *PieceTable) Insert(offset int, text, styleKey string) {
	t.CommitInsertCache()
	if text == "" {
		return
	}
	offset = t.clampOffset("insert", offset, t.CommittedLen())
	t.recordInsert(offset, []rune(text), styleKey, false)
}

// Delete removes length runes starting at offset as a single undoable
// edit. A pending insert cache is committed first so the deletion sees
// committed, addressable offsets.
func (t *PieceTable) Delete(offset, length int) {
	t.CommitInsertCache()
	max := t.CommittedLen()
	offset = t.clampOffset("delete", offset, max)
	if offset+length > max {
		logger.Warn("delete length out of range; clamping", "offset", offset, "length", length, "content", max)
		length = max - offset
	}
	if length <= 0 {
		return
	}

	committed := t.committedRunes()
	content := make([]rune, length)
	copy(content, committed[offset:offset+length])
	// resolved before the piece list is rebuilt, so the undo re-inserts
	// the content with its own style, not its neighbor's
	styleKey := t.styleKeyAt(offset)

	t.applyDelete(offset, length)
	t.undoStack = append(t.undoStack, action{
		kind:     actionDelete,
		offset:   offset,
		content:  content,
		styleKey: styleKey,
	})
	t.redoStack = nil
}

// Append adds a styled run at the end of the committed content. Appends
// are producer output (streamed generation), not user edits: they are
// not recorded on the undo stack and do not disturb the redo stack.
func (t *PieceTable) Append(text, styleKey string) {
	t.CommitInsertCache()
	if text == "" {
		return
	}
	runes := []rune(text)
	addStart := len(t.added)
	t.added = append(t.added, runes...)

	if n := len(t.pieces); n > 0 {
		last := &t.pieces[n-1]
		if last.src == sourceAdded && last.start+last.length == addStart && last.styleKey == styleKey {
			last.length += len(runes)
			return
		}
	}
	t.pieces = append(t.pieces, piece{src: sourceAdded, start: addStart, length: len(runes), styleKey: styleKey})
}

// recordInsert applies an insert and pushes it onto the undo stack.
// isRedo suppresses the redo-stack clear so a replayed action does not
// destroy the rest of the redo history.
func (t *PieceTable) recordInsert(offset int, text []rune, styleKey string, isRedo bool) {
	addStart := t.applyInsert(offset, text, styleKey)
	if !isRedo {
		t.redoStack = nil
	}
	t.undoStack = append(t.undoStack, action{
		kind:     actionInsert,
		offset:   offset,
		length:   len(text),
		addStart: addStart,
		styleKey: styleKey,
	})
}

// applyInsert appends text to the add buffer and splits whichever piece
// covers offset into at most two pieces around the new one. It returns
// the start of the appended range in the add buffer; offsets into the
// add buffer stay valid forever since the buffer is append-only.
func (t *PieceTable) applyInsert(offset int, text []rune, styleKey string) int {
	addStart := len(t.added)
	t.added = append(t.added, text...)
	inserted := piece{src: sourceAdded, start: addStart, length: len(text), styleKey: styleKey}

	newPieces := make([]piece, 0, len(t.pieces)+2)
	pos := 0
	handled := false
	for _, p := range t.pieces {
		switch {
		case handled || pos+p.length <= offset:
			newPieces = append(newPieces, p)
		case offset <= pos:
			newPieces = append(newPieces, inserted, p)
			handled = true
		default:
			head := offset - pos
			newPieces = append(newPieces, piece{src: p.src, start: p.start, length: head, styleKey: p.styleKey})
			newPieces = append(newPieces, inserted)
			newPieces = append(newPieces, piece{src: p.src, start: p.start + head, length: p.length - head, styleKey: p.styleKey})
			handled = true
		}
		pos += p.length
	}
	if !handled {
		newPieces = append(newPieces, inserted)
	}
	t.pieces = newPieces
	return addStart
}

// applyDelete walks the pieces accumulating a running start offset,
// keeping pieces before the range, trimming pieces overlapping it, and
// keeping pieces after it unchanged.
func (t *PieceTable) applyDelete(offset, length int) {
	end := offset + length
	newPieces := make([]piece, 0, len(t.pieces)+1)
	pos := 0
	for _, p := range t.pieces {
		pieceEnd := pos + p.length
		if pieceEnd <= offset || pos >= end {
			newPieces = append(newPieces, p)
		} else {
			overlapStart := max(offset, pos)
			overlapEnd := min(end, pieceEnd)
			if overlapStart > pos {
				newPieces = append(newPieces, piece{
					src: p.src, start: p.start, length: overlapStart - pos, styleKey: p.styleKey,
				})
			}
			if overlapEnd < pieceEnd {
				newPieces = append(newPieces, piece{
					src: p.src, start: p.start + (overlapEnd - pos), length: pieceEnd - overlapEnd, styleKey: p.styleKey,
				})
			}
		}
		pos = pieceEnd
	}
	t.pieces = newPieces
}

func (t *PieceTable) pieceRunes(p piece) []rune {
	switch p.src {
	case sourceOriginal:
		return t.original[p.start : p.start+p.length]
	default:
		return t.added[p.start : p.start+p.length]
	}
}

func (t *PieceTable) committedRunes() []rune {
	out := make([]rune, 0, t.CommittedLen())
	for _, p := range t.pieces {
		out = append(out, t.pieceRunes(p)...)
	}
	return out
}

// styleKeyAt returns the style key of the piece covering offset, or the
// empty key past the end of content.
func (t *PieceTable) styleKeyAt(offset int) string {
	pos := 0
	for _, p := range t.pieces {
		if offset < pos+p.length {
			return p.styleKey
		}
		pos += p.length
	}
	return ""
}

// clampOffset defends against caller contract violations: out-of-range
// offsets are clamped and logged rather than crashing the host process,
// since this core underlies live user input.
func (t *PieceTable) clampOffset(op string, offset, max int) int {
	if offset < 0 {
		logger.Warn("offset out of range; clamping", "op", op, "offset", offset, "content", max)
		return 0
	}
	if offset > max {
		logger.Warn("offset out of range; clamping", "op", op, "offset", offset, "content", max)
		return max
	}
	return offset
}
