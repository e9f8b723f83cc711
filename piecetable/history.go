package piecetable

// consolidateThreshold bounds undo work: once the piece list grows past
// this many entries, adjacent contiguous pieces are merged before the
// next undo.
const consolidateThreshold = 100

type actionKind uint8

const (
	actionInsert actionKind = iota
	actionDelete
)

// action is one entry on the undo or redo stack. An insert remembers
// its range in the (append-only, hence forever-valid) add buffer so a
// redo replays the exact text; a delete carries the removed content so
// an undo can restore it.
type action struct {
	kind     actionKind
	offset   int
	length   int    // insert: rune count
	addStart int    // insert: start of the text in the add buffer
	content  []rune // delete: removed text
	styleKey string
}

// CanUndo reports whether an undoable edit exists, counting a pending
// insert cache.
func (t *PieceTable) CanUndo() bool {
	return len(t.undoStack) > 0 || len(t.cache.pending) > 0
}

// CanRedo reports whether a redoable edit exists.
func (t *PieceTable) CanRedo() bool {
	return len(t.redoStack) > 0
}

// Undo reverses the most recent edit. A pending insert cache is
// committed first so a batch of cached typing undoes as one action.
// It returns the logical offset the caret belongs at after the undo
// and whether anything was undone.
func (t *PieceTable) Undo() (caret int, ok bool) {
	t.CommitInsertCache()
	if len(t.undoStack) == 0 {
		return 0, false
	}
	if len(t.pieces) > consolidateThreshold {
		t.consolidatePieces()
	}

	i := len(t.undoStack) - 1
	a := t.undoStack[i]
	t.undoStack = t.undoStack[:i]

	switch a.kind {
	case actionInsert:
		t.applyDelete(a.offset, a.length)
		caret = a.offset
	case actionDelete:
		t.applyInsert(a.offset, a.content, a.styleKey)
		caret = a.offset + len(a.content)
	}
	t.redoStack = append(t.redoStack, a)
	return caret, true
}

// Redo replays the most recently undone edit. A redo after a fresh edit
// is impossible: every non-redo edit clears the redo stack.
func (t *PieceTable) Redo() (caret int, ok bool) {
	t.CommitInsertCache()
	if len(t.redoStack) == 0 {
		return 0, false
	}

	i := len(t.redoStack) - 1
	a := t.redoStack[i]
	t.redoStack = t.redoStack[:i]

	switch a.kind {
	case actionInsert:
		text := t.added[a.addStart : a.addStart+a.length]
		t.recordInsert(a.offset, text, a.styleKey, true)
		caret = a.offset + a.length
		return caret, true
	case actionDelete:
		t.applyDelete(a.offset, len(a.content))
		caret = a.offset
	}
	t.undoStack = append(t.undoStack, a)
	return caret, true
}

// consolidatePieces merges adjacent pieces from the same source buffer
// with contiguous ranges and equal style keys. This bounds future edit
// work and must not change observable content.
func (t *PieceTable) consolidatePieces() {
	if len(t.pieces) < 2 {
		return
	}
	consolidated := make([]piece, 0, len(t.pieces))
	last := t.pieces[0]
	for _, p := range t.pieces[1:] {
		if last.src == p.src && last.start+last.length == p.start && last.styleKey == p.styleKey {
			last.length += p.length
			continue
		}
		consolidated = append(consolidated, last)
		last = p
	}
	consolidated = append(consolidated, last)
	t.pieces = consolidated
}
