package piecetable

// insertCache batches the many single-rune inserts produced by
// interactive typing so they commit as one undoable edit instead of
// flooding the undo stack and fragmenting the piece list.
type insertCache struct {
	pending  []rune
	offset   int
	styleKey string
	active   bool
}

// CacheInsert adds text to the pending insert cache. If text is
// contiguous with the end of the existing cache at the same target
// offset (and carries the same style key) it is appended; otherwise the
// existing cache is committed as one real insert and a new cache starts
// at offset. Offsets address the cache-inclusive logical content, which
// is what Content exposes.
func (t *PieceTable) CacheInsert(text string, offset int, styleKey string) {
	if text == "" {
		return
	}
	if t.cache.active && styleKey == t.cache.styleKey && offset == t.cache.offset+len(t.cache.pending) {
		t.cache.pending = append(t.cache.pending, []rune(text)...)
		return
	}
	t.CommitInsertCache()
	t.cache = insertCache{
		pending:  []rune(text),
		offset:   t.clampOffset("cache_insert", offset, t.CommittedLen()),
		styleKey: styleKey,
		active:   true,
	}
}

// CommitInsertCache commits any pending cached text as a single insert
// and returns the flushed text. It returns the empty string when no
// cache was pending.
func (t *PieceTable) CommitInsertCache() string {
	if !t.cache.active {
		return ""
	}
	flushed := t.cache.pending
	offset := t.cache.offset
	styleKey := t.cache.styleKey
	t.cache = insertCache{}
	if len(flushed) == 0 {
		return ""
	}
	t.recordInsert(offset, flushed, styleKey, false)
	return string(flushed)
}
