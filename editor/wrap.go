package editor

import "unicode"

const fenceLen = 3

// styledRune is one logical rune tagged with the style key of the run it
// was inserted with.
type styledRune struct {
	r   rune
	key string
}

// wrapSegment is one wrapped display line of a logical line, before
// styling. sep records how the segment ends: '\n' for the end of the
// logical line, ' ' for a soft break that consumed a space, 0 for a
// forced break. The segment's logical coverage is its displayed length
// plus the separator, so forced breaks are the only segments that add a
// display-only character.
type wrapSegment struct {
	text  []styledRune
	sep   rune
	fence bool
}

func (s wrapSegment) covered() int { return len(s.text) + sepWidth(s.sep) }

func sepWidth(sep rune) int {
	if sep == 0 {
		return 0
	}
	return 1
}

// isLineSpace reports whether r is whitespace within a logical line.
func isLineSpace(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}

// wrapLine wraps one logical line (no newlines) to the display width.
// Word-wrapped segments stay strictly under the width, reserving the
// cursor cell; force-broken chunks of an over-long word use the full
// width. Trailing whitespace never causes a wrap; it is re-added to the
// final segment. The final segment's separator is the logical line's
// newline, whether or not one follows in the content.
func wrapLine(line []styledRune, width int) []wrapSegment {
	maxWidth := width - 1
	if maxWidth < 1 {
		maxWidth = 1
	}
	if width < 1 {
		width = 1
	}

	trail := len(line)
	for trail > 0 && isLineSpace(line[trail-1].r) {
		trail--
	}

	w := lineWrapper{width: width, maxWidth: maxWidth}
	for _, tok := range tokenize(line[:trail]) {
		w.take(tok)
	}
	return w.finish(line[trail:])
}

// wrapToken is one run of leading whitespace plus the word after it.
type wrapToken struct {
	spaces []styledRune
	word   []styledRune
}

func tokenize(line []styledRune) []wrapToken {
	var toks []wrapToken
	i := 0
	for i < len(line) {
		start := i
		for i < len(line) && isLineSpace(line[i].r) {
			i++
		}
		spaceEnd := i
		for i < len(line) && !isLineSpace(line[i].r) {
			i++
		}
		if i == spaceEnd {
			break
		}
		toks = append(toks, wrapToken{spaces: line[start:spaceEnd], word: line[spaceEnd:i]})
	}
	return toks
}

type lineWrapper struct {
	width    int
	maxWidth int
	cur      []styledRune
	segs     []wrapSegment
}

func (w *lineWrapper) take(tok wrapToken) {
	if fenceIndex(tok.word) >= 0 {
		w.takeFenceWord(tok)
		return
	}
	if len(w.cur)+len(tok.spaces)+len(tok.word) <= w.maxWidth {
		w.cur = append(w.cur, tok.spaces...)
		w.cur = append(w.cur, tok.word...)
		return
	}
	if len(tok.spaces)+len(tok.word) > w.maxWidth {
		w.takeLongWord(tok)
		return
	}

	// Soft break. The wrap itself consumes one space; the rest of the
	// whitespace run carries over to the next segment.
	spaces := tok.spaces
	if len(spaces) > 0 {
		spaces = spaces[1:]
		w.flush(' ')
	} else {
		w.flush(0)
	}
	w.cur = append(w.cur, spaces...)
	w.cur = append(w.cur, tok.word...)
}

// takeLongWord force-breaks a word that cannot fit on one segment into
// full-width chunks, leaving the remainder as the current segment.
func (w *lineWrapper) takeLongWord(tok wrapToken) {
	if len(w.cur) > 0 {
		w.flush(0)
	}
	text := make([]styledRune, 0, len(tok.spaces)+len(tok.word))
	text = append(text, tok.spaces...)
	text = append(text, tok.word...)
	for len(text) > w.width {
		w.segs = append(w.segs, wrapSegment{text: text[:w.width:w.width]})
		text = text[w.width:]
	}
	w.cur = text
}

// takeFenceWord handles a word containing a code-fence marker: the fence
// goes on its own segment regardless of remaining width and is never
// split; text on either side of it breaks onto its own segment. Leading
// whitespace stays on the segment before the fence.
func (w *lineWrapper) takeFenceWord(tok wrapToken) {
	w.cur = append(w.cur, tok.spaces...)
	word := tok.word
	for {
		i := fenceIndex(word)
		if i < 0 {
			break
		}
		w.cur = append(w.cur, word[:i]...)
		if len(w.cur) > 0 {
			w.flush(0)
		}
		w.segs = append(w.segs, wrapSegment{text: fenceRunes(word[i].key), fence: true})
		word = word[i+fenceLen:]
	}
	if len(word) > 0 {
		w.cur = append(w.cur, word...)
		w.flush(0)
	}
}

func (w *lineWrapper) flush(sep rune) {
	w.segs = append(w.segs, wrapSegment{text: w.cur, sep: sep})
	w.cur = nil
}

func (w *lineWrapper) finish(trailing []styledRune) []wrapSegment {
	if len(w.cur) > 0 || len(w.segs) == 0 {
		w.flush(0)
	}
	last := &w.segs[len(w.segs)-1]
	last.text = append(last.text, trailing...)
	last.sep = '\n'
	return w.segs
}

// fenceIndex returns the index of the first code-fence marker in word,
// or -1.
func fenceIndex(word []styledRune) int {
	for i := 0; i+fenceLen <= len(word); i++ {
		if word[i].r == '`' && word[i+1].r == '`' && word[i+2].r == '`' {
			return i
		}
	}
	return -1
}

func fenceRunes(key string) []styledRune {
	return []styledRune{{'`', key}, {'`', key}, {'`', key}}
}
