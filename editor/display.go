package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quilltk/quill/internal/grapheme"
	"github.com/quilltk/quill/piecetable"
)

// Span is one styled run within a display line.
type Span struct {
	Text  string
	Style lipgloss.Style
}

// LineKind classifies a display line for hosts that restyle code blocks.
type LineKind int

const (
	LineText LineKind = iota
	LineFence
	LineCode
)

// Line is one wrapped display line. Its displayed length can differ from
// the logical runes it covers: forced mid-word breaks add a display-only
// character, soft breaks and newlines consume a logical one. The virtual
// cursor cell appears only in the rendered spans, never in Len or Text.
type Line struct {
	runes []styledRune
	sep   rune
	kind  LineKind

	spans     []Span
	cellWidth int
}

// Len returns the displayed length in runes.
func (l *Line) Len() int { return len(l.runes) }

// Added returns how many characters this line contributes purely for
// display purposes. Only force-broken lines add one.
func (l *Line) Added() int { return l.Len() + 1 - l.covered() }

func (l *Line) covered() int { return len(l.runes) + sepWidth(l.sep) }

// LastSegment reports whether this is the final display line of its
// logical line.
func (l *Line) LastSegment() bool { return l.sep == '\n' }

func (l *Line) Kind() LineKind { return l.kind }

// Text returns the displayed text without styling.
func (l *Line) Text() string {
	var b strings.Builder
	b.Grow(len(l.runes))
	for _, sr := range l.runes {
		b.WriteRune(sr.r)
	}
	return b.String()
}

// Spans returns the styled runs, selection and cursor styling applied.
func (l *Line) Spans() []Span { return l.spans }

// CellWidth returns the terminal cell width of the displayed text.
func (l *Line) CellWidth() int { return l.cellWidth }

// Render returns the line as a styled string.
func (l *Line) Render() string {
	var b strings.Builder
	for _, sp := range l.spans {
		b.WriteString(sp.Style.Render(sp.Text))
	}
	return b.String()
}

// Display holds the wrapped display lines derived from the current
// logical content and width. It is rebuilt on every content or width
// change and restyled on every cursor or selection change; it is never
// diffed incrementally.
type Display struct {
	width       int
	lines       []Line
	placeholder bool
	selected    []rune
}

func (d *Display) Width() int { return d.width }

// LineCount returns the number of display lines; never zero once built.
func (d *Display) LineCount() int {
	if len(d.lines) == 0 {
		return 1
	}
	return len(d.lines)
}

// LineLen returns the displayed length of row r, zero out of range.
func (d *Display) LineLen(r int) int {
	if r < 0 || r >= len(d.lines) {
		return 0
	}
	return d.lines[r].Len()
}

// Lines returns the display lines in order.
func (d *Display) Lines() []Line { return d.lines }

// SelectedText returns the characters inside the selection, with the
// newlines and wrap-consumed spaces between them reconstructed.
func (d *Display) SelectedText() string { return string(d.selected) }

// build recomputes the display lines from the table's styled runs. Line
// kinds are assigned while wrapping: a fence marker toggles code-block
// state and lines between fences are marked as code.
func (d *Display) build(t *piecetable.PieceTable, placeholder string) {
	content := make([]styledRune, 0, t.Len())
	for _, run := range t.Runs() {
		for _, r := range run.Text {
			content = append(content, styledRune{r: r, key: run.StyleKey})
		}
	}
	d.placeholder = len(content) == 0 && placeholder != ""

	d.lines = d.lines[:0]
	inCode := false
	start := 0
	for i := 0; i <= len(content); i++ {
		if i < len(content) && content[i].r != '\n' {
			continue
		}
		for _, seg := range wrapLine(content[start:i], d.width) {
			kind := LineText
			switch {
			case seg.fence:
				kind = LineFence
				inCode = !inCode
			case inCode:
				kind = LineCode
			}
			d.lines = append(d.lines, Line{runes: seg.text, sep: seg.sep, kind: kind})
		}
		start = i + 1
	}
}

// decorate rebuilds every line's styled spans for the current cursor and
// selection, and accumulates the selected text. Metadata (lengths,
// coverage, kinds) is untouched, so callers may decorate without
// rebuilding.
func (d *Display) decorate(c *Cursor, styles Styles, showCursor bool, placeholder string) {
	d.selected = d.selected[:0]
	selecting := c.Selecting()
	var sr, sc, er, ec int
	if selecting {
		sr, sc, er, ec = c.SelectionBounds()
	}

	for r := range d.lines {
		ln := &d.lines[r]

		if d.placeholder && r == 0 {
			ln.spans = placeholderSpans(c, styles, showCursor, placeholder)
			ln.cellWidth = grapheme.Width(placeholder)
			continue
		}

		var spans []Span
		var run strings.Builder
		var runKey string
		var runSel bool
		open := false
		flushRun := func() {
			if !open {
				return
			}
			st := styles.run(runKey)
			if runSel {
				st = styles.selected(runKey)
			}
			spans = append(spans, Span{Text: run.String(), Style: st})
			run.Reset()
			open = false
		}

		for i, srn := range ln.runes {
			sel := selecting && shouldSelect(r, i, sr, sc, er, ec)
			if sel {
				d.selected = append(d.selected, srn.r)
			}
			if showCursor && r == c.row && i == c.col {
				flushRun()
				st := styles.run(srn.key)
				if sel {
					st = styles.selected(srn.key)
				}
				spans = append(spans, Span{Text: string(srn.r), Style: styles.Cursor.Inherit(st)})
				continue
			}
			if open && (srn.key != runKey || sel != runSel) {
				flushRun()
			}
			if !open {
				runKey, runSel, open = srn.key, sel, true
			}
			run.WriteRune(srn.r)
		}
		flushRun()

		// break separator falls inside the selection
		if selecting && sepWidth(ln.sep) == 1 && shouldSelect(r, len(ln.runes), sr, sc, er, ec) {
			d.selected = append(d.selected, ln.sep)
		}

		// virtual cell so the cursor can render past the last character
		if showCursor && r == c.row && c.col >= len(ln.runes) {
			spans = append(spans, Span{Text: " ", Style: styles.Cursor})
		}

		ln.spans = spans
		ln.cellWidth = grapheme.Width(ln.Text())
	}
}

func placeholderSpans(c *Cursor, styles Styles, showCursor bool, placeholder string) []Span {
	spans := make([]Span, 0, 2)
	if showCursor && c.row == 0 {
		spans = append(spans, Span{Text: " ", Style: styles.Cursor})
	}
	return append(spans, Span{Text: placeholder, Style: styles.Placeholder})
}

// positionFor maps a logical rune offset to the display row and column
// covering it. Offsets on a consumed break separator collapse to the end
// of the line that consumed it; offsets past the content land on the end
// of the last line.
func (d *Display) positionFor(offset int) (row, col int) {
	acc := 0
	for r := range d.lines {
		cov := d.lines[r].covered()
		if offset < acc+cov {
			return r, min(offset-acc, d.lines[r].Len())
		}
		acc += cov
	}
	last := len(d.lines) - 1
	if last < 0 {
		return 0, 0
	}
	return last, d.lines[last].Len()
}
