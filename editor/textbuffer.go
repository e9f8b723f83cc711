package editor

import (
	"errors"
	"unicode/utf8"

	"github.com/quilltk/quill/piecetable"
)

// ErrReadOnly is returned by mutating operations on a read-only buffer.
var ErrReadOnly = errors.New("editor: buffer is read-only")

// Config configures a TextBuffer.
type Config struct {
	// Width is the display width in columns. Defaults to 80.
	Width int

	// Editable gates insert/delete/undo/redo. Read-only buffers still
	// accept Append and cursor movement.
	Editable bool

	// Text is the initial content, unstyled.
	Text string

	// Placeholder is shown dimmed while the buffer is empty.
	Placeholder string

	Styles Styles
}

// TextBuffer composes the piece table, cursor, and display into the
// single operation surface consumed by a UI layer. Every mutation
// applies to the table, rebuilds the display, and recomputes the
// cursor's real position against the new display, in that order.
//
// A TextBuffer is owned by one UI surface and is not safe for
// concurrent use.
type TextBuffer struct {
	table   *piecetable.PieceTable
	cursor  Cursor
	display Display

	styles      Styles
	editable    bool
	placeholder string
}

func New(cfg Config) *TextBuffer {
	width := cfg.Width
	if width <= 0 {
		width = 80
	}
	b := &TextBuffer{
		table:       piecetable.New(cfg.Text),
		display:     Display{width: width},
		styles:      cfg.Styles,
		editable:    cfg.Editable,
		placeholder: cfg.Placeholder,
	}
	b.cursor.SetVisible(cfg.Editable)
	b.refresh()
	return b
}

// InsertAtCursor inserts text at the cursor's position as part of the
// current typing batch and advances the cursor past it. The styleKey
// tags the run for display styling.
func (b *TextBuffer) InsertAtCursor(text, styleKey string) error {
	if !b.editable {
		return ErrReadOnly
	}
	if text == "" {
		return nil
	}
	pos := b.cursor.RealPosition()
	b.table.CacheInsert(text, pos, styleKey)
	b.rebuildAt(pos + utf8.RuneCountInString(text))
	return nil
}

// Delete removes count runes at the cursor (includeCursor true, the
// Delete key) or before it (includeCursor false, Backspace). A backspace
// that removes a newline joins the lines: the previous line's trailing
// whitespace goes with it, unless the character before the newline is
// itself another newline — a run of blank lines loses exactly one
// newline per backspace.
func (b *TextBuffer) Delete(includeCursor bool, count int) error {
	if !b.editable {
		return ErrReadOnly
	}
	if count <= 0 {
		return nil
	}
	b.table.CommitInsertCache()
	content := b.table.ContentRunes()
	pos := clamp(b.cursor.RealPosition(), 0, len(content))

	var offset int
	if includeCursor {
		offset = pos
		if offset >= len(content) {
			return nil
		}
		if offset+count > len(content) {
			count = len(content) - offset
		}
	} else {
		offset = pos - count
		if offset < 0 {
			count += offset
			offset = 0
		}
		if count <= 0 {
			return nil
		}
		if count == 1 && content[offset] == '\n' && (offset == 0 || content[offset-1] != '\n') {
			for offset > 0 && isLineSpace(content[offset-1]) {
				offset--
				count++
			}
		}
	}

	b.table.Delete(offset, count)
	b.rebuildAt(offset)
	return nil
}

// Undo reverts the most recent edit and places the cursor at the
// position the reverted edit started from.
func (b *TextBuffer) Undo() error {
	if !b.editable {
		return ErrReadOnly
	}
	caret, ok := b.table.Undo()
	if !ok {
		return nil
	}
	b.rebuildAt(caret)
	return nil
}

// Redo reapplies the most recently undone edit.
func (b *TextBuffer) Redo() error {
	if !b.editable {
		return ErrReadOnly
	}
	caret, ok := b.table.Redo()
	if !ok {
		return nil
	}
	b.rebuildAt(caret)
	return nil
}

// Append adds a styled run at the end of the content without moving the
// cursor's logical position or touching the undo history. This is the
// streamed-producer path and works on read-only buffers.
func (b *TextBuffer) Append(text, styleKey string) {
	if text == "" {
		return
	}
	pos := b.cursor.RealPosition()
	b.table.Append(text, styleKey)
	b.rebuildAt(pos)
}

// MoveCursor applies one movement over the current display lines.
func (b *TextBuffer) MoveCursor(m Move) {
	b.cursor.Move(m, &b.display)
	b.cursor.UpdateRealPosition(&b.display)
	b.decorate()
}

// SetSelection enables or disables the selection; enabling anchors it at
// the cursor.
func (b *TextBuffer) SetSelection(enabled bool) {
	b.cursor.SetSelecting(enabled)
	b.decorate()
}

// SelectedText returns the characters inside the active selection.
func (b *TextBuffer) SelectedText() string {
	return b.display.SelectedText()
}

// DisplayLines returns the current wrapped, styled display lines.
func (b *TextBuffer) DisplayLines() []Line {
	return b.display.Lines()
}

// String returns the full logical content, pending typing included.
func (b *TextBuffer) String() string {
	return b.table.Content()
}

func (b *TextBuffer) IsEmpty() bool { return b.table.IsEmpty() }

// Empty resets the buffer to a blank document in place; the cursor moves
// to the origin and the edit history is discarded.
func (b *TextBuffer) Empty() {
	b.table.Empty()
	visible := b.cursor.Visible()
	b.cursor = Cursor{}
	b.cursor.SetVisible(visible)
	b.refresh()
}

// SetWidth rewraps the content at a new display width, keeping the
// cursor on the same logical character.
func (b *TextBuffer) SetWidth(width int) {
	if width < 1 {
		width = 1
	}
	pos := b.cursor.RealPosition()
	b.display.width = width
	b.rebuildAt(pos)
}

func (b *TextBuffer) SetCursorVisible(show bool) {
	b.cursor.SetVisible(show)
	b.decorate()
}

// CursorRowCol returns the cursor's display row and column; the row is
// the input for any scroll offset owned by the host.
func (b *TextBuffer) CursorRowCol() (row, col int) {
	return b.cursor.Position()
}

func (b *TextBuffer) LineCount() int { return b.display.LineCount() }

func (b *TextBuffer) Editable() bool { return b.editable }

func (b *TextBuffer) SetPlaceholder(text string) {
	b.placeholder = text
	b.refresh()
}

// View renders all display lines joined with newlines.
func (b *TextBuffer) View() string {
	lines := b.display.Lines()
	out := make([]byte, 0, 256)
	for i := range lines {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, lines[i].Render()...)
	}
	return string(out)
}

// refresh rebuilds the display for the current content, keeping the
// cursor at its display position clamped into the new lines.
func (b *TextBuffer) refresh() {
	b.display.build(b.table, b.placeholder)
	b.cursor.clampToDisplay(&b.display)
	b.cursor.UpdateRealPosition(&b.display)
	b.decorate()
}

// rebuildAt rebuilds the display and places the cursor at the display
// position covering the given logical offset.
func (b *TextBuffer) rebuildAt(offset int) {
	b.display.build(b.table, b.placeholder)
	row, col := b.display.positionFor(offset)
	b.cursor.setPosition(row, col, &b.display)
	b.cursor.UpdateRealPosition(&b.display)
	b.decorate()
}

func (b *TextBuffer) decorate() {
	b.display.decorate(&b.cursor, b.styles, b.cursor.Visible(), b.placeholder)
}
