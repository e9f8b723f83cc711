package editor

import "github.com/charmbracelet/log"

var logger = log.WithPrefix("editor")

// Direction names a cursor movement over display coordinates.
type Direction int

const (
	MoveLeft Direction = iota
	MoveRight
	MoveUp
	MoveDown
	MoveStartOfLine
	MoveEndOfLine
	MoveStartOfFile
	MoveEndOfFile
	MoveEndOfFileEndOfLine
)

// Move is one cursor movement. Count applies to the directional moves
// and defaults to 1; the remaining directions ignore it.
type Move struct {
	Dir   Direction
	Count int
}

// Cursor tracks a position in display coordinates: the row and column
// inside the current wrapped display lines. The anchor snapshots the
// position where a selection started. realPos is the derived linear
// offset into logical content and is recomputed whenever the display
// changes, never carried over stale.
type Cursor struct {
	row, col             int
	anchorRow, anchorCol int

	// desiredCol is the sticky target column for vertical movement.
	desiredCol int

	selecting bool
	visible   bool
	realPos   int
}

// Position returns the cursor's display row and column.
func (c *Cursor) Position() (row, col int) { return c.row, c.col }

// RealPosition returns the linear rune offset into logical content that
// corresponds to the cursor's display position.
func (c *Cursor) RealPosition() int { return c.realPos }

func (c *Cursor) Visible() bool        { return c.visible }
func (c *Cursor) SetVisible(show bool) { c.visible = show }

// SetSelecting enables or disables selection. Enabling snapshots the
// current position as the anchor.
func (c *Cursor) SetSelecting(enabled bool) {
	if enabled && !c.selecting {
		c.anchorRow, c.anchorCol = c.row, c.col
	}
	c.selecting = enabled
}

func (c *Cursor) Selecting() bool { return c.selecting }

// SelectionBounds returns the anchor and current position ordered so the
// textually earlier pair comes first, comparing row then column.
func (c *Cursor) SelectionBounds() (startRow, startCol, endRow, endCol int) {
	if c.anchorRow < c.row || (c.anchorRow == c.row && c.anchorCol <= c.col) {
		return c.anchorRow, c.anchorCol, c.row, c.col
	}
	return c.row, c.col, c.anchorRow, c.anchorCol
}

// Move applies one movement against the current display lines.
// Horizontal moves cross line boundaries and update the sticky column;
// vertical moves clamp the column per line but leave the sticky column
// unchanged.
func (c *Cursor) Move(m Move, d *Display) {
	count := m.Count
	if count < 1 {
		count = 1
	}
	maxRow := d.LineCount() - 1
	if maxRow < 0 {
		maxRow = 0
	}

	switch m.Dir {
	case MoveLeft:
		for i := 0; i < count; i++ {
			if c.col > 0 {
				c.col--
			} else if c.row > 0 {
				c.row--
				c.col = d.LineLen(c.row)
			}
		}
		c.desiredCol = c.col
	case MoveRight:
		for i := 0; i < count; i++ {
			if c.col < d.LineLen(c.row) {
				c.col++
			} else if c.row < maxRow {
				c.row++
				c.col = 0
			}
		}
		c.desiredCol = c.col
	case MoveUp:
		c.row = clamp(c.row-count, 0, maxRow)
		c.col = min(c.desiredCol, d.LineLen(c.row))
	case MoveDown:
		c.row = clamp(c.row+count, 0, maxRow)
		c.col = min(c.desiredCol, d.LineLen(c.row))
	case MoveStartOfLine:
		c.col = 0
		c.desiredCol = 0
	case MoveEndOfLine:
		c.col = d.LineLen(c.row)
		c.desiredCol = c.col
	case MoveStartOfFile:
		c.row, c.col, c.desiredCol = 0, 0, 0
	case MoveEndOfFile:
		c.row = maxRow
		c.col = min(c.desiredCol, d.LineLen(c.row))
	case MoveEndOfFileEndOfLine:
		c.row = maxRow
		c.col = d.LineLen(c.row)
		c.desiredCol = c.col
	}
}

// setPosition places the cursor at a display position directly, as after
// an edit repositions it, and resets the sticky column there.
func (c *Cursor) setPosition(row, col int, d *Display) {
	maxRow := d.LineCount() - 1
	if maxRow < 0 {
		maxRow = 0
	}
	c.row = clamp(row, 0, maxRow)
	c.col = clamp(col, 0, d.LineLen(c.row))
	c.desiredCol = c.col
}

// clampToDisplay pulls the cursor back inside the display after content
// or width changes shrank it.
func (c *Cursor) clampToDisplay(d *Display) {
	maxRow := d.LineCount() - 1
	if maxRow < 0 {
		maxRow = 0
	}
	c.row = clamp(c.row, 0, maxRow)
	c.col = clamp(c.col, 0, d.LineLen(c.row))
}

// UpdateRealPosition recomputes the linear offset for the current display
// position: the displayed length plus one separator for every line above
// the cursor, plus the column, minus the characters those lines added
// purely for display. A negative intermediate means the cursor is
// tracking stale display data; it is logged and clamped rather than
// propagated.
func (c *Cursor) UpdateRealPosition(d *Display) {
	pos := 0
	added := 0
	for r := 0; r < c.row && r < d.LineCount(); r++ {
		pos += d.LineLen(r) + 1
		added += d.lines[r].Added()
	}
	pos += c.col - added
	if pos < 0 {
		logger.Warn("cursor position desync; clamping to start", "row", c.row, "col", c.col, "added", added)
		pos = 0
	}
	c.realPos = pos
}

// shouldSelect reports whether display position (row, col) lies inside
// the ordered selection bounds.
func shouldSelect(row, col, startRow, startCol, endRow, endCol int) bool {
	if row < startRow || row > endRow {
		return false
	}
	if startRow == endRow {
		return col >= startCol && col < endCol
	}
	switch row {
	case startRow:
		return col >= startCol
	case endRow:
		return col < endCol
	default:
		return true
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
