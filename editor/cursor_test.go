package editor

import (
	"testing"

	"github.com/quilltk/quill/piecetable"
)

func buildDisplay(t *testing.T, text string, width int) *Display {
	t.Helper()
	d := &Display{width: width}
	d.build(piecetable.New(text), "")
	return d
}

func TestCursor_StickyColumn(t *testing.T) {
	d := buildDisplay(t, "aaaaaaaaaa\nbbb\ncccccccccc", 40)
	var c Cursor

	c.Move(Move{Dir: MoveRight, Count: 8}, d)
	if r, col := c.Position(); r != 0 || col != 8 {
		t.Fatalf("position=(%d,%d), want (0,8)", r, col)
	}
	c.Move(Move{Dir: MoveDown}, d)
	if r, col := c.Position(); r != 1 || col != 3 {
		t.Fatalf("position=(%d,%d), want (1,3)", r, col)
	}
	c.Move(Move{Dir: MoveDown}, d)
	if r, col := c.Position(); r != 2 || col != 8 {
		t.Fatalf("position=(%d,%d), want (2,8)", r, col)
	}
	c.Move(Move{Dir: MoveDown}, d)
	if r, col := c.Position(); r != 2 || col != 8 {
		t.Fatalf("position=(%d,%d), want clamped (2,8)", r, col)
	}
}

func TestCursor_HorizontalCrossesLines(t *testing.T) {
	d := buildDisplay(t, "ab\ncd", 40)
	var c Cursor

	c.Move(Move{Dir: MoveRight, Count: 3}, d)
	if r, col := c.Position(); r != 1 || col != 0 {
		t.Fatalf("position=(%d,%d), want (1,0)", r, col)
	}
	c.Move(Move{Dir: MoveLeft}, d)
	if r, col := c.Position(); r != 0 || col != 2 {
		t.Fatalf("position=(%d,%d), want (0,2)", r, col)
	}
}

func TestCursor_LineAndFileMoves(t *testing.T) {
	d := buildDisplay(t, "abcdef\nghi", 40)
	var c Cursor

	c.Move(Move{Dir: MoveEndOfLine}, d)
	if r, col := c.Position(); r != 0 || col != 6 {
		t.Fatalf("end of line=(%d,%d), want (0,6)", r, col)
	}
	c.Move(Move{Dir: MoveEndOfFileEndOfLine}, d)
	if r, col := c.Position(); r != 1 || col != 3 {
		t.Fatalf("end of file=(%d,%d), want (1,3)", r, col)
	}
	c.Move(Move{Dir: MoveStartOfFile}, d)
	if r, col := c.Position(); r != 0 || col != 0 {
		t.Fatalf("start of file=(%d,%d), want (0,0)", r, col)
	}
	c.Move(Move{Dir: MoveEndOfFile}, d)
	if r, col := c.Position(); r != 1 || col != 0 {
		t.Fatalf("end of file keeps sticky col=(%d,%d), want (1,0)", r, col)
	}
}

func TestCursor_RealPositionAcrossWrappedLines(t *testing.T) {
	// width 5 wraps "ab cd ef" into [ab, cd, ef]; each soft break eats
	// one logical space.
	d := buildDisplay(t, "ab cd ef", 5)
	tests := []struct {
		row, col int
		want     int
	}{
		{0, 0, 0},
		{0, 2, 2},
		{1, 0, 3},
		{1, 2, 5},
		{2, 0, 6},
		{2, 2, 8},
	}
	for _, tt := range tests {
		c := Cursor{row: tt.row, col: tt.col}
		c.UpdateRealPosition(d)
		if got := c.RealPosition(); got != tt.want {
			t.Fatalf("(%d,%d): realPos=%d, want %d", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestCursor_RealPositionForcedBreak(t *testing.T) {
	// "abcdefg" at width 5 force-breaks into [abcde, fg]; the break adds
	// a display character but consumes no logical one.
	d := buildDisplay(t, "abcdefg", 5)
	c := Cursor{row: 1, col: 1}
	c.UpdateRealPosition(d)
	if got := c.RealPosition(); got != 6 {
		t.Fatalf("realPos=%d, want 6", got)
	}
	if got := d.lines[0].Added(); got != 1 {
		t.Fatalf("added=%d, want 1", got)
	}
}

func TestCursor_SelectionBoundsOrdered(t *testing.T) {
	c := Cursor{row: 0, col: 4}
	c.SetSelecting(true)
	c.row, c.col = 2, 1
	sr, sc, er, ec := c.SelectionBounds()
	if sr != 0 || sc != 4 || er != 2 || ec != 1 {
		t.Fatalf("bounds=(%d,%d)-(%d,%d), want (0,4)-(2,1)", sr, sc, er, ec)
	}

	// cursor before the anchor swaps the pair
	c = Cursor{row: 3, col: 2}
	c.SetSelecting(true)
	c.row, c.col = 1, 5
	sr, sc, er, ec = c.SelectionBounds()
	if sr != 1 || sc != 5 || er != 3 || ec != 2 {
		t.Fatalf("bounds=(%d,%d)-(%d,%d), want (1,5)-(3,2)", sr, sc, er, ec)
	}
}

func TestShouldSelect(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		want     bool
	}{
		{"before start row", 0, 9, false},
		{"start row before col", 1, 2, false},
		{"start row at col", 1, 3, true},
		{"middle row", 2, 0, true},
		{"end row before col", 3, 1, true},
		{"end row at col", 3, 2, false},
		{"after end row", 4, 0, false},
	}
	for _, tt := range tests {
		if got := shouldSelect(tt.row, tt.col, 1, 3, 3, 2); got != tt.want {
			t.Fatalf("%s: shouldSelect=%v, want %v", tt.name, got, tt.want)
		}
	}

	if shouldSelect(1, 4, 1, 2, 1, 5) != true {
		t.Fatal("single-row selection should cover cols [start, end)")
	}
	if shouldSelect(1, 5, 1, 2, 1, 5) != false {
		t.Fatal("single-row selection end col is exclusive")
	}
}
