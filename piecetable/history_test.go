package piecetable

import "testing"

func TestUndoRedo_InverseLaw(t *testing.T) {
	pt := New("base")
	pt.Insert(4, " text", "")
	pt.Delete(0, 2)
	pt.Insert(2, "XYZ", "")
	want := pt.Content()

	for i := 0; i < 3; i++ {
		if _, ok := pt.Undo(); !ok {
			t.Fatalf("undo %d failed", i)
		}
	}
	if got := pt.Content(); got != "base" {
		t.Fatalf("content after undos=%q, want %q", got, "base")
	}
	for i := 0; i < 3; i++ {
		if _, ok := pt.Redo(); !ok {
			t.Fatalf("redo %d failed", i)
		}
	}
	if got := pt.Content(); got != want {
		t.Fatalf("content after redos=%q, want %q", got, want)
	}
}

func TestUndo_ReturnsCaret(t *testing.T) {
	pt := New("")
	pt.Insert(0, "hello", "")
	caret, ok := pt.Undo()
	if !ok {
		t.Fatal("undo failed")
	}
	if caret != 0 {
		t.Fatalf("caret=%d, want 0", caret)
	}

	pt.Insert(0, "hello", "")
	pt.Delete(1, 3)
	caret, ok = pt.Undo()
	if !ok {
		t.Fatal("undo failed")
	}
	// restored text ends at offset+length
	if caret != 4 {
		t.Fatalf("caret=%d, want 4", caret)
	}
}

func TestRedo_ClearedByFreshEdit(t *testing.T) {
	pt := New("")
	pt.Insert(0, "one", "")
	pt.Insert(3, " two", "")
	pt.Undo()
	if !pt.CanRedo() {
		t.Fatal("expected redo available after undo")
	}

	pt.Insert(3, "!", "")
	if pt.CanRedo() {
		t.Fatal("redo stack should be cleared by a fresh edit")
	}
	if got, want := pt.Content(), "one!"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
}

func TestRedo_InsertAfterInterleavedEdits(t *testing.T) {
	// Redo must replay the exact inserted text even when later edits
	// appended to the add buffer in between.
	pt := New("")
	pt.Insert(0, "abc", "")
	pt.Undo()
	pt.Insert(0, "xyz", "")
	pt.Undo()
	if _, ok := pt.Redo(); !ok {
		t.Fatal("redo failed")
	}
	if got, want := pt.Content(), "xyz"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
}

func TestUndoRedo_EmptyStacksAreNoOps(t *testing.T) {
	pt := New("seed")
	if _, ok := pt.Undo(); ok {
		t.Fatal("undo on empty stack should report failure")
	}
	if _, ok := pt.Redo(); ok {
		t.Fatal("redo on empty stack should report failure")
	}
	if got := pt.Content(); got != "seed" {
		t.Fatalf("content=%q, want %q", got, "seed")
	}
}

func TestCanUndo_CountsPendingCache(t *testing.T) {
	pt := New("")
	if pt.CanUndo() {
		t.Fatal("fresh table should have nothing to undo")
	}
	pt.CacheInsert("a", 0, "")
	if !pt.CanUndo() {
		t.Fatal("pending cache should count as undoable")
	}
}

func TestConsolidation_PreservesContent(t *testing.T) {
	pt := New("")
	// Many single-rune inserts at the end produce many contiguous
	// same-source pieces; crossing the threshold must not change content.
	want := ""
	for i := 0; i < consolidateThreshold+20; i++ {
		pt.Insert(pt.CommittedLen(), "x", "")
		want += "x"
	}
	pt.Insert(0, "y", "")
	want = "y" + want

	if _, ok := pt.Undo(); !ok {
		t.Fatal("undo failed")
	}
	want = want[1:]
	if got := pt.Content(); got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	if got := len(pt.pieces); got > consolidateThreshold+21 {
		t.Fatalf("pieces=%d, expected consolidation to merge contiguous runs", got)
	}
}

func TestAppend_NotUndoable(t *testing.T) {
	pt := New("")
	pt.Append("streamed", "assistant")
	if pt.CanUndo() {
		t.Fatal("append should not be undoable")
	}
	pt.Insert(0, "> ", "")
	pt.Undo()
	if got, want := pt.Content(), "streamed"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
}
