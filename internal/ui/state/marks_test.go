package state

import "testing"

func TestMarksToggleAndPrune(t *testing.T) {
	level := newTestLevel("a", "b", "c")
	level.MultiSelect = true
	level.Cursor = 1
	if !level.ToggleMarkAtCursor() {
		t.Fatal("expected mark at cursor")
	}
	level.ToggleMark("c")

	marked := level.MarkedItems()
	if len(marked) != 2 || marked[0].ID != "b" || marked[1].ID != "c" {
		t.Fatalf("expected b and c marked in display order, got %#v", marked)
	}

	level.UpdateItems(level.Full[:2])
	if level.IsMarked("c") {
		t.Fatal("expected mark of removed item to be dropped")
	}
	if !level.IsMarked("b") {
		t.Fatal("expected surviving mark to remain")
	}

	level.ToggleMark("b")
	if level.IsMarked("b") {
		t.Fatal("expected second toggle to unmark")
	}

	level.ToggleMark("a")
	level.ClearMarks()
	if len(level.MarkedItems()) != 0 {
		t.Fatal("expected marks cleared")
	}
}

func TestToggleMarkAtCursorRequiresMultiSelect(t *testing.T) {
	level := newTestLevel("a")
	level.Cursor = 0
	if level.ToggleMarkAtCursor() {
		t.Fatal("expected single-select level to refuse marks")
	}
	if level.IsMarked("a") {
		t.Fatal("expected a unmarked")
	}
}

func TestMarkedItemsHidesFilteredOut(t *testing.T) {
	level := newTestLevel("alpha", "beta")
	level.MultiSelect = true
	level.ToggleMark("alpha")
	level.ToggleMark("beta")
	level.SetFilter("bet", 3)
	marked := level.MarkedItems()
	if len(marked) != 1 || marked[0].ID != "beta" {
		t.Fatalf("expected only visible marks, got %#v", marked)
	}
}
