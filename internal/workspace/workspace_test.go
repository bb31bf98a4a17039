package workspace

import (
	"testing"

	"github.com/pfassina/loom/internal/content"
	"github.com/pfassina/loom/internal/layout"
)

func TestSplitAssignsContentToNewPane(t *testing.T) {
	w := New()
	w.Open(content.Handle{Kind: content.KindThread, Ref: "threads/a.md"})

	note := content.Handle{Kind: content.KindNote, Ref: "notes/b.md"}
	id, ok := w.Split(layout.Vertical, note)
	if !ok {
		t.Fatal("split failed")
	}
	if w.Focused() != id {
		t.Fatalf("focus = %d, want new pane %d", w.Focused(), id)
	}
	if got := w.Handle(id); got != note {
		t.Fatalf("new pane handle = %v, want %v", got, note)
	}

	panes := w.Panes()
	if len(panes) != 2 {
		t.Fatalf("got %d panes, want 2", len(panes))
	}
	if panes[0].Handle.Ref != "threads/a.md" || panes[1].Handle != note {
		t.Fatalf("unexpected pane contents: %+v", panes)
	}
	if panes[0].Ordinal != 1 || panes[1].Ordinal != 2 {
		t.Fatalf("ordinals wrong: %+v", panes)
	}
	if panes[0].Focused || !panes[1].Focused {
		t.Fatalf("focus flags wrong: %+v", panes)
	}
}

func TestSplitWithoutContentAsksForSome(t *testing.T) {
	w := New()
	w.Open(content.Handle{Kind: content.KindThread, Ref: "threads/a.md"})

	var opened int
	var asked []layout.PaneID
	w.OnOpen(func(layout.PaneID, content.Handle) { opened++ })
	w.OnNeedsContent(func(id layout.PaneID) { asked = append(asked, id) })

	id, ok := w.Split(layout.Vertical, content.Handle{})
	if !ok {
		t.Fatal("split failed")
	}
	if len(asked) != 1 || asked[0] != id {
		t.Fatalf("needs-content fired for %v, want [%d]", asked, id)
	}
	if opened != 0 {
		t.Fatal("an unassigned pane must not fire the open callback")
	}
	if got := w.Handle(id); !got.Zero() {
		t.Fatalf("new pane handle = %v, want unassigned", got)
	}

	// A split that brings its own content never asks.
	w.Split(layout.Horizontal, content.Handle{Kind: content.KindTerminal})
	if len(asked) != 1 {
		t.Fatalf("needs-content fired %d times, want 1", len(asked))
	}
	if opened != 1 {
		t.Fatalf("open fired %d times, want 1", opened)
	}
}

func TestOpenFiresCallbacks(t *testing.T) {
	w := New()
	var opened, closed []string
	w.OnOpen(func(_ layout.PaneID, h content.Handle) { opened = append(opened, h.String()) })
	w.OnClose(func(_ layout.PaneID, h content.Handle) { closed = append(closed, h.String()) })

	a := content.Handle{Kind: content.KindThread, Ref: "threads/a.md"}
	b := content.Handle{Kind: content.KindNote, Ref: "notes/b.md"}
	w.Open(a)
	w.Open(b)

	if len(opened) != 2 || opened[0] != a.String() || opened[1] != b.String() {
		t.Fatalf("opened = %v", opened)
	}
	if len(closed) != 1 || closed[0] != a.String() {
		t.Fatalf("closed = %v", closed)
	}
}

func TestCloseReleasesContent(t *testing.T) {
	w := New()
	var closed []content.Handle
	w.OnClose(func(_ layout.PaneID, h content.Handle) { closed = append(closed, h) })

	w.Open(content.Handle{Kind: content.KindThread, Ref: "threads/a.md"})
	term := content.Handle{Kind: content.KindTerminal}
	w.Split(layout.Vertical, term)

	if !w.Close() {
		t.Fatal("close failed")
	}
	if len(closed) != 1 || closed[0] != term {
		t.Fatalf("closed = %v, want the terminal handle", closed)
	}
	if w.Len() != 1 {
		t.Fatalf("len = %d, want 1", w.Len())
	}
	if got := w.Handle(w.Focused()); got.Ref != "threads/a.md" {
		t.Fatalf("surviving pane handle = %v", got)
	}
}

func TestCloseLastPaneKeepsContent(t *testing.T) {
	w := New()
	var closed int
	w.OnClose(func(layout.PaneID, content.Handle) { closed++ })
	w.Open(content.Handle{Kind: content.KindNote, Ref: "notes/a.md"})

	if w.Close() {
		t.Fatal("closing the last pane should be a no-op")
	}
	if closed != 0 {
		t.Fatal("no-op close must not fire callbacks")
	}
}

func TestContentFollowsPaneThroughMoves(t *testing.T) {
	w := New()
	a := content.Handle{Kind: content.KindThread, Ref: "threads/a.md"}
	b := content.Handle{Kind: content.KindNote, Ref: "notes/b.md"}
	w.Open(a)
	w.Split(layout.Vertical, b)

	// b is focused on the right; move it left and the handles travel with
	// their panes.
	if !w.MovePane(layout.Left) {
		t.Fatal("move failed")
	}
	panes := w.Panes()
	if panes[0].Handle != b || panes[1].Handle != a {
		t.Fatalf("handles did not follow panes: %+v", panes)
	}
	if !panes[0].Focused {
		t.Fatal("moved pane should keep focus")
	}
}

func TestJumpAndZoom(t *testing.T) {
	w := New()
	w.Open(content.Handle{Kind: content.KindThread, Ref: "threads/a.md"})
	w.Split(layout.Vertical, content.Handle{Kind: content.KindGraph})
	w.Split(layout.Horizontal, content.Handle{Kind: content.KindTerminal})

	if !w.JumpToPane(1) {
		t.Fatal("jump to pane 1 failed")
	}
	if w.Panes()[0].ID != w.Focused() {
		t.Fatal("jump should focus the first pane in traversal order")
	}

	w.ToggleZoom()
	if w.Zoomed() != w.Focused() {
		t.Fatal("zoom should flag the focused pane")
	}
	w.ToggleZoom()
	if w.Zoomed() != 0 {
		t.Fatal("second toggle should unzoom")
	}
}
