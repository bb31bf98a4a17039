// Package workspace couples the pane layout tree with the content each
// pane displays. The TUI talks to a Workspace; it never mutates the tree
// directly.
package workspace

import (
	"github.com/pfassina/loom/internal/content"
	"github.com/pfassina/loom/internal/layout"
)

// Pane is a render-time snapshot of one pane: where it sits in the unit
// square and what it shows.
type Pane struct {
	ID      layout.PaneID
	Handle  content.Handle
	Rect    layout.Rect
	Ordinal int // 1-based position for the jump keys
	Focused bool
}

// Workspace owns the layout tree and the pane-to-content assignment.
type Workspace struct {
	tree    *layout.Tree
	handles map[layout.PaneID]content.Handle

	// onOpen is notified when a pane starts showing a handle, so the app
	// can spin up whatever provider the content needs.
	onOpen func(layout.PaneID, content.Handle)
	// onClose is notified when a pane goes away and its provider should
	// be torn down.
	onClose func(layout.PaneID, content.Handle)
	// onNeedsContent is notified when a new pane comes up with nothing
	// assigned, so the app can ask the user what to show in it.
	onNeedsContent func(layout.PaneID)
}

// New creates a workspace with a single empty pane.
func New() *Workspace {
	return &Workspace{
		tree:    layout.New(),
		handles: make(map[layout.PaneID]content.Handle),
	}
}

// OnOpen registers the pane-opened callback.
func (w *Workspace) OnOpen(fn func(layout.PaneID, content.Handle)) { w.onOpen = fn }

// OnClose registers the pane-closed callback.
func (w *Workspace) OnClose(fn func(layout.PaneID, content.Handle)) { w.onClose = fn }

// OnNeedsContent registers the unassigned-pane callback.
func (w *Workspace) OnNeedsContent(fn func(layout.PaneID)) { w.onNeedsContent = fn }

// Tree exposes the layout tree read-only callers need for version checks.
func (w *Workspace) Tree() *layout.Tree { return w.tree }

// Focused returns the focused pane's ID.
func (w *Workspace) Focused() layout.PaneID { return w.tree.Focused() }

// Zoomed returns the zoomed pane's ID, or zero.
func (w *Workspace) Zoomed() layout.PaneID { return w.tree.Zoomed() }

// Version returns the tree's change counter.
func (w *Workspace) Version() uint64 { return w.tree.Version() }

// Handle returns the content assigned to a pane.
func (w *Workspace) Handle(id layout.PaneID) content.Handle { return w.handles[id] }

// Panes returns a snapshot of every pane in traversal order, with rects
// from the unit square. The caller scales them to the terminal grid.
func (w *Workspace) Panes() []Pane {
	ids := w.tree.Leaves()
	rects := w.tree.Rects()
	focused := w.tree.Focused()

	panes := make([]Pane, len(ids))
	for i, id := range ids {
		panes[i] = Pane{
			ID:      id,
			Handle:  w.handles[id],
			Rect:    rects[id],
			Ordinal: i + 1,
			Focused: id == focused,
		}
	}
	return panes
}

// Open assigns content to the focused pane, replacing whatever it showed.
func (w *Workspace) Open(h content.Handle) {
	w.assign(w.tree.Focused(), h)
}

// assign swaps the handle on a pane, firing close/open callbacks.
func (w *Workspace) assign(id layout.PaneID, h content.Handle) {
	if old, ok := w.handles[id]; ok && !old.Zero() && w.onClose != nil {
		w.onClose(id, old)
	}
	w.handles[id] = h
	if !h.Zero() && w.onOpen != nil {
		w.onOpen(id, h)
	}
}

// Split divides the focused pane in two and focuses the new empty pane.
// With h non-zero the new pane opens that content immediately; with a
// zero handle the pane starts unassigned and the needs-content callback
// fires so the caller can supply something.
func (w *Workspace) Split(o layout.Orientation, h content.Handle) (layout.PaneID, bool) {
	id, ok := w.tree.Split(w.tree.Focused(), o)
	if !ok {
		return 0, false
	}
	if h.Zero() {
		if w.onNeedsContent != nil {
			w.onNeedsContent(id)
		}
		return id, true
	}
	w.assign(id, h)
	return id, true
}

// Close removes the focused pane. Closing the last pane is a no-op.
func (w *Workspace) Close() bool {
	id := w.tree.Focused()
	if !w.tree.Close(id) {
		return false
	}
	if old, ok := w.handles[id]; ok {
		if !old.Zero() && w.onClose != nil {
			w.onClose(id, old)
		}
		delete(w.handles, id)
	}
	return true
}

// FocusDirection moves focus to the nearest pane in the given direction.
func (w *Workspace) FocusDirection(d layout.Direction) bool {
	return w.tree.FocusDirection(d)
}

// MovePane relocates the focused pane in the given direction.
func (w *Workspace) MovePane(d layout.Direction) bool {
	return w.tree.MovePane(d)
}

// Balance equalizes sibling ratios throughout the tree.
func (w *Workspace) Balance() { w.tree.Balance() }

// ToggleZoom zooms the focused pane, or unzooms if any pane is zoomed.
func (w *Workspace) ToggleZoom() { w.tree.ToggleZoom(w.tree.Focused()) }

// JumpToPane focuses the nth pane in traversal order, 1-indexed.
func (w *Workspace) JumpToPane(n int) bool { return w.tree.JumpToPane(n) }

// Len returns the pane count.
func (w *Workspace) Len() int { return w.tree.Len() }
