package layout

// ratioEpsilon bounds floating-point drift when checking that child ratios
// sum to 1.
const ratioEpsilon = 1e-6

// Tree is the workspace pane tree. All operations are total: invalid input
// (unknown pane, out-of-range index) is a no-op, never an error. The tree
// always contains at least one leaf, exactly one focused leaf, and every
// split holds two or more children whose ratios sum to 1.
//
// Tree is not safe for concurrent use; all mutation happens on the UI event
// loop.
type Tree struct {
	root    Node
	focused PaneID
	zoomed  PaneID // 0 when no pane is zoomed
	nextID  PaneID
	version uint64

	// structure counts only shape/ratio changes; focus and zoom don't move
	// it, so the rect cache survives pure focus churn.
	structure uint64

	// rect cache, rebuilt lazily when structure moves past rectStructure.
	rects         map[PaneID]Rect
	rectStructure uint64
}

// New creates a tree holding a single focused leaf.
func New() *Tree {
	t := &Tree{nextID: 1}
	t.root = &Leaf{ID: 1}
	t.focused = 1
	t.nextID = 2
	t.version = 1
	t.structure = 1
	return t
}

// Focused returns the focused pane's ID.
func (t *Tree) Focused() PaneID { return t.focused }

// Zoomed returns the zoomed pane's ID, or 0 when zoom is off.
func (t *Tree) Zoomed() PaneID { return t.zoomed }

// Version increments whenever tree shape, ratios, focus, or zoom change.
// Derived state (the rect map, rendered output) keys off it.
func (t *Tree) Version() uint64 { return t.version }

// Leaves returns all pane IDs in traversal order.
func (t *Tree) Leaves() []PaneID {
	return collectLeaves(t.root, nil)
}

// Len returns the number of panes.
func (t *Tree) Len() int { return len(t.Leaves()) }

// Contains reports whether a pane with the given ID exists.
func (t *Tree) Contains(id PaneID) bool {
	return findLeaf(t.root, id) != nil
}

// Split replaces the pane in place with a two-child split holding the old
// pane and a new empty one at equal ratios. The new pane becomes focused and
// its ID is returned. Splitting an unknown pane is a no-op.
func (t *Tree) Split(id PaneID, o Orientation) (PaneID, bool) {
	old := findLeaf(t.root, id)
	if old == nil {
		return 0, false
	}

	fresh := &Leaf{ID: t.nextID}
	t.nextID++

	split := &Split{
		Orientation: o,
		Children: []Child{
			{Node: old, Ratio: 0.5},
			{Node: fresh, Ratio: 0.5},
		},
	}

	if parent, idx := findParent(t.root, id); parent != nil {
		parent.Children[idx].Node = split
	} else {
		t.root = split
	}

	t.focused = fresh.ID
	t.version++
	t.structure++
	return fresh.ID, true
}

// Close removes the pane, scaling the remaining siblings' ratios by
// 1/(1-removed) so they keep their relative sizes, and collapsing any split
// left with a single child. Closing the last remaining pane is a no-op and
// returns false so the host can decide what "cannot shrink further" means.
func (t *Tree) Close(id PaneID) bool {
	if _, isLeaf := t.root.(*Leaf); isLeaf {
		return false
	}

	parent, idx := findParent(t.root, id)
	if parent == nil {
		return false
	}

	removed := parent.Children[idx].Ratio
	parent.Children = append(parent.Children[:idx:idx], parent.Children[idx+1:]...)

	// Renormalize survivors proportionally. Guard the degenerate case where
	// the removed child held (nearly) the whole split.
	if remain := 1 - removed; remain > ratioEpsilon {
		for i := range parent.Children {
			parent.Children[i].Ratio /= remain
		}
	} else {
		even := 1.0 / float64(len(parent.Children))
		for i := range parent.Children {
			parent.Children[i].Ratio = even
		}
	}

	// Focus the next sibling in list order, or the previous one. Either may
	// be a subtree; focus its first leaf.
	if t.focused == id || !t.Contains(t.focused) {
		heir := idx
		if heir >= len(parent.Children) {
			heir = len(parent.Children) - 1
		}
		t.focused = firstLeaf(parent.Children[heir].Node).ID
	}

	if t.zoomed == id {
		t.zoomed = 0
	}

	t.root = collapse(t.root)
	t.version++
	t.structure++
	return true
}

// collapse replaces every split holding a single child with that child.
func collapse(n Node) Node {
	s, ok := n.(*Split)
	if !ok {
		return n
	}
	for i := range s.Children {
		s.Children[i].Node = collapse(s.Children[i].Node)
	}
	if len(s.Children) == 1 {
		return s.Children[0].Node
	}
	return s
}

// Balance resets every split's children to equal ratios, depth-first.
func (t *Tree) Balance() {
	balance(t.root)
	t.version++
	t.structure++
}

func balance(n Node) {
	s, ok := n.(*Split)
	if !ok {
		return
	}
	even := 1.0 / float64(len(s.Children))
	for i := range s.Children {
		s.Children[i].Ratio = even
		balance(s.Children[i].Node)
	}
}

// Focus moves focus to the given pane. Unknown panes are ignored.
func (t *Tree) Focus(id PaneID) bool {
	if !t.Contains(id) {
		return false
	}
	if t.focused != id {
		t.focused = id
		t.version++
	}
	return true
}

// JumpToPane focuses the n-th pane (1-indexed) in traversal order.
// Out-of-range indices leave focus unchanged.
func (t *Tree) JumpToPane(n int) bool {
	leaves := t.Leaves()
	if n < 1 || n > len(leaves) {
		return false
	}
	return t.Focus(leaves[n-1])
}

// ToggleZoom flips the zoom flag. Zooming never mutates the tree: while
// zoomed, splits and closes keep operating on the real structure and only
// rendering is restricted. With no argument target, hosts pass Focused().
func (t *Tree) ToggleZoom(id PaneID) bool {
	if t.zoomed != 0 {
		t.zoomed = 0
		t.version++
		return true
	}
	if !t.Contains(id) {
		return false
	}
	t.zoomed = id
	t.version++
	return true
}
