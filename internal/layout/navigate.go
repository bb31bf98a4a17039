package layout

import "math"

// Direction is a spatial direction for focus and move operations.
type Direction int

const (
	Left Direction = iota
	Down
	Up
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Down:
		return "down"
	case Up:
		return "up"
	}
	return "right"
}

// axis returns the split orientation matching the direction's axis.
func (d Direction) axis() Orientation {
	if d == Left || d == Right {
		return Vertical
	}
	return Horizontal
}

// after reports whether the moved pane lands after the neighbor in child
// order: moving right or down puts it on the far side.
func (d Direction) after() bool {
	return d == Right || d == Down
}

// geomEpsilon absorbs accumulated ratio rounding when comparing pane edges.
const geomEpsilon = 1e-9

// Neighbor returns the pane adjacent to the focused one in the given
// direction, following tiling-window-manager conventions: among all panes
// whose rectangle lies in the half-plane beyond the focused pane's edge,
// pick the one whose center is best aligned on the other axis, breaking ties
// by edge proximity and then by traversal order, which keeps the choice
// deterministic. Returns 0, false when nothing lies that way.
func (t *Tree) Neighbor(d Direction) (PaneID, bool) {
	rects := t.Rects()
	from, ok := rects[t.focused]
	if !ok {
		return 0, false
	}

	best := PaneID(0)
	bestAlign, bestGap := math.Inf(1), math.Inf(1)

	for _, id := range t.Leaves() {
		if id == t.focused {
			continue
		}
		r := rects[id]

		var inPlane bool
		var align, gap float64
		switch d {
		case Left:
			inPlane = r.Right() <= from.X+geomEpsilon
			align = math.Abs(r.CenterY() - from.CenterY())
			gap = from.X - r.Right()
		case Right:
			inPlane = r.X >= from.Right()-geomEpsilon
			align = math.Abs(r.CenterY() - from.CenterY())
			gap = r.X - from.Right()
		case Up:
			inPlane = r.Bottom() <= from.Y+geomEpsilon
			align = math.Abs(r.CenterX() - from.CenterX())
			gap = from.Y - r.Bottom()
		case Down:
			inPlane = r.Y >= from.Bottom()-geomEpsilon
			align = math.Abs(r.CenterX() - from.CenterX())
			gap = r.Y - from.Bottom()
		}
		if !inPlane {
			continue
		}

		if align < bestAlign-geomEpsilon ||
			(math.Abs(align-bestAlign) <= geomEpsilon && gap < bestGap) {
			best, bestAlign, bestGap = id, align, gap
		}
	}

	if best == 0 {
		return 0, false
	}
	return best, true
}

// FocusDirection moves focus to the directional neighbor. No wraparound:
// with no neighbor the call is a no-op.
func (t *Tree) FocusDirection(d Direction) bool {
	id, ok := t.Neighbor(d)
	if !ok {
		return false
	}
	return t.Focus(id)
}

// MovePane relocates the focused pane toward its directional neighbor.
// Siblings swap in place; across subtrees the pane is extracted from its
// parent (collapsing a leftover singleton) and reinserted by splitting the
// neighbor's slot in half, with the moved pane on the direction side. The
// whole transformation happens before the call returns, so callers never
// observe a half-applied tree.
func (t *Tree) MovePane(d Direction) bool {
	target, ok := t.Neighbor(d)
	if !ok {
		return false
	}

	moved := t.focused

	// Sibling case: same parent split, swap the nodes and leave the ratios
	// with their positions so the panes exchange both place and size.
	if p1, i1 := findParent(t.root, moved); p1 != nil {
		if p2, i2 := findParent(t.root, target); p2 == p1 {
			p1.Children[i1].Node, p1.Children[i2].Node = p1.Children[i2].Node, p1.Children[i1].Node
			t.version++
			t.structure++
			return true
		}
	}

	parent, idx := findParent(t.root, moved)
	if parent == nil {
		// Focused pane is the root leaf; it has no neighbor by construction.
		return false
	}

	movedLeaf := parent.Children[idx].Node.(*Leaf)

	// Extract, renormalizing survivors like a close would.
	removed := parent.Children[idx].Ratio
	parent.Children = append(parent.Children[:idx:idx], parent.Children[idx+1:]...)
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
	t.root = collapse(t.root)

	// Reinsert beside the neighbor. The neighbor still exists: extraction
	// only removed the moved leaf.
	pair := []Child{{Node: movedLeaf, Ratio: 0.5}, {Ratio: 0.5}}
	tp, ti := findParent(t.root, target)
	if tp != nil {
		pair[1].Node = tp.Children[ti].Node
		if d.after() {
			pair[0], pair[1] = pair[1], pair[0]
		}
		tp.Children[ti].Node = &Split{Orientation: d.axis(), Children: pair}
	} else {
		pair[1].Node = t.root
		if d.after() {
			pair[0], pair[1] = pair[1], pair[0]
		}
		t.root = &Split{Orientation: d.axis(), Children: pair}
	}

	t.focused = moved
	t.version++
	t.structure++
	return true
}
