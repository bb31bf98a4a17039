// Package layout implements the tiling pane tree: a space-partition tree of
// leaves (panes) and splits, plus the pure geometry derived from it. It knows
// nothing about rendering or key handling; the TUI layer sits on top.
package layout

// PaneID identifies a leaf for its whole lifetime. IDs are never reused
// within a tree.
type PaneID int

// Orientation is the axis a split divides space along.
type Orientation int

const (
	// Vertical places children side by side (a vertical divider).
	Vertical Orientation = iota
	// Horizontal stacks children top to bottom.
	Horizontal
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Node is either a *Leaf or a *Split.
type Node interface {
	isNode()
}

// Leaf is a single pane.
type Leaf struct {
	ID PaneID
}

// Split partitions its rectangle among ordered children along one axis.
// A well-formed split always has at least two children and child ratios
// summing to 1.
type Split struct {
	Orientation Orientation
	Children    []Child
}

// Child pairs a node with its fractional share of the parent split.
type Child struct {
	Node  Node
	Ratio float64
}

func (*Leaf) isNode()  {}
func (*Split) isNode() {}

// firstLeaf returns the first leaf of a subtree in traversal order.
func firstLeaf(n Node) *Leaf {
	switch n := n.(type) {
	case *Leaf:
		return n
	case *Split:
		return firstLeaf(n.Children[0].Node)
	}
	return nil
}

// collectLeaves appends the subtree's leaf IDs depth-first, children in
// list order. This is the traversal order used for numeric jumps.
func collectLeaves(n Node, out []PaneID) []PaneID {
	switch n := n.(type) {
	case *Leaf:
		out = append(out, n.ID)
	case *Split:
		for _, c := range n.Children {
			out = collectLeaves(c.Node, out)
		}
	}
	return out
}

// findLeaf returns the leaf with the given ID, or nil.
func findLeaf(n Node, id PaneID) *Leaf {
	switch n := n.(type) {
	case *Leaf:
		if n.ID == id {
			return n
		}
	case *Split:
		for _, c := range n.Children {
			if l := findLeaf(c.Node, id); l != nil {
				return l
			}
		}
	}
	return nil
}

// findParent returns the split containing the leaf and the leaf's index in
// its children. Returns nil, -1 when the leaf is the root or absent.
func findParent(n Node, id PaneID) (*Split, int) {
	s, ok := n.(*Split)
	if !ok {
		return nil, -1
	}
	for i, c := range s.Children {
		if l, isLeaf := c.Node.(*Leaf); isLeaf && l.ID == id {
			return s, i
		}
		if p, idx := findParent(c.Node, id); p != nil {
			return p, idx
		}
	}
	return nil, -1
}
