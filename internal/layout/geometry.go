package layout

// Rect is a pane's share of the workspace in unit-square coordinates.
// The rendering layer scales it to terminal cells.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the rectangle's right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the rectangle's bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Rects returns the pane → rectangle map for the current tree, computed by
// subdividing the unit square along each split's axis by its child ratios.
// The result is cached and only recomputed after a structural change, so
// repeated directional queries between mutations are cheap. Callers must not
// mutate the returned map.
func (t *Tree) Rects() map[PaneID]Rect {
	if t.rects != nil && t.rectStructure == t.structure {
		return t.rects
	}
	m := make(map[PaneID]Rect)
	assignRects(t.root, Rect{X: 0, Y: 0, W: 1, H: 1}, m)
	t.rects = m
	t.rectStructure = t.structure
	return m
}

func assignRects(n Node, r Rect, out map[PaneID]Rect) {
	switch n := n.(type) {
	case *Leaf:
		out[n.ID] = r
	case *Split:
		offset := 0.0
		for _, c := range n.Children {
			child := r
			if n.Orientation == Vertical {
				child.X = r.X + r.W*offset
				child.W = r.W * c.Ratio
			} else {
				child.Y = r.Y + r.H*offset
				child.H = r.H * c.Ratio
			}
			assignRects(c.Node, child, out)
			offset += c.Ratio
		}
	}
}
