package layout

import (
	"math"
	"testing"
)

func TestFocusDirectionSymmetry(t *testing.T) {
	// Two-leaf vertical split: right from A reaches B, left from B reaches A.
	tr := New()
	a := tr.Focused()
	b, _ := tr.Split(a, Vertical)

	tr.Focus(a)
	if !tr.FocusDirection(Right) {
		t.Fatal("right from A found no neighbor")
	}
	if tr.Focused() != b {
		t.Errorf("focused = %d, want %d", tr.Focused(), b)
	}

	if !tr.FocusDirection(Left) {
		t.Fatal("left from B found no neighbor")
	}
	if tr.Focused() != a {
		t.Errorf("focused = %d, want %d", tr.Focused(), a)
	}
}

func TestFocusDirectionNoWraparound(t *testing.T) {
	tr := New()
	a := tr.Focused()
	tr.Split(a, Vertical)
	tr.Focus(a)

	for _, d := range []Direction{Left, Up, Down} {
		if tr.FocusDirection(d) {
			t.Errorf("focus %s from the leftmost pane should be a no-op", d)
		}
		if tr.Focused() != a {
			t.Errorf("focus moved to %d on failed %s", tr.Focused(), d)
		}
	}
}

func TestNeighborPrefersAlignment(t *testing.T) {
	// Left column A; right column split into B (top) and C (bottom).
	// From C, left must reach A; from A, right must reach B (its center is
	// as aligned as C's but B is first by list order only on exact ties —
	// build an uneven split so B is strictly better aligned).
	tr := New()
	tr.root = &Split{
		Orientation: Vertical,
		Children: []Child{
			{Node: &Leaf{ID: 1}, Ratio: 0.5},
			{Node: &Split{
				Orientation: Horizontal,
				Children: []Child{
					{Node: &Leaf{ID: 2}, Ratio: 0.8},
					{Node: &Leaf{ID: 3}, Ratio: 0.2},
				},
			}, Ratio: 0.5},
		},
	}
	tr.nextID = 4
	tr.focused = 1
	tr.structure++

	// A's center sits at y=0.5; B's center is 0.4, C's is 0.9.
	if id, ok := tr.Neighbor(Right); !ok || id != 2 {
		t.Errorf("neighbor right of A = %d, want 2 (better aligned)", id)
	}

	tr.focused = 3
	if id, ok := tr.Neighbor(Left); !ok || id != 1 {
		t.Errorf("neighbor left of C = %d, want 1", id)
	}

	tr.focused = 2
	if id, ok := tr.Neighbor(Down); !ok || id != 3 {
		t.Errorf("neighbor below B = %d, want 3", id)
	}
}

func TestNeighborTieBreaksByProximity(t *testing.T) {
	// Three columns, all full height: from the leftmost, Right must pick the
	// middle one (equal alignment, smaller gap).
	tr := New()
	tr.root = &Split{
		Orientation: Vertical,
		Children: []Child{
			{Node: &Leaf{ID: 1}, Ratio: 1.0 / 3},
			{Node: &Leaf{ID: 2}, Ratio: 1.0 / 3},
			{Node: &Leaf{ID: 3}, Ratio: 1.0 / 3},
		},
	}
	tr.nextID = 4
	tr.focused = 1
	tr.structure++

	if id, ok := tr.Neighbor(Right); !ok || id != 2 {
		t.Errorf("neighbor right = %d, want adjacent pane 2", id)
	}
}

func TestMovePaneSwapsSiblings(t *testing.T) {
	tr := New()
	a := tr.Focused()
	b, _ := tr.Split(a, Vertical)
	tr.Focus(a)

	if !tr.MovePane(Right) {
		t.Fatal("move right failed")
	}
	checkInvariants(t, tr)

	// A and B swapped; focus follows the moved pane.
	if tr.Focused() != a {
		t.Errorf("focused = %d, want moved pane %d", tr.Focused(), a)
	}
	order := tr.Leaves()
	if order[0] != b || order[1] != a {
		t.Errorf("order = %v, want [%d %d]", order, b, a)
	}

	rects := tr.Rects()
	if rects[a].X <= rects[b].X {
		t.Errorf("moved pane did not end up on the right: a=%+v b=%+v", rects[a], rects[b])
	}
}

func TestMovePaneSwapKeepsPositionRatios(t *testing.T) {
	tr := New()
	tr.root = &Split{
		Orientation: Vertical,
		Children: []Child{
			{Node: &Leaf{ID: 1}, Ratio: 0.7},
			{Node: &Leaf{ID: 2}, Ratio: 0.3},
		},
	}
	tr.nextID = 3
	tr.focused = 1
	tr.structure++

	tr.MovePane(Right)
	s := tr.root.(*Split)
	if s.Children[0].Node.(*Leaf).ID != 2 || s.Children[1].Node.(*Leaf).ID != 1 {
		t.Fatalf("children not swapped")
	}
	if math.Abs(s.Children[0].Ratio-0.7) > 1e-9 || math.Abs(s.Children[1].Ratio-0.3) > 1e-9 {
		t.Errorf("ratios moved with the nodes: %f/%f", s.Children[0].Ratio, s.Children[1].Ratio)
	}
}

func TestMovePaneAcrossSubtrees(t *testing.T) {
	// {V:[A, {H:[B, C]}]}; move A right toward B: A leaves the outer split,
	// which collapses, and lands beside B in a new vertical split.
	tr := New()
	a := tr.Focused()
	b, _ := tr.Split(a, Vertical)
	c, _ := tr.Split(b, Horizontal)
	tr.Focus(a)

	if !tr.MovePane(Right) {
		t.Fatal("move failed")
	}
	checkInvariants(t, tr)

	if tr.Focused() != a {
		t.Errorf("focused = %d, want moved pane %d", tr.Focused(), a)
	}
	if tr.Len() != 3 {
		t.Fatalf("pane count = %d, want 3", tr.Len())
	}

	rects := tr.Rects()
	ra, rb, rc := rects[a], rects[b], rects[c]

	// A sits to the right of B, inside B's former slot.
	if ra.X <= rb.X {
		t.Errorf("a=%+v not right of b=%+v", ra, rb)
	}
	if math.Abs(ra.CenterY()-rb.CenterY()) > 1e-9 {
		t.Errorf("a and b not vertically aligned: a=%+v b=%+v", ra, rb)
	}
	// C keeps the bottom half untouched.
	if rc.Y <= rb.Y {
		t.Errorf("c=%+v not below b=%+v", rc, rb)
	}
}

func TestMovePaneBeforeNeighbor(t *testing.T) {
	// Moving left must land the pane on the left side of the neighbor.
	tr := New()
	a := tr.Focused()
	b, _ := tr.Split(a, Vertical)
	tr.Split(b, Horizontal)

	// Focused is the bottom-right pane; move it left toward A.
	if !tr.MovePane(Left) {
		t.Fatal("move failed")
	}
	checkInvariants(t, tr)

	moved := tr.Focused()
	rects := tr.Rects()
	if rects[moved].X >= rects[a].X+1e-9 {
		t.Errorf("moved=%+v should be left of a=%+v", rects[moved], rects[a])
	}
}

func TestMovePaneNoNeighborIsNoOp(t *testing.T) {
	tr := New()
	a := tr.Focused()
	tr.Split(a, Vertical)
	tr.Focus(a)

	before := tr.Version()
	if tr.MovePane(Left) {
		t.Error("move with no neighbor should be a no-op")
	}
	if tr.Version() != before {
		t.Error("no-op move bumped the version")
	}
	checkInvariants(t, tr)
}
