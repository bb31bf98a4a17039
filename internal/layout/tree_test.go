package layout

import (
	"math"
	"testing"
)

// checkInvariants walks the tree verifying split arity, ratio sums, unique
// pane IDs, and that focused/zoomed name existing leaves.
func checkInvariants(t *testing.T, tr *Tree) {
	t.Helper()

	seen := map[PaneID]bool{}
	var walk func(n Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *Leaf:
			if seen[n.ID] {
				t.Fatalf("duplicate pane id %d", n.ID)
			}
			seen[n.ID] = true
		case *Split:
			if len(n.Children) < 2 {
				t.Fatalf("split with %d children", len(n.Children))
			}
			sum := 0.0
			for _, c := range n.Children {
				if c.Ratio <= 0 {
					t.Fatalf("non-positive ratio %f", c.Ratio)
				}
				sum += c.Ratio
				walk(c.Node)
			}
			if math.Abs(sum-1) > 1e-6 {
				t.Fatalf("ratios sum to %f", sum)
			}
		}
	}
	walk(tr.root)

	if !seen[tr.Focused()] {
		t.Fatalf("focused pane %d does not exist", tr.Focused())
	}
	if z := tr.Zoomed(); z != 0 && !seen[z] {
		t.Fatalf("zoomed pane %d does not exist", z)
	}
}

func TestNew(t *testing.T) {
	tr := New()
	checkInvariants(t, tr)

	if got := tr.Leaves(); len(got) != 1 {
		t.Fatalf("new tree has %d leaves, want 1", len(got))
	}
	if tr.Focused() != 1 {
		t.Errorf("focused = %d, want 1", tr.Focused())
	}
}

func TestSplitFocusesNewPane(t *testing.T) {
	tr := New()
	id, ok := tr.Split(tr.Focused(), Vertical)
	if !ok {
		t.Fatal("split failed")
	}
	checkInvariants(t, tr)

	if tr.Focused() != id {
		t.Errorf("focused = %d, want new pane %d", tr.Focused(), id)
	}
	s, ok := tr.root.(*Split)
	if !ok {
		t.Fatal("root is not a split")
	}
	if s.Children[0].Ratio != 0.5 || s.Children[1].Ratio != 0.5 {
		t.Errorf("ratios = %f/%f, want 0.5/0.5", s.Children[0].Ratio, s.Children[1].Ratio)
	}
}

func TestSplitUnknownPane(t *testing.T) {
	tr := New()
	if _, ok := tr.Split(99, Vertical); ok {
		t.Error("split of unknown pane should be a no-op")
	}
	if tr.Len() != 1 {
		t.Errorf("leaf count = %d, want 1", tr.Len())
	}
}

func TestCloseRoundTrip(t *testing.T) {
	// split(A, V) then close(new) restores the single-leaf tree with A's
	// full share.
	tr := New()
	a := tr.Focused()
	b, _ := tr.Split(a, Vertical)

	if !tr.Close(b) {
		t.Fatal("close failed")
	}
	checkInvariants(t, tr)

	leaf, ok := tr.root.(*Leaf)
	if !ok {
		t.Fatal("root did not collapse back to a leaf")
	}
	if leaf.ID != a {
		t.Errorf("surviving leaf = %d, want %d", leaf.ID, a)
	}
	if tr.Focused() != a {
		t.Errorf("focused = %d, want %d", tr.Focused(), a)
	}
	if r := tr.Rects()[a]; r.W != 1 || r.H != 1 {
		t.Errorf("surviving pane rect = %+v, want unit square", r)
	}
}

func TestCloseLastPaneIsNoOp(t *testing.T) {
	tr := New()
	if tr.Close(tr.Focused()) {
		t.Error("closing the only pane should report false")
	}
	if tr.Len() != 1 {
		t.Errorf("leaf count = %d, want 1", tr.Len())
	}
}

func TestCloseRenormalizesProportionally(t *testing.T) {
	// Build a three-way split by hand to exercise the 1/(1-r) scaling with
	// uneven ratios.
	tr := New()
	tr.root = &Split{
		Orientation: Vertical,
		Children: []Child{
			{Node: &Leaf{ID: 1}, Ratio: 0.5},
			{Node: &Leaf{ID: 2}, Ratio: 0.3},
			{Node: &Leaf{ID: 3}, Ratio: 0.2},
		},
	}
	tr.nextID = 4
	tr.focused = 1
	tr.structure++

	if !tr.Close(2) {
		t.Fatal("close failed")
	}
	checkInvariants(t, tr)

	s := tr.root.(*Split)
	want := []float64{0.5 / 0.7, 0.2 / 0.7}
	for i, c := range s.Children {
		if math.Abs(c.Ratio-want[i]) > 1e-9 {
			t.Errorf("child %d ratio = %f, want %f", i, c.Ratio, want[i])
		}
	}
}

func TestCloseScenario(t *testing.T) {
	// A only → split V → split H → close → back to {V:[A,B]}, focused B.
	tr := New()
	a := tr.Focused()

	b, _ := tr.Split(a, Vertical)
	if tr.Focused() != b {
		t.Fatalf("focused = %d after first split, want %d", tr.Focused(), b)
	}

	c, _ := tr.Split(b, Horizontal)
	if tr.Focused() != c {
		t.Fatalf("focused = %d after second split, want %d", tr.Focused(), c)
	}
	checkInvariants(t, tr)

	if !tr.Close(c) {
		t.Fatal("close failed")
	}
	checkInvariants(t, tr)

	if tr.Focused() != b {
		t.Errorf("focused = %d after close, want sibling %d", tr.Focused(), b)
	}

	s, ok := tr.root.(*Split)
	if !ok {
		t.Fatal("root is not a split after collapse")
	}
	if s.Orientation != Vertical || len(s.Children) != 2 {
		t.Fatalf("root = %s/%d children, want vertical/2", s.Orientation, len(s.Children))
	}
	for i, c := range s.Children {
		if math.Abs(c.Ratio-0.5) > 1e-9 {
			t.Errorf("child %d ratio = %f, want 0.5", i, c.Ratio)
		}
		if _, isLeaf := c.Node.(*Leaf); !isLeaf {
			t.Errorf("child %d is not a leaf after collapse", i)
		}
	}
}

func TestCloseFocusFallsBackToPrevious(t *testing.T) {
	tr := New()
	a := tr.Focused()
	b, _ := tr.Split(a, Vertical)

	// b is last in list order; closing it must focus the previous sibling.
	c, _ := tr.Split(b, Vertical)
	if !tr.Close(c) {
		t.Fatal("close failed")
	}
	if tr.Focused() != b {
		t.Errorf("focused = %d, want previous sibling %d", tr.Focused(), b)
	}
}

func TestCloseUnfocusedKeepsFocus(t *testing.T) {
	tr := New()
	a := tr.Focused()
	b, _ := tr.Split(a, Vertical)

	if !tr.Close(a) {
		t.Fatal("close failed")
	}
	if tr.Focused() != b {
		t.Errorf("focused = %d, want untouched %d", tr.Focused(), b)
	}
}

func TestBalanceIdempotent(t *testing.T) {
	tr := New()
	tr.Split(tr.Focused(), Vertical)
	tr.Split(tr.Focused(), Horizontal)
	tr.Split(tr.Focused(), Vertical)

	// Skew some ratios first.
	s := tr.root.(*Split)
	s.Children[0].Ratio = 0.7
	s.Children[1].Ratio = 0.3

	tr.Balance()
	checkInvariants(t, tr)
	first := tr.Rects()

	tr.Balance()
	second := tr.Rects()

	for id, r := range first {
		if r != second[id] {
			t.Errorf("pane %d rect changed across second balance: %+v vs %+v", id, r, second[id])
		}
	}
}

func TestJumpToPane(t *testing.T) {
	tr := New()
	a := tr.Focused()
	b, _ := tr.Split(a, Vertical)
	c, _ := tr.Split(b, Horizontal)

	order := tr.Leaves()
	want := []PaneID{a, b, c}
	if len(order) != len(want) {
		t.Fatalf("leaves = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("leaves = %v, want %v", order, want)
		}
	}

	tests := []struct {
		n    int
		want PaneID
		ok   bool
	}{
		{1, a, true},
		{2, b, true},
		{3, c, true},
		{0, c, false}, // focus unchanged from previous case
		{4, c, false},
		{9, c, false},
	}
	for _, tt := range tests {
		got := tr.JumpToPane(tt.n)
		if got != tt.ok {
			t.Errorf("JumpToPane(%d) = %v, want %v", tt.n, got, tt.ok)
		}
		if tr.Focused() != tt.want {
			t.Errorf("after JumpToPane(%d) focused = %d, want %d", tt.n, tr.Focused(), tt.want)
		}
	}
}

func TestToggleZoom(t *testing.T) {
	tr := New()
	a := tr.Focused()
	b, _ := tr.Split(a, Vertical)

	if !tr.ToggleZoom(b) {
		t.Fatal("zoom on failed")
	}
	if tr.Zoomed() != b {
		t.Errorf("zoomed = %d, want %d", tr.Zoomed(), b)
	}

	// Zoom is orthogonal: the tree still mutates underneath.
	c, _ := tr.Split(b, Horizontal)
	if tr.Zoomed() != b {
		t.Errorf("zoom lost across split: %d", tr.Zoomed())
	}
	if tr.Focused() != c {
		t.Errorf("focused = %d, want %d", tr.Focused(), c)
	}

	if !tr.ToggleZoom(tr.Focused()) {
		t.Fatal("zoom off failed")
	}
	if tr.Zoomed() != 0 {
		t.Errorf("zoomed = %d after toggle off, want 0", tr.Zoomed())
	}
	checkInvariants(t, tr)
}

func TestCloseZoomedPaneClearsZoom(t *testing.T) {
	tr := New()
	b, _ := tr.Split(tr.Focused(), Vertical)
	tr.ToggleZoom(b)

	tr.Close(b)
	if tr.Zoomed() != 0 {
		t.Errorf("zoomed = %d after closing zoomed pane, want 0", tr.Zoomed())
	}
	checkInvariants(t, tr)
}

func TestInvariantsUnderOperationSequence(t *testing.T) {
	// A deterministic grind across every public operation.
	tr := New()
	dirs := []Direction{Left, Down, Up, Right}
	for i := 0; i < 50; i++ {
		switch i % 7 {
		case 0, 1:
			tr.Split(tr.Focused(), Orientation(i%2))
		case 2:
			tr.Close(tr.Focused())
		case 3:
			tr.Balance()
		case 4:
			tr.FocusDirection(dirs[i%4])
		case 5:
			tr.MovePane(dirs[(i+1)%4])
		case 6:
			tr.JumpToPane(i % 5)
		}
		checkInvariants(t, tr)
	}
}
