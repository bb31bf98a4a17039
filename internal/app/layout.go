package app

import (
	"math"

	"github.com/pfassina/loom/internal/layout"
)

// cellRect is a pane's footprint in terminal cells.
type cellRect struct {
	X, Y, W, H int
}

// scaleRect maps a unit-square rectangle onto a width x height cell grid.
// Edges are rounded independently so panes sharing an edge in the unit
// square share it in cells too; the grid tiles without gaps or overlap.
func scaleRect(r layout.Rect, width, height int) cellRect {
	x0 := int(math.Round(r.X * float64(width)))
	x1 := int(math.Round(r.Right() * float64(width)))
	y0 := int(math.Round(r.Y * float64(height)))
	y1 := int(math.Round(r.Bottom() * float64(height)))
	return cellRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// scalePanes computes the cell footprint for every pane. During live
// resizes some terminals momentarily report 0 (or even negative)
// dimensions; clamp to avoid propagating invalid sizes into panes.
func scalePanes(rects map[layout.PaneID]layout.Rect, width, height int) map[layout.PaneID]cellRect {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	cells := make(map[layout.PaneID]cellRect, len(rects))
	for id, r := range rects {
		cells[id] = scaleRect(r, width, height)
	}
	return cells
}

// innerSize returns the content area inside a pane's border and title row.
func innerSize(c cellRect) (w, h int) {
	w = c.W - 2
	h = c.H - 3 // top/bottom border + title row
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
