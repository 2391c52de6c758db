package layout

import "github.com/colonyops/diffview/internal/core/diffmodel"

// Rect is one rectangular highlight region in surface cells.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Regions computes the disjoint rectangles covering a line range on the
// given side. Rows are grouped by visual-position adjacency, not by line
// number: a contiguous logical range can be visually discontinuous when a
// gap row sits inside it, and each maximal run of adjacent positions
// yields its own rectangle. Split sides occupy half the surface width,
// unified the full width. Safe to call redundantly; no state accumulates.
func Regions(rows []Row, mode Mode, side diffmodel.Side, start, end, surfaceWidth int) []Rect {
	refs := RowsForRange(rows, side, start, end)
	if len(refs) == 0 {
		return nil
	}

	x, width := 0, surfaceWidth
	if mode == ModeSplit {
		width = surfaceWidth / 2
		if side == diffmodel.SideNew {
			x = width
			width = surfaceWidth - x
		}
	}

	var rects []Rect
	runStart := 0
	flush := func(from, to int) {
		first, last := refs[from].Row, refs[to].Row
		rects = append(rects, Rect{
			X:      x,
			Y:      first.Top,
			Width:  width,
			Height: last.Top + last.Height - first.Top,
		})
	}

	for i := 1; i < len(refs); i++ {
		if refs[i].Position != refs[i-1].Position+1 {
			flush(runStart, i-1)
			runStart = i
		}
	}
	flush(runStart, len(refs)-1)

	return rects
}
