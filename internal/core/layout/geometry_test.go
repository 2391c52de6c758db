package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/diffview/internal/core/diffmodel"
)

// rowAt builds a minimal surface row for geometry tests.
func rowAt(pos, newLine int) Row {
	return Row{Position: pos, Kind: KindChange, NewLine: newLine, Top: pos, Height: 1}
}

func TestRegions_SplitsOnPositionGaps(t *testing.T) {
	// rows matching the range sit at visual positions 5,6,7 and 10,11:
	// two maximal adjacent runs, so exactly two rectangles
	rows := []Row{
		rowAt(5, 20), rowAt(6, 21), rowAt(7, 22),
		rowAt(10, 23), rowAt(11, 24),
	}

	rects := Regions(rows, ModeUnified, diffmodel.SideNew, 20, 24, 80)
	require.Len(t, rects, 2)

	assert.Equal(t, Rect{X: 0, Y: 5, Width: 80, Height: 3}, rects[0])
	assert.Equal(t, Rect{X: 0, Y: 10, Width: 80, Height: 2}, rects[1])
}

func TestRegions_GapRowSplitsContiguousRange(t *testing.T) {
	rows := BuildRows(gapDiff(), ModeSplit)

	// new-side lines 10-13 are logically contiguous but visually broken
	// by the pure-deletion row at position 2
	rects := Regions(rows, ModeSplit, diffmodel.SideNew, 10, 13, 80)
	require.Len(t, rects, 2)

	// new side occupies the right half
	assert.Equal(t, Rect{X: 40, Y: 1, Width: 40, Height: 1}, rects[0])
	assert.Equal(t, Rect{X: 40, Y: 3, Width: 40, Height: 3}, rects[1])
}

func TestRegions_OldSideLeftHalf(t *testing.T) {
	rows := BuildRows(gapDiff(), ModeSplit)

	rects := Regions(rows, ModeSplit, diffmodel.SideOld, 10, 12, 80)
	require.Len(t, rects, 1)
	assert.Equal(t, Rect{X: 0, Y: 1, Width: 40, Height: 3}, rects[0])
}

func TestRegions_NeverCoversRowsOutsideRange(t *testing.T) {
	rows := BuildRows(gapDiff(), ModeSplit)

	rects := Regions(rows, ModeSplit, diffmodel.SideNew, 12, 13, 80)
	require.Len(t, rects, 1)

	r := rects[0]
	for _, row := range rows {
		inside := row.Top >= r.Y && row.Top < r.Y+r.Height
		inRange := row.NewLine >= 12 && row.NewLine <= 13
		if inside {
			assert.True(t, inRange, "rect covers row at position %d outside the range", row.Position)
		}
	}
}

func TestRegions_Empty(t *testing.T) {
	rows := BuildRows(gapDiff(), ModeSplit)
	assert.Nil(t, Regions(rows, ModeSplit, diffmodel.SideNew, 90, 95, 80))
	assert.Nil(t, Regions(nil, ModeSplit, diffmodel.SideNew, 1, 5, 80))
}

func TestRegions_Idempotent(t *testing.T) {
	rows := BuildRows(gapDiff(), ModeSplit)
	first := Regions(rows, ModeSplit, diffmodel.SideNew, 10, 13, 80)
	for range 3 {
		assert.Equal(t, first, Regions(rows, ModeSplit, diffmodel.SideNew, 10, 13, 80))
	}
}
