package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/diffview/internal/core/diffmodel"
)

// gapDiff produces a split surface with a pure-deletion gap in the middle
// of the new side:
//
//	pos 0  header
//	pos 1  ctx   old 10 / new 10
//	pos 2  del   old 11 / --
//	pos 3  ctx   old 12 / new 11
//	pos 4  add   --     / new 12
//	pos 5  add   --     / new 13
func gapDiff() *diffmodel.FileDiff {
	return &diffmodel.FileDiff{
		Path: "pkg/example.go",
		Hunks: []diffmodel.Hunk{{
			OldStart: 10, OldCount: 3,
			NewStart: 10, NewCount: 4,
			Segments: []diffmodel.Segment{
				{Context: []string{"c1"}},
				{Deleted: []string{"d1"}},
				{Context: []string{"c2"}},
				{Added: []string{"a1", "a2"}},
			},
		}},
	}
}

func TestBuildRows_Split(t *testing.T) {
	rows := BuildRows(gapDiff(), ModeSplit)
	require.Len(t, rows, 6)

	assert.Equal(t, KindHeader, rows[0].Kind)
	assert.Zero(t, rows[0].OldLine)
	assert.Zero(t, rows[0].NewLine)

	assert.Equal(t, 10, rows[1].OldLine)
	assert.Equal(t, 10, rows[1].NewLine)

	// pure deletion leaves a gap on the new side
	assert.Equal(t, 11, rows[2].OldLine)
	assert.Zero(t, rows[2].NewLine)
	assert.Equal(t, "d1", rows[2].OldText)

	assert.Equal(t, 12, rows[3].OldLine)
	assert.Equal(t, 11, rows[3].NewLine)

	assert.Zero(t, rows[4].OldLine)
	assert.Equal(t, 12, rows[4].NewLine)
	assert.Equal(t, 13, rows[5].NewLine)

	for i, r := range rows {
		assert.Equal(t, i, r.Position)
		assert.Equal(t, i, r.Top)
		assert.Equal(t, 1, r.Height)
	}
}

func TestBuildRows_SplitPairsChanges(t *testing.T) {
	d := &diffmodel.FileDiff{
		Hunks: []diffmodel.Hunk{{
			OldStart: 1, OldCount: 2, NewStart: 1, NewCount: 3,
			Segments: []diffmodel.Segment{
				{Deleted: []string{"d1", "d2"}, Added: []string{"a1", "a2", "a3"}},
			},
		}},
	}

	rows := BuildRows(d, ModeSplit)
	require.Len(t, rows, 4) // header + 3 paired rows

	assert.Equal(t, 1, rows[1].OldLine)
	assert.Equal(t, 1, rows[1].NewLine)
	assert.Equal(t, "d1", rows[1].OldText)
	assert.Equal(t, "a1", rows[1].NewText)

	assert.Equal(t, 2, rows[2].OldLine)
	assert.Equal(t, 2, rows[2].NewLine)

	assert.Zero(t, rows[3].OldLine)
	assert.Equal(t, 3, rows[3].NewLine)
}

func TestBuildRows_Unified(t *testing.T) {
	rows := BuildRows(gapDiff(), ModeUnified)
	require.Len(t, rows, 6)

	// deletions render before additions
	assert.Equal(t, 11, rows[2].OldLine)
	assert.Zero(t, rows[2].NewLine)
	assert.Equal(t, 12, rows[4].NewLine)
	assert.Zero(t, rows[4].OldLine)
}

func TestBuildRows_Nil(t *testing.T) {
	assert.Nil(t, BuildRows(nil, ModeSplit))
}

func TestRowsForRange(t *testing.T) {
	rows := BuildRows(gapDiff(), ModeSplit)

	refs := RowsForRange(rows, diffmodel.SideNew, 10, 13)
	require.Len(t, refs, 4)
	assert.Equal(t, []int{1, 3, 4, 5}, positions(refs))
	assert.Equal(t, 10, refs[0].Line)
	assert.Equal(t, 13, refs[3].Line)

	// reversed bounds normalize
	assert.Equal(t, refs, RowsForRange(rows, diffmodel.SideNew, 13, 10))

	// old side: the gap row participates, the addition rows do not
	refs = RowsForRange(rows, diffmodel.SideOld, 10, 12)
	assert.Equal(t, []int{1, 2, 3}, positions(refs))

	assert.Empty(t, RowsForRange(rows, diffmodel.SideNew, 50, 60))
}

func positions(refs []RowRef) []int {
	out := make([]int, len(refs))
	for i, r := range refs {
		out[i] = r.Position
	}
	return out
}

func TestCoordinateAt_LeftInverse(t *testing.T) {
	for _, mode := range []Mode{ModeSplit, ModeUnified} {
		rows := BuildRows(gapDiff(), mode)
		for _, side := range []diffmodel.Side{diffmodel.SideOld, diffmodel.SideNew} {
			for _, r := range rows {
				line := r.Line(side)
				if line == 0 {
					continue
				}
				found, ok := RowForLine(rows, side, line)
				require.True(t, ok, "mode=%v side=%v line=%d", mode, side, line)
				assert.Equal(t, line, found.Line(side))
			}
		}
	}
}

func TestCoordinateAt_SplitNeverSnapsSides(t *testing.T) {
	rows := BuildRows(gapDiff(), ModeSplit)

	// row 2 is a pure deletion: targeting the new column resolves nothing
	_, _, ok := CoordinateAt(rows[2], ModeSplit, diffmodel.SideNew)
	assert.False(t, ok)

	side, line, ok := CoordinateAt(rows[2], ModeSplit, diffmodel.SideOld)
	require.True(t, ok)
	assert.Equal(t, diffmodel.SideOld, side)
	assert.Equal(t, 11, line)
}

func TestCoordinateAt_UnifiedPrefersNew(t *testing.T) {
	rows := BuildRows(gapDiff(), ModeUnified)

	// context row carries both numbers; new wins
	side, line, ok := CoordinateAt(rows[1], ModeUnified, diffmodel.SideOld)
	require.True(t, ok)
	assert.Equal(t, diffmodel.SideNew, side)
	assert.Equal(t, 10, line)

	// pure deletion row falls back to old
	side, line, ok = CoordinateAt(rows[2], ModeUnified, diffmodel.SideNew)
	require.True(t, ok)
	assert.Equal(t, diffmodel.SideOld, side)
	assert.Equal(t, 11, line)

	// header rows have no coordinate
	_, _, ok = CoordinateAt(rows[0], ModeUnified, diffmodel.SideNew)
	assert.False(t, ok)
}

func TestParseLineNumber(t *testing.T) {
	tests := []struct {
		label string
		want  int
		ok    bool
	}{
		{"42", 42, true},
		{"  42  ", 42, true},
		{"+42", 42, true},
		{"-42", 42, true},
		{" + 42", 42, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"4a", 0, false},
		{"0", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := ParseLineNumber(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
