package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/diffview/internal/core/diffmodel"
)

// mixedHunk: context(10,11) del(12,13)+add(12..14) context(15/14) add(15..16)
func mixedHunk() diffmodel.Hunk {
	return diffmodel.Hunk{
		OldStart: 10, OldCount: 5,
		NewStart: 10, NewCount: 8,
		Segments: []diffmodel.Segment{
			{Context: []string{"a", "b"}},
			{Deleted: []string{"old one", "old two"}, Added: []string{"new one", "new two", "new three"}},
			{Context: []string{"c"}},
			{Added: []string{"tail one", "tail two"}},
		},
	}
}

func TestSegment_Mixed(t *testing.T) {
	set := Segment([]diffmodel.Hunk{mixedHunk()})
	require.Equal(t, 2, set.Len())

	b1, ok := set.Block(1)
	require.True(t, ok)
	assert.Equal(t, diffmodel.SideNew, b1.Side)
	assert.Equal(t, 12, b1.FirstLine)
	assert.Equal(t, 14, b1.LastLine)
	assert.Equal(t, 3, b1.AddCount)
	assert.Equal(t, 2, b1.DeleteCount)
	assert.Equal(t, []string{"old one", "old two"}, b1.OldLines)
	assert.Equal(t, 11, b1.AnchorLine, "anchored at last context line before the change")

	b2, ok := set.Block(2)
	require.True(t, ok)
	assert.Equal(t, diffmodel.SideNew, b2.Side)
	assert.Equal(t, 16, b2.FirstLine)
	assert.Equal(t, 17, b2.LastLine)
	assert.Zero(t, b2.DeleteCount)
	assert.Equal(t, 15, b2.AnchorLine)
}

func TestSegment_Lossless(t *testing.T) {
	hunks := []diffmodel.Hunk{
		mixedHunk(),
		{
			OldStart: 40, OldCount: 4, NewStart: 42, NewCount: 1,
			Segments: []diffmodel.Segment{
				{Context: []string{"x"}},
				{Deleted: []string{"d1", "d2", "d3"}},
			},
		},
	}

	wantAdd, wantDel := 0, 0
	for _, h := range hunks {
		wantAdd += h.Additions()
		wantDel += h.Deletions()
	}

	gotAdd, gotDel := 0, 0
	for _, b := range Segment(hunks).Blocks() {
		gotAdd += b.AddCount
		gotDel += b.DeleteCount
	}
	assert.Equal(t, wantAdd, gotAdd)
	assert.Equal(t, wantDel, gotDel)
}

func TestSegment_PureDeletion(t *testing.T) {
	set := Segment([]diffmodel.Hunk{{
		OldStart: 40, OldCount: 4, NewStart: 42, NewCount: 1,
		Segments: []diffmodel.Segment{
			{Context: []string{"x"}},
			{Deleted: []string{"d1", "d2", "d3"}},
		},
	}})
	require.Equal(t, 1, set.Len())

	b, _ := set.Block(1)
	assert.Equal(t, diffmodel.SideOld, b.Side)
	assert.Equal(t, 41, b.FirstLine)
	assert.Equal(t, 43, b.LastLine)
	assert.Equal(t, 40, b.AnchorLine)

	// reverting a pure deletion removes nothing and re-inserts the old text
	instr, ok := set.Revert(b.ID)
	require.True(t, ok)
	assert.Equal(t, 43, instr.NewFileLineStart)
	assert.Zero(t, instr.NewFileLineCountToRemove)
	assert.Equal(t, []string{"d1", "d2", "d3"}, instr.OriginalLinesToInsert)
}

func TestRevert_PureAddition(t *testing.T) {
	set := Segment([]diffmodel.Hunk{{
		OldStart: 4, OldCount: 1, NewStart: 4, NewCount: 4,
		Segments: []diffmodel.Segment{
			{Context: []string{"keep"}},
			{Added: []string{"a", "b", "c"}},
		},
	}})

	instr, ok := set.Revert(1)
	require.True(t, ok)
	assert.Equal(t, RevertInstruction{
		NewFileLineStart:         5,
		NewFileLineCountToRemove: 3,
		OriginalLinesToInsert:    []string{},
	}, instr)
}

func TestRevert_UnknownID(t *testing.T) {
	set := Segment([]diffmodel.Hunk{mixedHunk()})
	_, ok := set.Revert(99)
	assert.False(t, ok)
	_, ok = set.Revert(0)
	assert.False(t, ok)
}

func TestBlockAt(t *testing.T) {
	set := Segment([]diffmodel.Hunk{mixedHunk()})

	b, ok := set.BlockAt(diffmodel.SideNew, 13)
	require.True(t, ok)
	assert.Equal(t, 1, b.ID)

	b, ok = set.BlockAt(diffmodel.SideOld, 12)
	require.True(t, ok)
	assert.Equal(t, 1, b.ID, "deleted lines index to the same block")

	_, ok = set.BlockAt(diffmodel.SideNew, 10)
	assert.False(t, ok, "context lines belong to no block")

	_, ok = set.BlockAt(diffmodel.SideNew, 999)
	assert.False(t, ok)
}

func TestSegment_Empty(t *testing.T) {
	assert.Zero(t, Segment(nil).Len())

	// pure-context hunk is skipped, not an error
	set := Segment([]diffmodel.Hunk{{
		OldStart: 1, OldCount: 2, NewStart: 1, NewCount: 2,
		Segments: []diffmodel.Segment{{Context: []string{"a", "b"}}},
	}})
	assert.Zero(t, set.Len())
}
