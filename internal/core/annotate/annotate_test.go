package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/diffview/internal/core/blocks"
	"github.com/colonyops/diffview/internal/core/comments"
	"github.com/colonyops/diffview/internal/core/diffmodel"
	"github.com/colonyops/diffview/internal/core/selection"
)

func blockSet() *blocks.Set {
	return blocks.Segment([]diffmodel.Hunk{{
		OldStart: 4, OldCount: 1, NewStart: 4, NewCount: 4,
		Segments: []diffmodel.Segment{
			{Context: []string{"keep"}},
			{Added: []string{"a", "b", "c"}},
		},
	}})
}

func TestBuild_CommentsAnchorAtEndLine(t *testing.T) {
	c := comments.NewComment("a.go", diffmodel.SideNew, 3, 6, "", "range note")
	r := Build([]comments.DiffComment{c}, nil, nil, Options{Comments: true})

	require.Equal(t, 1, r.Len())
	assert.Empty(t, r.At(diffmodel.SideNew, 3))

	got := r.At(diffmodel.SideNew, 6)
	require.Len(t, got, 1)
	assert.Equal(t, KindComment, got[0].Kind)
	assert.Equal(t, c.ID, got[0].CommentID)
}

func TestBuild_CompletedSelectionContributesForm(t *testing.T) {
	sel := &selection.Range{StartLine: 3, EndLine: 6, Side: diffmodel.SideNew}
	r := Build(nil, sel, nil, Options{Comments: true})

	got := r.At(diffmodel.SideNew, 6)
	require.Len(t, got, 1)
	assert.Equal(t, KindForm, got[0].Kind)
}

func TestBuild_ActiveSelectionContributesNothing(t *testing.T) {
	sel := &selection.Range{StartLine: 3, EndLine: 6, Side: diffmodel.SideNew, Active: true}
	r := Build(nil, sel, nil, Options{Comments: true})
	assert.Zero(t, r.Len())
}

func TestBuild_BlockActionsAtAnchorLine(t *testing.T) {
	r := Build(nil, nil, blockSet(), Options{BlockActions: true})

	got := r.At(diffmodel.SideNew, 4)
	require.Len(t, got, 1)
	assert.Equal(t, KindBlockAction, got[0].Kind)
	assert.Equal(t, 1, got[0].BlockID)
}

func TestBuild_CollisionsKeepRegistrationOrder(t *testing.T) {
	// comment ending at line 4, form ending at line 4, block anchored at 4
	c := comments.NewComment("a.go", diffmodel.SideNew, 2, 4, "", "note")
	sel := &selection.Range{StartLine: 3, EndLine: 4, Side: diffmodel.SideNew}

	r := Build([]comments.DiffComment{c}, sel, blockSet(), Options{Comments: true, BlockActions: true})

	got := r.At(diffmodel.SideNew, 4)
	require.Len(t, got, 3, "collisions must not drop anchors")
	assert.Equal(t, KindComment, got[0].Kind)
	assert.Equal(t, KindForm, got[1].Kind)
	assert.Equal(t, KindBlockAction, got[2].Kind)
}

func TestBuild_DeletedCommentLeavesNoAnchor(t *testing.T) {
	c := comments.NewComment("a.go", diffmodel.SideNew, 3, 6, "", "only one")
	r := Build([]comments.DiffComment{c}, nil, nil, Options{Comments: true})
	require.Len(t, r.At(diffmodel.SideNew, 6), 1)

	// registry rebuilt after the comment is deleted
	r = Build(nil, nil, nil, Options{Comments: true})
	assert.Empty(t, r.At(diffmodel.SideNew, 6), "no empty placeholder left behind")
	assert.Zero(t, r.Len())
}

func TestBuild_OptionsGateClasses(t *testing.T) {
	c := comments.NewComment("a.go", diffmodel.SideNew, 3, 6, "", "note")
	r := Build([]comments.DiffComment{c}, nil, blockSet(), Options{})
	assert.Zero(t, r.Len())
}
