package diffmodel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePatch = strings.Join([]string{
	"diff --git a/greet.go b/greet.go",
	"index 1111111..2222222 100644",
	"--- a/greet.go",
	"+++ b/greet.go",
	"@@ -1,5 +1,6 @@",
	" package main",
	" ",
	"-func greet() string {",
	"-\treturn \"hi\"",
	"+func greet(name string) string {",
	"+\treturn \"hi \" + name",
	" }",
	"+",
	"",
}, "\n")

func TestParsePatch(t *testing.T) {
	diffs, err := ParsePatch(strings.NewReader(samplePatch))
	require.NoError(t, err)
	require.Len(t, diffs, 1)

	fd := diffs[0]
	assert.Equal(t, "greet.go", fd.Path)
	require.Len(t, fd.Hunks, 1)

	h := fd.Hunks[0]
	assert.Equal(t, 1, h.OldStart)
	assert.Equal(t, 5, h.OldCount)
	assert.Equal(t, 1, h.NewStart)
	assert.Equal(t, 6, h.NewCount)

	// context, change, context, change
	require.Len(t, h.Segments, 4)
	assert.True(t, h.Segments[0].IsContext())
	assert.Equal(t, []string{"package main", ""}, h.Segments[0].Context)

	change := h.Segments[1]
	assert.False(t, change.IsContext())
	assert.Equal(t, []string{"func greet() string {", "\treturn \"hi\""}, change.Deleted)
	assert.Equal(t, []string{"func greet(name string) string {", "\treturn \"hi \" + name"}, change.Added)

	assert.True(t, h.Segments[2].IsContext())
	assert.Equal(t, []string{"}"}, h.Segments[2].Context)

	tail := h.Segments[3]
	assert.Empty(t, tail.Deleted)
	assert.Equal(t, []string{""}, tail.Added)
}

func TestParsePatch_NoFiles(t *testing.T) {
	// gitdiff skips leading garbage looking for a file header; input with
	// no recognizable files parses to an empty set, not an error
	diffs, err := ParsePatch(strings.NewReader("@@ not a patch"))
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestFileDiff_Stats(t *testing.T) {
	diffs, err := ParsePatch(strings.NewReader(samplePatch))
	require.NoError(t, err)

	add, del := diffs[0].Stats()
	assert.Equal(t, 3, add)
	assert.Equal(t, 2, del)

	var nilDiff *FileDiff
	add, del = nilDiff.Stats()
	assert.Zero(t, add)
	assert.Zero(t, del)
}

func TestSide_RoundTrip(t *testing.T) {
	assert.Equal(t, "old", SideOld.String())
	assert.Equal(t, "new", SideNew.String())
	assert.Equal(t, SideOld, ParseSide("old"))
	assert.Equal(t, SideNew, ParseSide("new"))
	assert.Equal(t, SideNew, ParseSide("bogus"))
}

func TestFromGitDiff_Nil(t *testing.T) {
	assert.Nil(t, FromGitDiff(nil))
}
