package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/diffview/internal/core/blocks"
)

func writeTarget(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSpliceFile_RemoveAddedLines(t *testing.T) {
	path := writeTarget(t, "a\nb\nnew1\nnew2\nc\n")

	err := spliceFile(path, blocks.RevertInstruction{
		NewFileLineStart:         3,
		NewFileLineCountToRemove: 2,
		OriginalLinesToInsert:    []string{},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", string(data))
}

func TestSpliceFile_ReplaceWithOriginal(t *testing.T) {
	path := writeTarget(t, "a\nchanged\nc\n")

	err := spliceFile(path, blocks.RevertInstruction{
		NewFileLineStart:         2,
		NewFileLineCountToRemove: 1,
		OriginalLinesToInsert:    []string{"old1", "old2"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nold1\nold2\nc\n", string(data))
}

func TestSpliceFile_InsertOnly(t *testing.T) {
	// reverting a pure deletion: nothing removed, originals restored at
	// the position they held
	path := writeTarget(t, "a\nd\n")

	err := spliceFile(path, blocks.RevertInstruction{
		NewFileLineStart:         2,
		NewFileLineCountToRemove: 0,
		OriginalLinesToInsert:    []string{"b", "c"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\nd\n", string(data))
}

func TestSpliceFile_NoTrailingNewlinePreserved(t *testing.T) {
	path := writeTarget(t, "a\nb")

	err := spliceFile(path, blocks.RevertInstruction{
		NewFileLineStart:         2,
		NewFileLineCountToRemove: 1,
		OriginalLinesToInsert:    []string{"z"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nz", string(data))
}

func TestSpliceFile_OutOfBounds(t *testing.T) {
	path := writeTarget(t, "a\nb\n")

	err := spliceFile(path, blocks.RevertInstruction{
		NewFileLineStart:         2,
		NewFileLineCountToRemove: 5,
		OriginalLinesToInsert:    []string{},
	})
	require.Error(t, err)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "a\nb\n", string(data), "failed splice leaves the target untouched")
}

func TestSpliceFile_MissingTarget(t *testing.T) {
	err := spliceFile(filepath.Join(t.TempDir(), "absent.txt"), blocks.RevertInstruction{
		NewFileLineStart:         1,
		NewFileLineCountToRemove: 0,
		OriginalLinesToInsert:    []string{"x"},
	})
	assert.Error(t, err)
}
