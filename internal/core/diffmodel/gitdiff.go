package diffmodel

import (
	"fmt"
	"io"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// FromGitDiff converts a parsed gitdiff file into the engine's hunk model.
// Binary files and nil inputs yield nil (no diff available).
func FromGitDiff(f *gitdiff.File) *FileDiff {
	if f == nil || f.IsBinary {
		return nil
	}

	path := f.NewName
	if path == "" {
		path = f.OldName
	}

	fd := &FileDiff{Path: path}
	for _, frag := range f.TextFragments {
		if frag == nil {
			continue
		}
		fd.Hunks = append(fd.Hunks, fragmentToHunk(frag))
	}

	return fd
}

func fragmentToHunk(frag *gitdiff.TextFragment) Hunk {
	h := Hunk{
		OldStart: int(frag.OldPosition),
		OldCount: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewCount: int(frag.NewLines),
	}

	var ctx, del, add []string
	flushContext := func() {
		if len(ctx) > 0 {
			h.Segments = append(h.Segments, Segment{Context: ctx})
			ctx = nil
		}
	}
	flushChange := func() {
		if len(del) > 0 || len(add) > 0 {
			h.Segments = append(h.Segments, Segment{Deleted: del, Added: add})
			del, add = nil, nil
		}
	}

	for _, line := range frag.Lines {
		text := strings.TrimSuffix(line.Line, "\n")
		switch line.Op {
		case gitdiff.OpContext:
			flushChange()
			ctx = append(ctx, text)
		case gitdiff.OpDelete:
			flushContext()
			del = append(del, text)
		case gitdiff.OpAdd:
			flushContext()
			add = append(add, text)
		}
	}
	flushChange()
	flushContext()

	return h
}

// ParsePatch reads a unified or git patch stream and returns one FileDiff
// per changed text file. Binary entries are skipped.
func ParsePatch(r io.Reader) ([]*FileDiff, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse patch: %w", err)
	}

	diffs := make([]*FileDiff, 0, len(files))
	for _, f := range files {
		if fd := FromGitDiff(f); fd != nil {
			diffs = append(diffs, fd)
		}
	}

	return diffs, nil
}
