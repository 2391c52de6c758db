// Package blocks partitions hunks into contiguous change blocks, the unit
// of hover actions and revert computation.
package blocks

import "github.com/colonyops/diffview/internal/core/diffmodel"

// ChangeBlock is one maximal contiguous run of added/deleted lines.
// IDs are a regenerated sequence: stale sets are discarded wholesale on
// recomputation, so nothing durable may reference a block id.
type ChangeBlock struct {
	ID          int
	Side        diffmodel.Side
	FirstLine   int // first changed line on Side
	LastLine    int // last changed line on Side
	AddCount    int
	DeleteCount int
	OldLines    []string // verbatim deleted text, revert payload
	AnchorLine  int      // last context line on Side before the block
	NewStart    int      // new-file line where the block's content begins
}

// RevertInstruction restores original content for one block: starting at
// NewFileLineStart in the current (post-diff) file, remove
// NewFileLineCountToRemove lines and insert OriginalLinesToInsert.
type RevertInstruction struct {
	NewFileLineStart         int
	NewFileLineCountToRemove int
	OriginalLinesToInsert    []string
}

type lineKey struct {
	side diffmodel.Side
	line int
}

// Set holds the blocks for one file-diff instance plus a per-line index.
type Set struct {
	blocks []ChangeBlock
	index  map[lineKey]int
}

// Segment walks the hunks and builds a fresh block set. An empty or nil
// hunk list is valid input and produces an empty set.
func Segment(hunks []diffmodel.Hunk) *Set {
	set := &Set{index: make(map[lineKey]int)}

	for _, h := range hunks {
		if h.Additions() == 0 && h.Deletions() == 0 {
			continue
		}

		addLine := h.NewStart
		delLine := h.OldStart
		lastCtxAdd := h.NewStart - 1
		lastCtxDel := h.OldStart - 1

		for _, seg := range h.Segments {
			if seg.IsContext() {
				n := len(seg.Context)
				addLine += n
				delLine += n
				lastCtxAdd = addLine - 1
				lastCtxDel = delLine - 1
				continue
			}

			addCount := len(seg.Added)
			delCount := len(seg.Deleted)
			if addCount == 0 && delCount == 0 {
				continue
			}

			b := ChangeBlock{
				ID:          len(set.blocks) + 1,
				AddCount:    addCount,
				DeleteCount: delCount,
				OldLines:    seg.Deleted,
				NewStart:    addLine,
			}
			if addCount > 0 {
				b.Side = diffmodel.SideNew
				b.FirstLine = addLine
				b.LastLine = addLine + addCount - 1
				b.AnchorLine = lastCtxAdd
			} else {
				b.Side = diffmodel.SideOld
				b.FirstLine = delLine
				b.LastLine = delLine + delCount - 1
				b.AnchorLine = lastCtxDel
			}

			for i := range addCount {
				set.index[lineKey{diffmodel.SideNew, addLine + i}] = b.ID
			}
			for i := range delCount {
				set.index[lineKey{diffmodel.SideOld, delLine + i}] = b.ID
			}

			set.blocks = append(set.blocks, b)
			addLine += addCount
			delLine += delCount
		}
	}

	return set
}

// Blocks returns all blocks in diff order.
func (s *Set) Blocks() []ChangeBlock {
	if s == nil {
		return nil
	}
	return s.blocks
}

// Len returns the number of blocks in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.blocks)
}

// Block looks up a block by id.
func (s *Set) Block(id int) (ChangeBlock, bool) {
	if s == nil || id < 1 || id > len(s.blocks) {
		return ChangeBlock{}, false
	}
	return s.blocks[id-1], true
}

// BlockAt returns the block containing the given changed line, if any.
// Context lines belong to no block.
func (s *Set) BlockAt(side diffmodel.Side, line int) (ChangeBlock, bool) {
	if s == nil {
		return ChangeBlock{}, false
	}
	id, ok := s.index[lineKey{side, line}]
	if !ok {
		return ChangeBlock{}, false
	}
	return s.blocks[id-1], true
}

// Revert computes the line-replacement instruction for a block. An unknown
// id returns false: stale sets raced with a click are a no-op, not an error.
func (s *Set) Revert(id int) (RevertInstruction, bool) {
	b, ok := s.Block(id)
	if !ok {
		return RevertInstruction{}, false
	}
	insert := b.OldLines
	if insert == nil {
		insert = []string{}
	}
	return RevertInstruction{
		NewFileLineStart:         b.NewStart,
		NewFileLineCountToRemove: b.AddCount,
		OriginalLinesToInsert:    insert,
	}, true
}
