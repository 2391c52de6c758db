// Package annotate maps comments, the in-progress comment form, and
// change-block action affordances onto (side, line) anchors for rendering.
package annotate

import (
	"github.com/colonyops/diffview/internal/core/blocks"
	"github.com/colonyops/diffview/internal/core/comments"
	"github.com/colonyops/diffview/internal/core/diffmodel"
	"github.com/colonyops/diffview/internal/core/selection"
)

// Kind classifies an anchor entry.
type Kind int

const (
	KindComment Kind = iota
	KindForm
	KindBlockAction
)

// Entry is one anchored affordance. Exactly one of CommentID/BlockID is
// meaningful depending on Kind.
type Entry struct {
	Side      diffmodel.Side
	Line      int
	Kind      Kind
	CommentID string
	BlockID   int
}

// Options gates which anchor classes are produced.
type Options struct {
	Comments     bool
	BlockActions bool
}

type anchorKey struct {
	side diffmodel.Side
	line int
}

// Registry is an immutable snapshot of anchors, rebuilt on every relevant
// state change.
type Registry struct {
	entries []Entry
	byKey   map[anchorKey][]Entry
}

// Build assembles the registry. Comments anchor at the EndLine of their
// range so the UI renders after the full range. A completed selection
// contributes the comment form at its end line. Collisions on one key
// keep registration order (comments, then the form, then block actions);
// nothing is dropped.
func Build(list []comments.DiffComment, pending *selection.Range, set *blocks.Set, opts Options) *Registry {
	r := &Registry{byKey: make(map[anchorKey][]Entry)}

	if opts.Comments {
		for _, c := range list {
			r.add(Entry{
				Side:      c.Side,
				Line:      c.EndLine,
				Kind:      KindComment,
				CommentID: c.ID,
			})
		}
		if pending != nil && !pending.Active {
			r.add(Entry{
				Side: pending.Side,
				Line: pending.EndLine,
				Kind: KindForm,
			})
		}
	}

	if opts.BlockActions {
		for _, b := range set.Blocks() {
			r.add(Entry{
				Side:    b.Side,
				Line:    b.AnchorLine,
				Kind:    KindBlockAction,
				BlockID: b.ID,
			})
		}
	}

	return r
}

func (r *Registry) add(e Entry) {
	r.entries = append(r.entries, e)
	k := anchorKey{e.Side, e.Line}
	r.byKey[k] = append(r.byKey[k], e)
}

// Entries returns all anchors in registration order.
func (r *Registry) Entries() []Entry {
	return r.entries
}

// At returns the anchors sharing one key, in registration order. Nil when
// the key has no anchors.
func (r *Registry) At(side diffmodel.Side, line int) []Entry {
	return r.byKey[anchorKey{side, line}]
}

// Len returns the total anchor count.
func (r *Registry) Len() int {
	return len(r.entries)
}
