// Package selection tracks an in-progress or completed line-range drag,
// constrained to a single side of the diff.
package selection

import "github.com/colonyops/diffview/internal/core/diffmodel"

// State is the engine's position in the idle→dragging→completed→idle cycle.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateCompleted
)

// Range is a line span on one side. Active is true only while the drag is
// still in progress; a completed range is normalized (StartLine <= EndLine)
// and inactive.
type Range struct {
	StartLine int
	EndLine   int
	Side      diffmodel.Side
	Active    bool
}

func (r Range) normalized() Range {
	if r.StartLine > r.EndLine {
		r.StartLine, r.EndLine = r.EndLine, r.StartLine
	}
	return r
}

// Lines returns the number of lines the range spans.
func (r Range) Lines() int {
	n := r.normalized()
	return n.EndLine - n.StartLine + 1
}

// Contains reports whether the coordinate falls inside the range.
func (r Range) Contains(side diffmodel.Side, line int) bool {
	n := r.normalized()
	return side == n.Side && line >= n.StartLine && line <= n.EndLine
}

// Engine is the 4-state drag machine. Zero value is ready to use.
type Engine struct {
	state State
	rng   Range
}

// New returns an idle engine.
func New() *Engine {
	return &Engine{}
}

// State returns the current machine state.
func (e *Engine) State() State {
	return e.state
}

// Begin starts a drag at the given coordinate. A drag or completed range
// already in flight is discarded first.
func (e *Engine) Begin(side diffmodel.Side, line int) {
	e.state = StateDragging
	e.rng = Range{StartLine: line, EndLine: line, Side: side, Active: true}
}

// Extend moves the drag endpoint. Coordinates on the other side are
// ignored: no side-switching mid-drag. Does nothing unless dragging.
func (e *Engine) Extend(side diffmodel.Side, line int) {
	if e.state != StateDragging || side != e.rng.Side {
		return
	}
	e.rng.EndLine = line
}

// Release ends the drag. A multi-line span completes and is returned
// normalized; a single-line span is discarded back to idle (single-line
// anchors take a separate path). Returns false when nothing completed.
func (e *Engine) Release() (Range, bool) {
	if e.state != StateDragging {
		return Range{}, false
	}

	r := e.rng.normalized()
	if r.StartLine == r.EndLine {
		e.reset()
		return Range{}, false
	}

	r.Active = false
	e.rng = r
	e.state = StateCompleted
	return r, true
}

// Cancel aborts any drag or completed range: pointer leaving the surface,
// Escape, file switch, or a successful submit.
func (e *Engine) Cancel() {
	e.reset()
}

// Current returns the live range: the normalized in-progress drag, or the
// completed range. False when idle.
func (e *Engine) Current() (Range, bool) {
	switch e.state {
	case StateDragging:
		r := e.rng.normalized()
		r.Active = true
		return r, true
	case StateCompleted:
		return e.rng, true
	default:
		return Range{}, false
	}
}

// Completed returns the finalized range, if any.
func (e *Engine) Completed() (Range, bool) {
	if e.state != StateCompleted {
		return Range{}, false
	}
	return e.rng, true
}

func (e *Engine) reset() {
	e.state = StateIdle
	e.rng = Range{}
}
