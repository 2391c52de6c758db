// Package hover tracks the active change block and exposes revert
// invocation over the current block set.
package hover

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/diffview/internal/core/blocks"
	"github.com/colonyops/diffview/internal/core/diffmodel"
)

// Controller is the hover/revert state machine for one file-diff
// instance. The active block's action affordance stays visible while the
// pointer is on the block or the affordance itself; leaving either arms
// the hide action instead of clearing immediately.
type Controller struct {
	set     *blocks.Set
	active  int // 0 = none
	pending map[int]bool
	hide    Deferred
	log     zerolog.Logger
}

// NewController builds a controller over a block set.
func NewController(set *blocks.Set, log zerolog.Logger) *Controller {
	return &Controller{
		set:     set,
		pending: make(map[int]bool),
		log:     log,
	}
}

// SetBlocks swaps in a freshly segmented set. Stale hover and pending
// state is discarded wholesale with the old blocks.
func (c *Controller) SetBlocks(set *blocks.Set) {
	c.set = set
	c.active = 0
	c.pending = make(map[int]bool)
	c.hide.Cancel()
}

// Active returns the currently hovered block.
func (c *Controller) Active() (blocks.ChangeBlock, bool) {
	if c.active == 0 {
		return blocks.ChangeBlock{}, false
	}
	return c.set.Block(c.active)
}

// EnterLine handles pointer-enter on a diff row. Rows outside any change
// block change nothing; leave handling owns the hide path. Returns true
// when the active block changed.
func (c *Controller) EnterLine(side diffmodel.Side, line int) bool {
	b, ok := c.set.BlockAt(side, line)
	if !ok {
		return false
	}

	c.hide.Cancel()
	if b.ID == c.active {
		return false
	}

	c.active = b.ID
	c.log.Debug().Int("block", b.ID).Str("side", side.String()).Int("line", line).Msg("hover: block active")
	return true
}

// LeaveLine handles pointer-leave of a change row: the affordance hides
// after a delay so the pointer can travel onto it. Returns the token the
// scheduled firing must present.
func (c *Controller) LeaveLine() int {
	return c.hide.Arm()
}

// EnterAffordance keeps the affordance visible while the pointer is on it.
func (c *Controller) EnterAffordance() {
	c.hide.Cancel()
}

// LeaveAffordance restarts the hide delay.
func (c *Controller) LeaveAffordance() int {
	return c.hide.Arm()
}

// FireHide completes a scheduled hide. Stale tokens never clear the
// current block. Returns true when the active block was cleared.
func (c *Controller) FireHide(token int) bool {
	if !c.hide.Fire(token) {
		return false
	}
	c.active = 0
	return true
}

// Revert resolves a block id to its line-replacement instruction and
// marks the block busy. An unknown id (stale set raced with a click) is
// a no-op. The busy state clears on RevertFailed or disappears with the
// block on recomputation; success has no explicit transition.
func (c *Controller) Revert(blockID int) (blocks.RevertInstruction, bool) {
	instr, ok := c.set.Revert(blockID)
	if !ok {
		c.log.Warn().Int("block", blockID).Msg("hover: revert on unknown block")
		return blocks.RevertInstruction{}, false
	}

	c.pending[blockID] = true
	c.log.Debug().Int("block", blockID).Int("start", instr.NewFileLineStart).Int("remove", instr.NewFileLineCountToRemove).Msg("hover: revert issued")
	return instr, true
}

// Pending reports whether a revert is in flight for the block.
func (c *Controller) Pending(blockID int) bool {
	return c.pending[blockID]
}

// AnyPending reports whether any revert is in flight.
func (c *Controller) AnyPending() bool {
	return len(c.pending) > 0
}

// RevertFailed clears the busy state; the block stays actionable.
func (c *Controller) RevertFailed(blockID int) {
	delete(c.pending, blockID)
	c.log.Debug().Int("block", blockID).Msg("hover: revert failed")
}
