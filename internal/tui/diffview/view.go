// Package diffview renders the interactive diff surface: split/unified
// layouts, range selection, comment anchoring, and per-block revert
// actions.
package diffview

import (
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/diffview/internal/core/annotate"
	"github.com/colonyops/diffview/internal/core/blocks"
	"github.com/colonyops/diffview/internal/core/comments"
	"github.com/colonyops/diffview/internal/core/config"
	"github.com/colonyops/diffview/internal/core/diffmodel"
	"github.com/colonyops/diffview/internal/core/hover"
	"github.com/colonyops/diffview/internal/core/layout"
	"github.com/colonyops/diffview/internal/core/logging"
	"github.com/colonyops/diffview/internal/core/selection"
)

// Options configures the diff view.
type Options struct {
	Files  []*diffmodel.FileDiff
	Config *config.Config

	// Store backs self-contained comment persistence. When Controlled is
	// set the store is ignored and Callbacks own the comment lifecycle.
	Store      comments.Store
	Controlled bool
	Callbacks  comments.Callbacks

	// RevertFile applies a revert instruction to the file on disk.
	// Fire-and-forget: failures surface as a cleared pending state.
	RevertFile func(filePath string, instr blocks.RevertInstruction) error
}

// hideTimerMsg fires a scheduled affordance hide.
type hideTimerMsg struct {
	token int
}

// revertDoneMsg reports the outcome of an issued revert. gen pins the
// block-set generation the blockID was numbered against.
type revertDoneMsg struct {
	blockID int
	gen     int
	err     error
}

// FinalizedMsg carries the exported review feedback; the owning model
// decides what to do with it.
type FinalizedMsg struct {
	Feedback string
}

// View is the diff review surface for a set of parsed files.
type View struct {
	opts Options

	files   []*diffmodel.FileDiff
	fileIdx int
	diff    *diffmodel.FileDiff

	mode     layout.Mode
	rows     []layout.Row
	blockSet *blocks.Set
	blockGen int // bumped on every re-segmentation
	registry *annotate.Registry

	sel      *selection.Engine
	hoverCtl *hover.Controller
	adapter  *comments.Adapter

	cursor     int // visual row position
	activeSide diffmodel.Side
	visual     bool
	dragging   bool // mouse drag in progress

	commentModal *CommentModal
	confirmModal *ConfirmModal
	editingID    string // set while the comment modal edits an existing comment
	deletingID   string

	vp     viewport.Model
	width  int
	height int

	log zerolog.Logger
}

// New builds the view. Files matching the config's exclude globs are
// dropped up front.
func New(opts Options) View {
	v := View{
		opts:       opts,
		mode:       layout.ParseMode(opts.Config.Layout),
		sel:        selection.New(),
		activeSide: diffmodel.SideNew,
		vp:         viewport.New(viewport.WithWidth(80), viewport.WithHeight(24)),
		width:      80,
		height:     24,
		log:        logging.Component("diffview"),
	}

	for _, f := range opts.Files {
		if f == nil || opts.Config.Excluded(f.Path) {
			continue
		}
		v.files = append(v.files, f)
	}

	v.loadFile(0)
	return v
}

// Init implements the view half of tea.Model.
func (v View) Init() tea.Cmd {
	return nil
}

// SetSize resizes the surface.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.vp.SetWidth(width)
	v.vp.SetHeight(max(height-v.chromeLines(), 1))
	v.ensureVisible()
}

// chromeLines counts the fixed lines around the viewport: the status bar,
// plus the file strip when more than one file is shown.
func (v View) chromeLines() int {
	if len(v.files) > 1 {
		return 2
	}
	return 1
}

// HasActiveEditor reports whether a modal is consuming keystrokes.
func (v View) HasActiveEditor() bool {
	return v.commentModal != nil || v.confirmModal != nil
}

// File returns the currently displayed diff, nil when no diff is
// available.
func (v View) File() *diffmodel.FileDiff {
	return v.diff
}

// loadFile switches to files[idx] and rebuilds all derived state. Any
// in-flight selection is cancelled: coordinates are meaningless across
// files.
func (v *View) loadFile(idx int) {
	v.sel.Cancel()
	v.visual = false
	v.dragging = false
	v.cursor = 0

	if len(v.files) == 0 || idx < 0 || idx >= len(v.files) {
		v.diff = nil
		v.rebuild()
		return
	}

	v.fileIdx = idx
	v.diff = v.files[idx]

	if v.opts.Controlled {
		v.adapter = comments.NewControlled(v.diff.Path, v.opts.Callbacks, v.log)
	} else {
		v.adapter = comments.NewSelfContained(v.opts.Store, v.diff.Path, v.log)
	}

	v.rebuild()
	v.vp.GotoTop()
}

// rebuild re-derives rows, blocks, hover state, and the annotation
// registry from the current diff. Stale block state is discarded
// wholesale.
func (v *View) rebuild() {
	if v.diff == nil {
		v.rows = nil
		v.blockSet = blocks.Segment(nil)
	} else {
		v.rows = layout.BuildRows(v.diff, v.mode)
		v.blockSet = blocks.Segment(v.diff.Hunks)
	}
	v.blockGen++

	if v.hoverCtl == nil {
		v.hoverCtl = hover.NewController(v.blockSet, v.log)
	} else {
		v.hoverCtl.SetBlocks(v.blockSet)
	}

	if v.cursor >= len(v.rows) {
		v.cursor = max(len(v.rows)-1, 0)
	}

	v.rebuildRegistry()
}

// rebuildRegistry refreshes anchors from comments, the pending selection,
// and the block set.
func (v *View) rebuildRegistry() {
	var pending *selection.Range
	if r, ok := v.sel.Completed(); ok {
		pending = &r
	}

	var list []comments.DiffComment
	if v.adapter != nil {
		list = v.adapter.Comments()
	}

	v.registry = annotate.Build(list, pending, v.blockSet, annotate.Options{
		Comments:     true,
		BlockActions: true,
	})
}

// Update implements the view half of tea.Model.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)

	case tea.MouseClickMsg:
		return v.handleMouseDown(tea.Mouse(msg))
	case tea.MouseMotionMsg:
		return v.handleMouseDrag(tea.Mouse(msg))
	case tea.MouseReleaseMsg:
		return v.handleMouseUp()
	case tea.MouseWheelMsg:
		return v.handleWheel(tea.Mouse(msg))

	case hideTimerMsg:
		if v.hoverCtl.FireHide(msg.token) {
			v.log.Debug().Msg("diffview: hover affordance hidden")
		}
		return v, nil

	case revertDoneMsg:
		return v.handleRevertDone(msg)
	}

	return v, nil
}

func (v View) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	if v.commentModal != nil {
		return v.updateCommentModal(msg)
	}
	if v.confirmModal != nil {
		return v.updateConfirmModal(msg)
	}

	switch msg.String() {
	case "j", "down":
		return v.moveCursor(1)
	case "k", "up":
		return v.moveCursor(-1)
	case "g":
		return v.setCursor(0)
	case "G":
		return v.setCursor(len(v.rows) - 1)
	case "ctrl+d":
		return v.moveCursor(v.vp.VisibleLineCount() / 2)
	case "ctrl+u":
		return v.moveCursor(-v.vp.VisibleLineCount() / 2)

	case "h", "left":
		if v.mode == layout.ModeSplit && !v.visual {
			v.activeSide = diffmodel.SideOld
		}
		return v, nil
	case "l", "right":
		if v.mode == layout.ModeSplit && !v.visual {
			v.activeSide = diffmodel.SideNew
		}
		return v, nil

	case "s":
		return v.setLayout(layout.ModeSplit)
	case "u":
		return v.setLayout(layout.ModeUnified)

	case "tab", "]":
		if len(v.files) > 1 {
			v.loadFile((v.fileIdx + 1) % len(v.files))
		}
		return v, nil
	case "[":
		if len(v.files) > 1 {
			v.loadFile((v.fileIdx - 1 + len(v.files)) % len(v.files))
		}
		return v, nil

	case "V":
		return v.beginVisual()
	case "enter":
		if v.visual {
			return v.releaseVisual()
		}
		return v, nil
	case "esc":
		return v.handleEscape()

	case "c":
		return v.openCommentAtCursor()
	case "e":
		return v.editCommentAtCursor()
	case "d":
		return v.deleteCommentAtCursor()
	case "x":
		return v.toggleResolveAtCursor()

	case "r":
		return v.revertAtCursor()
	case "f":
		return v.finalize()
	}

	return v, nil
}

// moveCursor shifts the cursor by delta rows, extending the visual
// selection and driving hover transitions.
func (v View) moveCursor(delta int) (View, tea.Cmd) {
	return v.setCursor(v.cursor + delta)
}

func (v View) setCursor(pos int) (View, tea.Cmd) {
	if len(v.rows) == 0 {
		return v, nil
	}
	v.cursor = min(max(pos, 0), len(v.rows)-1)
	v.ensureVisible()

	if v.visual || v.dragging {
		if side, line, ok := v.coordinateAtCursor(); ok {
			v.sel.Extend(side, line)
		}
	}

	return v.updateHover()
}

// rowAtScreenY maps a screen Y coordinate to a visual row position,
// accounting for the file strip and viewport scroll. Inline anchor lines
// resolve to the row they follow.
func (v View) rowAtScreenY(y int) (int, bool) {
	displayLine := y - (v.chromeLines() - 1) + v.vp.YOffset()
	if displayLine < 0 || len(v.rows) == 0 {
		return 0, false
	}

	lines, tops := v.renderBody()
	if displayLine >= len(lines) {
		return 0, false
	}
	pos, found := 0, false
	for i, top := range tops {
		if top <= displayLine {
			pos, found = i, true
		}
	}
	return pos, found
}

func (v View) handleMouseDown(m tea.Mouse) (View, tea.Cmd) {
	if m.Button != tea.MouseLeft || v.HasActiveEditor() {
		return v, nil
	}
	pos, ok := v.rowAtScreenY(m.Y)
	if !ok {
		return v, nil
	}

	nv, cmd := v.setCursor(pos)
	if side, line, resolvable := nv.coordinateAtCursor(); resolvable {
		nv.dragging = true
		nv.sel.Begin(side, line)
		nv.rebuildRegistry()
	}
	return nv, cmd
}

func (v View) handleMouseDrag(m tea.Mouse) (View, tea.Cmd) {
	if !v.dragging {
		return v, nil
	}
	pos, ok := v.rowAtScreenY(m.Y)
	if !ok {
		return v, nil
	}
	return v.setCursor(pos)
}

func (v View) handleMouseUp() (View, tea.Cmd) {
	if !v.dragging {
		return v, nil
	}
	return v.releaseVisual()
}

func (v View) handleWheel(m tea.Mouse) (View, tea.Cmd) {
	switch m.Button {
	case tea.MouseWheelUp:
		v.vp.SetYOffset(v.vp.YOffset() - 3)
	case tea.MouseWheelDown:
		v.vp.SetYOffset(v.vp.YOffset() + 3)
	}
	return v, nil
}

// updateHover feeds the cursor position to the hover controller. Moving
// onto a change block activates it; moving off an active block schedules
// the deferred hide.
func (v View) updateHover() (View, tea.Cmd) {
	side, line, ok := v.coordinateAtCursor()
	if ok {
		if _, onBlock := v.blockSet.BlockAt(side, line); onBlock {
			v.hoverCtl.EnterLine(side, line)
			return v, nil
		}
	}

	if _, active := v.hoverCtl.Active(); active {
		token := v.hoverCtl.LeaveLine()
		delay := v.opts.Config.HoverHideDelay()
		return v, tea.Tick(delay, func(time.Time) tea.Msg {
			return hideTimerMsg{token: token}
		})
	}

	return v, nil
}

// coordinateAtCursor resolves the cursor row to a logical coordinate
// using the layout's preference rules.
func (v View) coordinateAtCursor() (diffmodel.Side, int, bool) {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return 0, 0, false
	}
	return layout.CoordinateAt(v.rows[v.cursor], v.mode, v.activeSide)
}

func (v View) setLayout(mode layout.Mode) (View, tea.Cmd) {
	if mode == v.mode {
		return v, nil
	}
	v.mode = mode
	v.sel.Cancel()
	v.visual = false
	v.dragging = false
	v.rebuild()
	v.ensureVisible()
	v.log.Debug().Str("mode", mode.String()).Msg("diffview: layout switched")
	return v, nil
}

func (v View) beginVisual() (View, tea.Cmd) {
	side, line, ok := v.coordinateAtCursor()
	if !ok {
		return v, nil
	}
	v.visual = true
	v.sel.Begin(side, line)
	v.rebuildRegistry()
	return v, nil
}

// releaseVisual ends the visual selection or mouse drag. Multi-line
// ranges open the comment form; a single line is a plain discard.
func (v View) releaseVisual() (View, tea.Cmd) {
	v.visual = false
	v.dragging = false
	r, ok := v.sel.Release()
	v.rebuildRegistry()
	if !ok {
		return v, nil
	}

	v.commentModal = NewCommentModal(r.StartLine, r.EndLine, v.codeForRange(r.Side, r.StartLine, r.EndLine), v.width)
	return v, nil
}

func (v View) handleEscape() (View, tea.Cmd) {
	switch {
	case v.visual || v.dragging:
		v.visual = false
		v.dragging = false
		v.sel.Cancel()
	case v.sel.State() == selection.StateCompleted:
		v.sel.Cancel()
	default:
		return v, nil
	}
	v.rebuildRegistry()
	return v, nil
}

// openCommentAtCursor is the single-line comment path.
func (v View) openCommentAtCursor() (View, tea.Cmd) {
	side, line, ok := v.coordinateAtCursor()
	if !ok || v.adapter == nil {
		return v, nil
	}

	v.activeSide = side
	v.commentModal = NewCommentModal(line, line, v.codeForRange(side, line, line), v.width)
	return v, nil
}

// editCommentAtCursor opens the modal pre-filled with the first comment
// anchored at the cursor line.
func (v View) editCommentAtCursor() (View, tea.Cmd) {
	c, ok := v.commentAtCursor()
	if !ok {
		return v, nil
	}

	m := NewCommentModal(c.StartLine, c.EndLine, c.CodeContent, v.width)
	m.SetValue(c.Text)
	v.commentModal = m
	v.editingID = c.ID
	return v, nil
}

// toggleResolveAtCursor flips the first anchored comment between open
// and resolved.
func (v View) toggleResolveAtCursor() (View, tea.Cmd) {
	c, ok := v.commentAtCursor()
	if !ok {
		return v, nil
	}

	status := comments.StatusResolved
	if c.Status == comments.StatusResolved {
		status = comments.StatusOpen
	}
	v.adapter.SetStatus(c.ID, status)
	return v, nil
}

func (v View) deleteCommentAtCursor() (View, tea.Cmd) {
	c, ok := v.commentAtCursor()
	if !ok {
		return v, nil
	}

	v.confirmModal = NewConfirmModal("Delete this comment?")
	v.deletingID = c.ID
	return v, nil
}

// commentAtCursor finds the first comment anchored at the cursor's
// coordinate on either side of the row.
func (v View) commentAtCursor() (comments.DiffComment, bool) {
	if v.adapter == nil || v.cursor >= len(v.rows) {
		return comments.DiffComment{}, false
	}

	row := v.rows[v.cursor]
	for _, side := range []diffmodel.Side{diffmodel.SideNew, diffmodel.SideOld} {
		line := row.Line(side)
		if line == 0 {
			continue
		}
		for _, e := range v.registry.At(side, line) {
			if e.Kind != annotate.KindComment {
				continue
			}
			for _, c := range v.adapter.Comments() {
				if c.ID == e.CommentID {
					return c, true
				}
			}
		}
	}

	return comments.DiffComment{}, false
}

// revertAtCursor issues a revert for the block under the cursor.
func (v View) revertAtCursor() (View, tea.Cmd) {
	side, line, ok := v.coordinateAtCursor()
	if !ok {
		return v, nil
	}
	b, ok := v.blockSet.BlockAt(side, line)
	if !ok || v.hoverCtl.AnyPending() {
		// one revert at a time: a concurrent splice would write line
		// numbers computed against a file that has already shifted
		return v, nil
	}

	instr, ok := v.hoverCtl.Revert(b.ID)
	if !ok {
		return v, nil
	}

	if v.opts.RevertFile == nil {
		v.hoverCtl.RevertFailed(b.ID)
		return v, nil
	}

	path := v.diff.Path
	revert := v.opts.RevertFile
	blockID, gen := b.ID, v.blockGen
	return v, func() tea.Msg {
		return revertDoneMsg{blockID: blockID, gen: gen, err: revert(path, instr)}
	}
}

// handleRevertDone clears the busy state on failure, or removes the
// block by recomputing the model on success.
func (v View) handleRevertDone(msg revertDoneMsg) (View, tea.Cmd) {
	if msg.gen != v.blockGen {
		// the set was re-segmented since this revert was issued; its
		// ordinal now names a different block, so the result is dropped
		v.log.Debug().Int("block", msg.blockID).Msg("diffview: stale revert result ignored")
		return v, nil
	}
	if msg.err != nil {
		v.hoverCtl.RevertFailed(msg.blockID)
		v.log.Warn().Err(msg.err).Int("block", msg.blockID).Msg("diffview: revert failed")
		return v, nil
	}

	idx := v.fileIdx
	v.files[idx] = diffmodel.ApplyRevert(v.files[idx], msg.blockID)
	v.diff = v.files[idx]
	v.rebuild()
	v.ensureVisible()
	return v, nil
}

// finalize exports all comments for the current file as review feedback.
func (v View) finalize() (View, tea.Cmd) {
	if v.adapter == nil || len(v.adapter.Comments()) == 0 {
		return v, nil
	}

	feedback := GenerateFeedback(v.diff.Path, v.adapter.Comments())
	return v, func() tea.Msg {
		return FinalizedMsg{Feedback: feedback}
	}
}

func (v View) updateCommentModal(msg tea.KeyMsg) (View, tea.Cmd) {
	m := v.commentModal
	cmd := m.Update(msg)

	switch {
	case m.Submitted():
		text := m.Value()
		if v.editingID != "" {
			v.adapter.UpdateText(v.editingID, text)
		} else {
			side := v.activeSide
			if r, ok := v.sel.Completed(); ok {
				side = r.Side
			}
			v.adapter.Add(comments.NewComment(v.diff.Path, side, m.StartLine(), m.EndLine(), m.CodeContent(), text))
		}
		v.commentModal = nil
		v.editingID = ""
		v.sel.Cancel() // successful submit clears the completed range
		v.rebuildRegistry()
		return v, nil

	case m.Cancelled():
		v.commentModal = nil
		v.editingID = ""
		v.rebuildRegistry()
		return v, nil
	}

	return v, cmd
}

func (v View) updateConfirmModal(msg tea.KeyMsg) (View, tea.Cmd) {
	m := v.confirmModal
	m.Update(msg)

	switch {
	case m.Confirmed():
		v.adapter.Delete(v.deletingID)
		v.confirmModal = nil
		v.deletingID = ""
		v.rebuildRegistry()
	case m.Cancelled():
		v.confirmModal = nil
		v.deletingID = ""
	}

	return v, nil
}

// codeForRange collects the rendered text of a line range on one side,
// used as the comment's code context.
func (v View) codeForRange(side diffmodel.Side, start, end int) string {
	refs := layout.RowsForRange(v.rows, side, start, end)
	lines := make([]string, 0, len(refs))
	for _, ref := range refs {
		if side == diffmodel.SideOld {
			lines = append(lines, ref.Row.OldText)
		} else {
			lines = append(lines, ref.Row.NewText)
		}
	}
	return joinLines(lines)
}

// ensureVisible scrolls the viewport so the cursor row stays on screen.
func (v *View) ensureVisible() {
	_, tops := v.renderBody()
	if v.cursor >= len(tops) {
		return
	}

	target := tops[v.cursor]
	visible := v.vp.VisibleLineCount()
	if visible <= 0 {
		visible = 1
	}

	if target < v.vp.YOffset() {
		v.vp.SetYOffset(target)
	} else if target >= v.vp.YOffset()+visible {
		v.vp.SetYOffset(target - visible + 1)
	}
}
