package diffview

import (
	"fmt"
	"path/filepath"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/diffview/internal/core/annotate"
	"github.com/colonyops/diffview/internal/core/comments"
	"github.com/colonyops/diffview/internal/core/diffmodel"
	"github.com/colonyops/diffview/internal/core/layout"
	"github.com/colonyops/diffview/internal/core/styles"
)

const gutterWidth = 4

// View renders the full surface: diff body in the viewport, status bar,
// and any open modal composited on top.
func (v View) View() string {
	if v.diff == nil {
		return v.renderEmpty()
	}

	lines, _ := v.renderBody()
	v.vp.SetContent(strings.Join(lines, "\n"))

	body := v.vp.View()
	surface := body + "\n" + v.renderStatusBar()
	if len(v.files) > 1 {
		surface = v.renderFileStrip() + "\n" + surface
	}

	if v.commentModal != nil {
		return overlayModal(surface, v.commentModal.View(), v.width, v.height)
	}
	if v.confirmModal != nil {
		return overlayModal(surface, v.confirmModal.View(), v.width, v.height)
	}

	return surface
}

func (v View) renderEmpty() string {
	msg := styles.GutterStyle.Render("no diff available")
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, msg)
}

// renderBody produces the display lines plus, per visual row, the display
// line it starts at. Comment and affordance lines render inline after
// their anchor row, which is why the two indexes differ.
func (v View) renderBody() ([]string, []int) {
	selRects := v.selectionRects()

	lines := make([]string, 0, len(v.rows))
	tops := make([]int, len(v.rows))

	for _, row := range v.rows {
		tops[row.Position] = len(lines)
		lines = append(lines, v.renderRow(row, v.rowSelected(row, selRects)))
		lines = append(lines, v.renderAnchors(row)...)
	}

	return lines, tops
}

// selectionRects resolves the live selection to overlay rectangles.
func (v View) selectionRects() []layout.Rect {
	r, ok := v.sel.Current()
	if !ok {
		return nil
	}
	return layout.Regions(v.rows, v.mode, r.Side, r.StartLine, r.EndLine, v.width)
}

// rowSelected reports whether a row falls inside any selection rectangle.
func (v View) rowSelected(row layout.Row, rects []layout.Rect) bool {
	for _, r := range rects {
		if row.Top >= r.Y && row.Top < r.Y+r.Height {
			return true
		}
	}
	return false
}

func (v View) renderRow(row layout.Row, selected bool) string {
	var line string
	switch {
	case row.Kind == layout.KindHeader:
		line = styles.HunkHeaderStyle.Render(v.hunkHeaderFor(row))
	case v.mode == layout.ModeSplit:
		line = v.renderSplitRow(row, selected)
	default:
		line = v.renderUnifiedRow(row, selected)
	}

	if row.Position == v.cursor {
		line = styles.CursorLineStyle.Render(stripTrailing(line))
	}
	return line
}

// hunkHeaderFor reconstructs the @@ header for the hunk starting at this
// row position.
func (v View) hunkHeaderFor(row layout.Row) string {
	idx := 0
	for _, r := range v.rows {
		if r.Kind != layout.KindHeader {
			continue
		}
		if r.Position == row.Position {
			break
		}
		idx++
	}
	if idx >= len(v.diff.Hunks) {
		return "@@"
	}
	h := v.diff.Hunks[idx]
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

func (v View) renderSplitRow(row layout.Row, selected bool) string {
	half := max(v.width/2-gutterWidth-2, 8)

	oldCell := v.renderCell(row, diffmodel.SideOld, half, selected)
	newCell := v.renderCell(row, diffmodel.SideNew, half, selected)

	divider := styles.GapStyle.Render("│")
	return oldCell + divider + newCell
}

func (v View) renderCell(row layout.Row, side diffmodel.Side, width int, selected bool) string {
	line := row.Line(side)
	if line == 0 {
		// gap placeholder
		return styles.GutterStyle.Render(strings.Repeat(" ", gutterWidth)) +
			" " + styles.GapStyle.Render(pad("╱", width))
	}

	text := row.NewText
	style := styles.ContextStyle
	if side == diffmodel.SideOld {
		text = row.OldText
		if row.Kind == layout.KindChange {
			style = styles.DeletionStyle
		}
	} else if row.Kind == layout.KindChange {
		style = styles.AdditionStyle
	}

	if selected {
		r, _ := v.sel.Current()
		if r.Contains(side, line) {
			style = styles.SelectionStyle
		}
	}

	gutter := styles.GutterStyle.Render(fmt.Sprintf("%*d", gutterWidth, line))
	return gutter + " " + style.Render(pad(text, width))
}

func (v View) renderUnifiedRow(row layout.Row, selected bool) string {
	oldNum, newNum := "    ", "    "
	if row.OldLine != 0 {
		oldNum = fmt.Sprintf("%*d", gutterWidth, row.OldLine)
	}
	if row.NewLine != 0 {
		newNum = fmt.Sprintf("%*d", gutterWidth, row.NewLine)
	}

	marker, text := " ", row.NewText
	style := styles.ContextStyle
	switch {
	case row.Kind == layout.KindChange && row.OldLine != 0:
		marker, text, style = "-", row.OldText, styles.DeletionStyle
	case row.Kind == layout.KindChange:
		marker, style = "+", styles.AdditionStyle
	}

	if selected {
		style = styles.SelectionStyle
	}

	width := max(v.width-2*gutterWidth-4, 8)
	gutter := styles.GutterStyle.Render(oldNum + " " + newNum + " ")
	return gutter + style.Render(marker+" "+pad(text, width))
}

// renderAnchors emits the inline lines for comments, the in-progress
// form, and the active block affordance anchored at this row.
func (v View) renderAnchors(row layout.Row) []string {
	var out []string
	for _, side := range []diffmodel.Side{diffmodel.SideOld, diffmodel.SideNew} {
		line := row.Line(side)
		if line == 0 {
			continue
		}
		// a row maps to up to two coordinates; anchors keyed to either
		// side must render, in both layouts
		for _, e := range v.registry.At(side, line) {
			if rendered, ok := v.renderAnchor(e); ok {
				out = append(out, rendered)
			}
		}
	}
	return out
}

func (v View) renderAnchor(e annotate.Entry) (string, bool) {
	switch e.Kind {
	case annotate.KindComment:
		for _, c := range v.adapter.Comments() {
			if c.ID == e.CommentID {
				mark := styles.CommentMarkStyle.Render("┃")
				text := styles.CommentTextStyle.Render(c.Text)
				if c.Status == comments.StatusResolved {
					text = styles.PendingStyle.Render(c.Text + " (resolved)")
				}
				return "  " + mark + " " + text, true
			}
		}
		return "", false

	case annotate.KindForm:
		mark := styles.CommentMarkStyle.Render("┃")
		return "  " + mark + " " + styles.PendingStyle.Render("[comment in progress]"), true

	case annotate.KindBlockAction:
		// suppressed during a drag so screen rows keep a stable mapping
		if v.dragging {
			return "", false
		}
		if v.hoverCtl.Pending(e.BlockID) {
			return "  " + styles.PendingStyle.Render("reverting..."), true
		}
		if b, ok := v.hoverCtl.Active(); ok && b.ID == e.BlockID {
			return "  " + styles.BlockActionStyle.Render("[r] revert block"), true
		}
		return "", false
	}

	return "", false
}

// renderFileStrip lists all files in the patch, current one highlighted.
func (v View) renderFileStrip() string {
	parts := make([]string, 0, len(v.files))
	for i, f := range v.files {
		name := filepath.Base(f.Path)
		if i == v.fileIdx {
			parts = append(parts, styles.FileSelectedStyle.Render(name))
		} else {
			parts = append(parts, styles.FileNormalStyle.Render(name))
		}
	}

	strip := strings.Join(parts, styles.GutterStyle.Render(" • "))
	if lipgloss.Width(strip) > v.width {
		strip = lipgloss.NewStyle().MaxWidth(v.width).Render(strip)
	}
	return strip
}

func (v View) renderStatusBar() string {
	mode := styles.StatusModeStyle.Render(strings.ToUpper(v.mode.String()))
	if v.visual {
		mode = styles.StatusModeStyle.Render("VISUAL")
	}

	file := ""
	if v.diff != nil {
		file = v.diff.Path
		if len(v.files) > 1 {
			file = fmt.Sprintf("%s (%d/%d)", v.diff.Path, v.fileIdx+1, len(v.files))
		}
	}

	add, del := v.diff.Stats()
	stats := fmt.Sprintf("+%d -%d", add, del)
	if n := len(v.adapter.Comments()); n > 0 {
		stats += fmt.Sprintf(" • %d comments", n)
	}
	if v.mode == layout.ModeSplit {
		stats += " • " + v.activeSide.String()
	}

	left := mode + styles.StatusFileStyle.Render(file)
	right := styles.StatusStatsStyle.Render(stats)

	gap := v.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return styles.StatusBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// overlayModal composites a modal over the surface, centered.
func overlayModal(background, content string, width, height int) string {
	modal := styles.ModalStyle.Render(content)

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	modalW := lipgloss.Width(modal)
	modalH := lipgloss.Height(modal)
	centerX := max((width-modalW)/2, 0)
	centerY := max((height-modalH)/2, 0)
	modalLayer.X(centerX).Y(centerY).Z(1)

	return lipgloss.NewCanvas(bgLayer, modalLayer).Render()
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func stripTrailing(s string) string {
	return strings.TrimRight(s, " ")
}
