// Package layout builds the visual row surface for a diff and maps between
// logical coordinates (side, line) and visual positions. Everything here is
// pure: the surface is an ordered []Row, not a terminal.
package layout

import (
	"github.com/colonyops/diffview/internal/core/diffmodel"
)

// Mode selects the rendering layout.
type Mode int

const (
	ModeSplit   Mode = iota // two columns, old left, new right
	ModeUnified             // single column, interleaved
)

// String returns the config/display name for the mode.
func (m Mode) String() string {
	if m == ModeUnified {
		return "unified"
	}
	return "split"
}

// ParseMode reads a config value; unknown values default to split.
func ParseMode(s string) Mode {
	if s == "unified" {
		return ModeUnified
	}
	return ModeSplit
}

// Kind classifies a visual row.
type Kind int

const (
	KindContext Kind = iota
	KindChange
	KindHeader // hunk separator, carries no coordinates
)

// Row is one visual row of the rendered surface. Line numbers are 0 when
// the row has no coordinate on that side (a gap placeholder in split view,
// or a pure add/delete row in unified view). Top/Height are in surface
// cells, assigned in visual order.
type Row struct {
	Position int
	Kind     Kind
	OldLine  int
	NewLine  int
	OldText  string
	NewText  string
	Top      int
	Height   int
}

// Line returns the row's line number on the given side, 0 when absent.
func (r Row) Line(side diffmodel.Side) int {
	if side == diffmodel.SideOld {
		return r.OldLine
	}
	return r.NewLine
}

// BuildRows derives the full visual surface for a diff in the given mode.
// Row heights are uniform (one cell); Top values are cumulative. A nil
// diff yields no rows. Building is idempotent: the same diff and mode
// always produce the same surface.
func BuildRows(d *diffmodel.FileDiff, mode Mode) []Row {
	if d == nil {
		return nil
	}

	var rows []Row
	push := func(r Row) {
		r.Position = len(rows)
		r.Top = len(rows)
		r.Height = 1
		rows = append(rows, r)
	}

	for _, h := range d.Hunks {
		push(Row{Kind: KindHeader})

		oldLine := h.OldStart
		newLine := h.NewStart

		for _, seg := range h.Segments {
			if seg.IsContext() {
				for _, text := range seg.Context {
					push(Row{
						Kind:    KindContext,
						OldLine: oldLine,
						NewLine: newLine,
						OldText: text,
						NewText: text,
					})
					oldLine++
					newLine++
				}
				continue
			}

			switch mode {
			case ModeSplit:
				// pair deletion i with addition i; the shorter side
				// leaves a gap in its column
				for i := 0; i < max(len(seg.Deleted), len(seg.Added)); i++ {
					r := Row{Kind: KindChange}
					if i < len(seg.Deleted) {
						r.OldLine = oldLine
						r.OldText = seg.Deleted[i]
						oldLine++
					}
					if i < len(seg.Added) {
						r.NewLine = newLine
						r.NewText = seg.Added[i]
						newLine++
					}
					push(r)
				}
			case ModeUnified:
				for _, text := range seg.Deleted {
					push(Row{Kind: KindChange, OldLine: oldLine, OldText: text})
					oldLine++
				}
				for _, text := range seg.Added {
					push(Row{Kind: KindChange, NewLine: newLine, NewText: text})
					newLine++
				}
			}
		}
	}

	return rows
}

// RowRef is one resolved row within a range query, tagged with its visual
// position so the geometry builder can detect discontinuities.
type RowRef struct {
	Position int
	Line     int
	Row      Row
}

// RowsForRange collects the rows whose line number on side falls inside
// [start, end], ordered by visual position. Rows with no number on that
// side contribute nothing.
func RowsForRange(rows []Row, side diffmodel.Side, start, end int) []RowRef {
	if start > end {
		start, end = end, start
	}

	var refs []RowRef
	for _, r := range rows {
		line := r.Line(side)
		if line == 0 || line < start || line > end {
			continue
		}
		refs = append(refs, RowRef{Position: r.Position, Line: line, Row: r})
	}
	return refs
}

// RowForLine finds the row carrying the given coordinate, if rendered.
func RowForLine(rows []Row, side diffmodel.Side, line int) (Row, bool) {
	for _, r := range rows {
		if r.Line(side) == line && line != 0 {
			return r, true
		}
	}
	return Row{}, false
}

// CoordinateAt resolves the logical coordinate of a row. In split mode the
// targeted side is honored strictly: a row with no number on that side
// yields no coordinate, never the other side's. In unified mode the
// new-side number is preferred, falling back to old.
func CoordinateAt(row Row, mode Mode, side diffmodel.Side) (diffmodel.Side, int, bool) {
	if mode == ModeUnified {
		if row.NewLine != 0 {
			return diffmodel.SideNew, row.NewLine, true
		}
		if row.OldLine != 0 {
			return diffmodel.SideOld, row.OldLine, true
		}
		return 0, 0, false
	}

	if line := row.Line(side); line != 0 {
		return side, line, true
	}
	return 0, 0, false
}
