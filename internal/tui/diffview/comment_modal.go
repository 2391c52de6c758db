package diffview

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/diffview/internal/core/styles"
)

// CommentModal handles comment entry for a line range.
type CommentModal struct {
	input       textinput.Model
	startLine   int
	endLine     int
	codeContent string
	submitted   bool
	cancelled   bool
}

// NewCommentModal creates a comment modal for [startLine, endLine].
func NewCommentModal(startLine, endLine int, codeContent string, width int) *CommentModal {
	ti := textinput.New()
	ti.Placeholder = "Enter your review comment..."
	ti.Focus()
	ti.SetWidth(max(width-10, 20))

	return &CommentModal{
		input:       ti,
		startLine:   startLine,
		endLine:     endLine,
		codeContent: codeContent,
	}
}

// SetValue pre-fills the input when editing an existing comment.
func (m *CommentModal) SetValue(text string) {
	m.input.SetValue(text)
	m.input.CursorEnd()
}

// Update handles key input while the modal is open.
func (m *CommentModal) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		if m.input.Value() != "" {
			m.submitted = true
			return nil
		}
	case "esc":
		m.cancelled = true
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// View renders the modal content.
func (m *CommentModal) View() string {
	lineRange := fmt.Sprintf("Lines %d-%d", m.startLine, m.endLine)
	if m.startLine == m.endLine {
		lineRange = fmt.Sprintf("Line %d", m.startLine)
	}

	preview := m.codeContent
	if len(preview) > 100 {
		preview = preview[:97] + "..."
	}

	parts := []string{
		styles.ModalTitleStyle.Render("Add Review Comment"),
		styles.StatusStatsStyle.Render(lineRange),
	}
	if preview != "" {
		parts = append(parts, styles.CommentTextStyle.Render("\""+preview+"\""))
	}
	parts = append(parts,
		m.input.View(),
		styles.ModalHelpStyle.Render("enter: submit • esc: cancel"),
	)

	return strings.Join(parts, "\n")
}

// Submitted returns true once the comment was submitted.
func (m *CommentModal) Submitted() bool {
	return m.submitted
}

// Cancelled returns true once the modal was dismissed.
func (m *CommentModal) Cancelled() bool {
	return m.cancelled
}

// Value returns the entered comment text.
func (m *CommentModal) Value() string {
	return m.input.Value()
}

// StartLine returns the anchored range start.
func (m *CommentModal) StartLine() int {
	return m.startLine
}

// EndLine returns the anchored range end.
func (m *CommentModal) EndLine() int {
	return m.endLine
}

// CodeContent returns the captured code context.
func (m *CommentModal) CodeContent() string {
	return m.codeContent
}
