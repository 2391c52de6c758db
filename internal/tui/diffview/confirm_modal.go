package diffview

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/diffview/internal/core/styles"
)

// ConfirmModal is a yes/no prompt.
type ConfirmModal struct {
	prompt    string
	yes       bool
	confirmed bool
	cancelled bool
}

// NewConfirmModal creates a confirmation prompt, defaulting to "No".
func NewConfirmModal(prompt string) *ConfirmModal {
	return &ConfirmModal{prompt: prompt}
}

// Update handles key input while the prompt is open.
func (m *ConfirmModal) Update(msg tea.KeyMsg) {
	switch msg.String() {
	case "left", "right", "h", "l", "tab":
		m.yes = !m.yes
	case "y":
		m.confirmed = true
	case "n", "esc":
		m.cancelled = true
	case "enter":
		if m.yes {
			m.confirmed = true
		} else {
			m.cancelled = true
		}
	}
}

// View renders the prompt content.
func (m *ConfirmModal) View() string {
	yesStyle, noStyle := styles.ModalButtonStyle, styles.ModalButtonSelectedStyle
	if m.yes {
		yesStyle, noStyle = styles.ModalButtonSelectedStyle, styles.ModalButtonStyle
	}

	buttons := yesStyle.Render("Yes") + "  " + noStyle.Render("No")

	return strings.Join([]string{
		styles.ModalTitleStyle.Render(m.prompt),
		"",
		buttons,
		styles.ModalHelpStyle.Render("y/n • enter: choose • esc: cancel"),
	}, "\n")
}

// Confirmed reports whether the user accepted.
func (m *ConfirmModal) Confirmed() bool {
	return m.confirmed
}

// Cancelled reports whether the user declined or dismissed.
func (m *ConfirmModal) Cancelled() bool {
	return m.cancelled
}
