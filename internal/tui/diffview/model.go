package diffview

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/colonyops/diffview/internal/core/logging"
)

// ModelOptions configures the top-level program model.
type ModelOptions struct {
	View        Options
	FeedbackDir string // where exported feedback files land; cwd when empty
	CopyCommand string // shell command receiving feedback on stdin
}

// Model is the program root: it owns quit handling and feedback export,
// and forwards everything else to the diff view.
type Model struct {
	view        View
	sessionID   string
	feedbackDir string
	copyCommand string
	width       int
	height      int
	quitting    bool
	initialized bool
}

// NewModel creates the top-level model.
func NewModel(opts ModelOptions) Model {
	return Model{
		view:        New(opts.View),
		sessionID:   uuid.NewString(),
		feedbackDir: opts.FeedbackDir,
		copyCommand: opts.CopyCommand,
		width:       80,
		height:      24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	log := logging.Component("diffview")
	log.Debug().Str("session", m.sessionID).Msg("diffview: session started")
	return m.view.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.SetSize(msg.Width, msg.Height)

		// nothing renders until the first resize supplies real bounds
		if !m.initialized {
			m.initialized = true
		}
		return m, nil

	case tea.KeyMsg:
		if !m.view.HasActiveEditor() {
			switch msg.String() {
			case "ctrl+c", "q":
				m.quitting = true
				return m, tea.Quit
			}
		}

	case FinalizedMsg:
		m.exportFeedback(msg.Feedback)
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// View implements tea.Model. Mouse reporting is requested per view; the
// empty quitting view drops it so the terminal is restored on exit.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	v := tea.NewView(m.view.View())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// exportFeedback prints the feedback to stderr first so it survives a
// failed clipboard copy, then best-efforts the copy and a file fallback.
func (m Model) exportFeedback(feedback string) {
	if feedback == "" {
		return
	}

	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "=== Review Feedback ===")
	fmt.Fprintln(os.Stderr, feedback)
	fmt.Fprintln(os.Stderr, "=======================")
	fmt.Fprintln(os.Stderr, "")

	if err := m.copyToClipboard(feedback); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to copy to clipboard: %v\n", err)

		if path, saveErr := m.saveFeedbackToFile(feedback); saveErr == nil {
			fmt.Fprintf(os.Stderr, "Feedback saved to: %s\n", path)
		} else {
			fmt.Fprintln(os.Stderr, "Feedback is printed above and can be retrieved from terminal history.")
		}
	}
}

func (m Model) copyToClipboard(text string) error {
	if m.copyCommand == "" {
		return fmt.Errorf("no copy command configured")
	}

	parts := strings.Fields(m.copyCommand)
	if len(parts) == 0 {
		return fmt.Errorf("empty copy command")
	}

	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func (m Model) saveFeedbackToFile(feedback string) (string, error) {
	dir := m.feedbackDir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get current directory: %w", err)
		}
	}

	name := fmt.Sprintf("review-feedback-%s-%s.md", time.Now().Format("2006-01-02"), shortID(m.sessionID))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(feedback), 0o644); err != nil {
		return "", fmt.Errorf("write feedback file: %w", err)
	}

	return path, nil
}

// shortID trims a session id to the leading uuid group, enough to keep
// concurrent review sessions from clobbering each other's files.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run starts the program and blocks until it exits.
func Run(opts ModelOptions) error {
	p := tea.NewProgram(NewModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run diff view: %w", err)
	}
	return nil
}
