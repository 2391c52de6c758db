// Package styles provides shared lipgloss v2 styles for the diff surface.
package styles

import (
	"image/color"
	"sort"

	lipgloss "charm.land/lipgloss/v2"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
	"catppuccin": {
		Primary:    lipgloss.Color("#89b4fa"), // Blue
		Secondary:  lipgloss.Color("#94e2d5"), // Teal
		Foreground: lipgloss.Color("#cdd6f4"), // Text
		Muted:      lipgloss.Color("#6c7086"), // Overlay0
		Background: lipgloss.Color("#1e1e2e"), // Base
		Surface:    lipgloss.Color("#313244"), // Surface0
		Success:    lipgloss.Color("#a6e3a1"), // Green
		Warning:    lipgloss.Color("#f9e2af"), // Yellow
		Error:      lipgloss.Color("#f38ba8"), // Red
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// Diff surface styles.
	AdditionStyle    lipgloss.Style
	DeletionStyle    lipgloss.Style
	ContextStyle     lipgloss.Style
	GutterStyle      lipgloss.Style
	HunkHeaderStyle  lipgloss.Style
	GapStyle         lipgloss.Style
	SelectionStyle   lipgloss.Style
	CursorLineStyle  lipgloss.Style
	CommentTextStyle lipgloss.Style
	CommentMarkStyle lipgloss.Style
	BlockActionStyle lipgloss.Style
	PendingStyle     lipgloss.Style

	// Status bar.
	StatusBarStyle   lipgloss.Style
	StatusModeStyle  lipgloss.Style
	StatusFileStyle  lipgloss.Style
	StatusStatsStyle lipgloss.Style

	// File strip.
	FileSelectedStyle lipgloss.Style
	FileNormalStyle   lipgloss.Style

	// Modals.
	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonSelectedStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	AdditionStyle = lipgloss.NewStyle().Foreground(p.Success)
	DeletionStyle = lipgloss.NewStyle().Foreground(p.Error)
	ContextStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	GutterStyle = lipgloss.NewStyle().Foreground(p.Muted)
	HunkHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)
	GapStyle = lipgloss.NewStyle().Foreground(p.Surface)
	SelectionStyle = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.Foreground)
	CursorLineStyle = lipgloss.NewStyle().
		Background(p.Surface).
		Bold(true)
	CommentTextStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Italic(true)
	CommentMarkStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)
	BlockActionStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	PendingStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.Foreground)
	StatusModeStyle = lipgloss.NewStyle().
		Background(p.Primary).
		Foreground(p.Background).
		Bold(true).
		Padding(0, 1)
	StatusFileStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Padding(0, 1)
	StatusStatsStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1)

	FileSelectedStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	FileNormalStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Foreground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Surface).
		Foreground(p.Muted)
	ModalButtonSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Primary).
		Foreground(p.Background).
		Bold(true)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
