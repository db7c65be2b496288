package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/leonardotrapani/hueprompt/internal/theme"
)

// Color palette for the hueprompt chrome (menus, headers, messages).
// Palette previews use the colors derived by the theme engine instead.
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("#E85D75") // Coral - main accent
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan - secondary accent

	// Status colors
	ColorSuccess = lipgloss.Color("#22C55E") // Green
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorWarning = lipgloss.Color("#F59E0B") // Amber

	// Text colors
	ColorText   = lipgloss.Color("#F8FAFC") // Bright white
	ColorMuted  = lipgloss.Color("#94A3B8") // Slate gray
	ColorSubtle = lipgloss.Color("#64748B") // Darker gray
)

// previewStyles are the lipgloss styles for a palette rendered in a theme state
type previewStyles struct {
	frame   lipgloss.Style
	title   lipgloss.Style
	comment lipgloss.Style
	footer  lipgloss.Style
}

func stylesFor(st theme.State) previewStyles {
	bg := lipgloss.Color(st.Background)
	text := lipgloss.Color(st.Text)
	return previewStyles{
		frame: lipgloss.NewStyle().
			Background(bg).
			Foreground(text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(st.Accent)).
			Padding(1, 2),
		title: lipgloss.NewStyle().
			Background(bg).
			Foreground(text).
			Bold(true),
		comment: lipgloss.NewStyle().
			Background(lipgloss.Color(st.Secondary)).
			Foreground(text).
			Padding(0, 1),
		footer: lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color(st.Accent)).
			Italic(true),
	}
}
