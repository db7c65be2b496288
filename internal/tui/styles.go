package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Base styles for hueprompt TUI components
var (
	// Header style for titles and section headers
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// Label style for form field labels
	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	// Success style for positive feedback
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// Error style for error messages
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// Warning style for warnings
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// Muted style for secondary text
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Subtle style for hints and descriptions
	StyleSubtle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Italic(true)

	// Highlight style for selected/focused items
	StyleHighlight = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)
)

const logoASCII = `
 _                                            _   
| |__  _   _  ___ _ __  _ __ ___  _ __ ___  | |_ 
| '_ \| | | |/ _ \ '_ \| '__/ _ \| '_ ' _ \ | __|
| | | | |_| |  __/ |_) | | | (_) | | | | | || |_ 
|_| |_|\__,_|\___| .__/|_|  \___/|_| |_| |_| \__|
                 |_|                              `

// Logo returns the hueprompt ASCII art
func Logo() string {
	return StyleHeader.Render(strings.Trim(logoASCII, "\n"))
}
