package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Base styles for qwenvoice TUI components
var (
	// Header style for titles and section headers
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

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
)

const logoASCII = `
  __ ___      _____ _ ____   _____ (_) ___ ___
 / _` + "`" + ` \ \ /\ / / _ \ '_ \ \ / / _ \| |/ __/ _ \
| (_| |\ V  V /  __/ | | \ V / (_) | | (_|  __/
 \__, | \_/\_/ \___|_| |_|\_/ \___/|_|\___\___|
    |_|`

// Logo returns the qwenvoice ASCII art
func Logo() string {
	return StyleHeader.Render(strings.Trim(logoASCII, "\n"))
}
