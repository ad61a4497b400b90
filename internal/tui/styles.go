package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Application branding constants
const (
	AppName = "KVM SWITCH CONTROL"
)

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 48  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF0000") // Red
	SubtleColor    = lipgloss.Color("#626262") // Gray
)

// Common styles
var (
	// Title style - bold, colored header
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0)

	// Subtitle style for the device address line
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	// Port cell (unselected, inactive)
	PortStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	// Port cell under the cursor
	PortCursorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Foreground(PrimaryColor).
			Bold(true).
			Padding(0, 1)

	// Port cell for the currently active port
	PortActiveStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Foreground(SecondaryColor).
			Bold(true).
			Padding(0, 1)

	// Status line styles
	StatusStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	StatusBusyStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)
)

// TerminalWidth returns the usable content width for the current terminal
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}
