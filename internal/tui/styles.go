// Package tui provides terminal output components for wslkit.
//
// This package provides a small style system using Lip Gloss for consistent
// output styling. All colors use AdaptiveColor for light/dark terminal
// support. Call CheckNoColor() at the start of commands to respect the
// NO_COLOR environment variable; colors are also disabled when TERM=dumb.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

//nolint:gochecknoglobals // Intentional package-level constants for styling API
var (
	// ColorSuccess is green, used for success states and completed steps.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for warning states.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for error states and failed steps.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorInfo is blue, used for informational messages.
	ColorInfo = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}
)

// OutputStyles holds the lipgloss styles used by TTY output.
type OutputStyles struct {
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

// NewOutputStyles creates the default output styles.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().Foreground(ColorSuccess),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Error:   lipgloss.NewStyle().Foreground(ColorError),
		Info:    lipgloss.NewStyle().Foreground(ColorInfo),
	}
}

// CheckNoColor disables color rendering when the NO_COLOR environment
// variable is set or the terminal is dumb.
func CheckNoColor() {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
