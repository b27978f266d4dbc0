// Package tui provides the terminal presentation of the kiosk display.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/kioskfeed/internal/errors"
	"github.com/diogo/kioskfeed/internal/render"
)

// Color variables (updated from theme)
var (
	colorBorder lipgloss.Color

	// Accent colors
	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorError     lipgloss.Color

	// Text colors
	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	// Header panel style
	headerStyle lipgloss.Style

	// Title style for header
	titleStyle lipgloss.Style

	// Classroom label in the header
	classroomStyle lipgloss.Style

	// Clock in the header
	clockStyle lipgloss.Style

	// Content panel
	contentStyle lipgloss.Style

	// Message body text
	bodyStyle lipgloss.Style

	// Footer with author and timestamp
	authorStyle    lipgloss.Style
	timestampStyle lipgloss.Style

	// Date line under the footer
	dateStyle lipgloss.Style

	// Loading/spinner style
	loadingStyle lipgloss.Style

	// Status strings shown in place of a message
	statusStyle lipgloss.Style
	errorStyle  lipgloss.Style

	// Key hints
	hintStyle lipgloss.Style
)

// init loads the default theme on package initialization
func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

// rebuildStyles creates all lipgloss styles with current color values
func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	classroomStyle = lipgloss.NewStyle().
		Foreground(colorAccent)

	clockStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	contentStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1, 2)

	bodyStyle = lipgloss.NewStyle().
		Foreground(colorText)

	authorStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true)

	timestampStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	dateStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	statusStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)
}

// FormatError returns a styled error message with additional context.
// It extracts details from structured feed errors if available.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	switch {
	case errors.IsMissingChat(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Pass --chat or a page URL with ?chat=<id>"))
	case errors.IsConfigError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check the config file, KIOSK_* variables and flags"))
	case errors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check the server address and your connection"))
	case errors.IsTimeoutError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The feed server did not answer in time"))
	case errors.IsParseError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The server did not return a feed document"))
	}

	return sb.String()
}

// PrintError prints a styled error message to stderr.
func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, FormatError(err))
}
