// Package render formats message content for terminal display.
package render

import "strings"

// Markdown modes
const (
	// ModeLite applies only **bold** and *italic*
	ModeLite = "lite"
	// ModeFull renders complete markdown through glamour
	ModeFull = "full"
)

// Options configures content rendering.
type Options struct {
	// Mode is ModeLite or ModeFull
	Mode string

	// Width defines the maximum output width for full markdown (default: 80)
	Width int

	// Style is the glamour standard style used in full mode: "dark" or "light"
	Style string

	// PreserveNewLines preserves original line breaks in full mode
	PreserveNewLines bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Mode:             ModeLite,
		Width:            80,
		Style:            "dark",
		PreserveNewLines: true,
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithMode returns Options with the specified markdown mode.
func (o Options) WithMode(mode string) Options {
	o.Mode = mode
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// IsValidMode reports whether mode names a known markdown mode
func IsValidMode(mode string) bool {
	switch strings.ToLower(mode) {
	case ModeLite, ModeFull:
		return true
	default:
		return false
	}
}
