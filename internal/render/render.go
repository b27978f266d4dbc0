package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Markdown renders full markdown content for terminal display.
// Uses a pooled renderer for better performance and thread safety.
func Markdown(content string, opts Options) (string, error) {
	r, err := renderers.lookup(opts)
	if err != nil {
		return "", err
	}
	return r.render(content)
}

// Content formats a message body according to opts.Mode.
// Full mode falls back to markdown-lite when glamour fails.
func Content(content string, base lipgloss.Style, opts Options) string {
	if strings.EqualFold(opts.Mode, ModeFull) {
		if out, err := Markdown(content, opts); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return LiteStyled(content, base)
}
