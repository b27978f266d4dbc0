package render

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Markdown-lite patterns. Both are non-greedy and never cross a line break.
var (
	boldPattern   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern = regexp.MustCompile(`\*(.*?)\*`)
)

// Span is a run of text with a single emphasis.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
}

// ParseLite splits text into spans using the **bold** and *italic* markers.
// Bold is matched first; italic is then matched in the text left between bold runs.
// Markers carry no escaping and do not nest. Empty emphasis runs are dropped.
func ParseLite(text string) []Span {
	var spans []Span
	last := 0
	for _, loc := range boldPattern.FindAllStringSubmatchIndex(text, -1) {
		spans = appendItalic(spans, text[last:loc[0]])
		if inner := text[loc[2]:loc[3]]; inner != "" {
			spans = append(spans, Span{Text: inner, Bold: true})
		}
		last = loc[1]
	}
	return appendItalic(spans, text[last:])
}

func appendItalic(spans []Span, text string) []Span {
	last := 0
	for _, loc := range italicPattern.FindAllStringSubmatchIndex(text, -1) {
		spans = appendPlain(spans, text[last:loc[0]])
		if inner := text[loc[2]:loc[3]]; inner != "" {
			spans = append(spans, Span{Text: inner, Italic: true})
		}
		last = loc[1]
	}
	return appendPlain(spans, text[last:])
}

func appendPlain(spans []Span, text string) []Span {
	if text == "" {
		return spans
	}
	if n := len(spans); n > 0 && !spans[n-1].Bold && !spans[n-1].Italic {
		spans[n-1].Text += text
		return spans
	}
	return append(spans, Span{Text: text})
}

// LiteText returns the text with markdown-lite markers removed
func LiteText(text string) string {
	var sb strings.Builder
	for _, s := range ParseLite(text) {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// LiteStyled renders markdown-lite text with lipgloss, starting from base.
// Spans are rendered line by line so wrapping by the caller keeps styles intact.
func LiteStyled(text string, base lipgloss.Style) string {
	var sb strings.Builder
	for _, s := range ParseLite(text) {
		style := base
		if s.Bold {
			style = style.Bold(true)
		}
		if s.Italic {
			style = style.Italic(true)
		}
		lines := strings.Split(s.Text, "\n")
		for i, line := range lines {
			if i > 0 {
				sb.WriteString("\n")
			}
			if line != "" {
				sb.WriteString(style.Render(line))
			}
		}
	}
	return sb.String()
}
