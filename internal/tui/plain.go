package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/diogo/kioskfeed/internal/kiosk"
	"github.com/diogo/kioskfeed/internal/models"
	"github.com/diogo/kioskfeed/internal/render"
)

// PlainRenderer prints one line per visible change, for terminals without
// cursor control and for service logs. The clock is not printed.
type PlainRenderer struct {
	out  io.Writer
	now  func() time.Time
	date string
}

// NewPlainRenderer creates a renderer writing to out
func NewPlainRenderer(out io.Writer) *PlainRenderer {
	return &PlainRenderer{out: out, now: time.Now}
}

func (p *PlainRenderer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s "+format+"\n", append([]interface{}{p.now().Format("15:04:05")}, args...)...)
}

func (p *PlainRenderer) ShowMessage(msg models.Message) {
	content := strings.ReplaceAll(render.LiteText(msg.Content), "\n", " / ")
	p.printf("[message] %s | %s (%s)", content, msg.Author, msg.Timestamp)
}

func (p *PlainRenderer) ShowStatus(text string) {
	p.printf("[status] %s", text)
}

func (p *PlainRenderer) SetProgress(state kiosk.RotationState) {
	if state.Empty() {
		return
	}
	p.printf("[progress] %d/%d", state.CurrentIndex+1, state.SequenceLength)
}

func (p *PlainRenderer) SetClock(string) {}

func (p *PlainRenderer) SetDate(text string) {
	if text == p.date {
		return
	}
	p.date = text
	p.printf("[date] %s", text)
}

func (p *PlainRenderer) SetTitle(title string) {
	p.printf("[title] %s", title)
}

func (p *PlainRenderer) SetClassroom(label string) {
	if label == "" {
		return
	}
	p.printf("[classroom] %s", label)
}
