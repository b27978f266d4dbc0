package tui

import (
	"github.com/diogo/kioskfeed/internal/kiosk"
	"github.com/diogo/kioskfeed/internal/models"
)

// Screen is the kiosk.Renderer behind the terminal UI. The session writes
// into it and the Model reads it back when drawing.
type Screen struct {
	title     string
	classroom string
	clock     string
	date      string

	message    models.Message
	hasMessage bool
	status     string
	progress   kiosk.RotationState

	// contentVersion changes whenever the content region must be redrawn,
	// progressVersion whenever the active bar must restart from zero.
	contentVersion  int
	progressVersion int
}

// NewScreen creates an empty screen
func NewScreen() *Screen {
	return &Screen{}
}

func (s *Screen) ShowMessage(msg models.Message) {
	s.message = msg
	s.hasMessage = true
	s.status = ""
	s.contentVersion++
}

func (s *Screen) ShowStatus(text string) {
	s.status = text
	s.hasMessage = false
	s.message = models.Message{}
	s.contentVersion++
}

func (s *Screen) SetProgress(state kiosk.RotationState) {
	s.progress = state
	s.progressVersion++
}

func (s *Screen) SetClock(text string)      { s.clock = text }
func (s *Screen) SetDate(text string)       { s.date = text }
func (s *Screen) SetTitle(title string)     { s.title = title }
func (s *Screen) SetClassroom(label string) { s.classroom = label }

// Message returns the displayed message, if any
func (s *Screen) Message() (models.Message, bool) {
	return s.message, s.hasMessage
}

// Status returns the displayed status string, empty while a message is shown
func (s *Screen) Status() string {
	return s.status
}

// Progress returns the last progress state drawn
func (s *Screen) Progress() kiosk.RotationState {
	return s.progress
}

func (s *Screen) Title() string     { return s.title }
func (s *Screen) Classroom() string { return s.classroom }
func (s *Screen) Clock() string     { return s.clock }
func (s *Screen) Date() string      { return s.date }
