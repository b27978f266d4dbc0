package kiosk

import "github.com/diogo/kioskfeed/internal/models"

// Renderer is the display surface a Session draws on.
// All methods are called from the goroutine that owns the Session.
type Renderer interface {
	// ShowMessage puts a message in the content, author and timestamp regions
	ShowMessage(msg models.Message)
	// ShowStatus replaces the content region with a localized status string
	ShowStatus(text string)
	// SetProgress redraws the progress bar set; the active bar restarts from zero
	SetProgress(state RotationState)
	SetClock(text string)
	SetDate(text string)
	SetTitle(title string)
	SetClassroom(label string)
}
