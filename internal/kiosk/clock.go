package kiosk

import (
	"fmt"
	"time"

	"github.com/diogo/kioskfeed/internal/models"
)

// Clock presents wall-clock time and the localized date.
// The displayed language toggles between two locales.
type Clock struct {
	loc     *time.Location
	now     func() time.Time
	offset  time.Duration
	lang    models.DisplayLanguage
	locales [2]models.Locale
}

// NewClock creates a clock starting in the primary language
func NewClock(loc *time.Location, now func() time.Time, primary, secondary models.Locale) *Clock {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Clock{
		loc:     loc,
		now:     now,
		lang:    models.LanguagePrimary,
		locales: [2]models.Locale{primary, secondary},
	}
}

// Now returns the current time in the display zone, corrected by the server offset
func (c *Clock) Now() time.Time {
	return c.now().Add(c.offset).In(c.loc)
}

// Time returns the current time as HH:MM:SS
func (c *Clock) Time() string {
	return FormatTime(c.Now())
}

// Date returns the current date in the active language
func (c *Clock) Date() string {
	return FormatDate(c.Now(), c.Locale())
}

// Language returns the active display language
func (c *Clock) Language() models.DisplayLanguage {
	return c.lang
}

// Locale returns the locale of the active display language
func (c *Clock) Locale() models.Locale {
	return c.locales[c.lang]
}

// Toggle flips the display language and returns the new one
func (c *Clock) Toggle() models.DisplayLanguage {
	c.lang = c.lang.Toggle()
	return c.lang
}

// SyncTo aligns the clock with a server timestamp observed at local time.
// Offsets under one second are ignored since the Date header has second resolution.
func (c *Clock) SyncTo(server, local time.Time) {
	if server.IsZero() || local.IsZero() {
		return
	}
	offset := server.Sub(local).Truncate(time.Second)
	c.offset = offset
}

// Offset returns the current server offset
func (c *Clock) Offset() time.Duration {
	return c.offset
}

// FormatTime formats t as zero-padded 24h HH:MM:SS
func FormatTime(t time.Time) string {
	return t.Format("15:04:05")
}

// FormatDate formats t as "<Weekday>, <day> <Month> <year>" using locale names
func FormatDate(t time.Time, locale models.Locale) string {
	return fmt.Sprintf("%s, %d %s %d", locale.Days[t.Weekday()], t.Day(), locale.Months[t.Month()-1], t.Year())
}
