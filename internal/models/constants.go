// Package models contains data types and constants for the kiosk feed display.
package models

import "time"

// FeedPath is the backend path serving a channel feed.
const FeedPath = "/feed.json"

// ChatParam and ClassroomParam are the page URL query parameters read at startup.
const (
	ChatParam      = "chat"
	ClassroomParam = "classroom"
)

// Default cadences
const (
	DefaultRotationInterval = 20 * time.Second
	DefaultRefreshInterval  = 60 * time.Second
	DefaultLanguageInterval = 15 * time.Second
	DefaultClockInterval    = time.Second
	DefaultResetInterval    = 4 * time.Hour
	DefaultRequestTimeout   = 10 * time.Second
)

// DefaultTitle is shown until a feed with a title has loaded.
const DefaultTitle = "Telegram Feed"

// DefaultHeaders returns the headers sent with every feed request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":          "application/json",
		"Accept-Language": "it-IT,it;q=0.9,en;q=0.8",
		"Cache-Control":   "no-cache",
		"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
	}
}
