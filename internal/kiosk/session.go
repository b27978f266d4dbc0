// Package kiosk holds the display session: the held feed, the rotation engine,
// the clock/calendar presenter and the rules tying them to a Renderer.
package kiosk

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	apierrors "github.com/diogo/kioskfeed/internal/errors"
	"github.com/diogo/kioskfeed/internal/models"
)

// Status is what the content region shows when no message is displayed
type Status int

const (
	StatusNone Status = iota
	StatusLoading
	StatusConfigError
	StatusFetchError
	StatusEmpty
)

// Text returns the localized string for the status
func (s Status) Text(locale models.Locale) string {
	switch s {
	case StatusLoading:
		return locale.Loading
	case StatusConfigError:
		return locale.MissingChat
	case StatusFetchError:
		return locale.FetchFailed
	case StatusEmpty:
		return locale.NoMessages
	default:
		return ""
	}
}

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusConfigError:
		return "config_error"
	case StatusFetchError:
		return "fetch_error"
	case StatusEmpty:
		return "empty"
	default:
		return "none"
	}
}

// Options configures a Session
type Options struct {
	ChatID         string
	ClassroomLabel string
	DefaultTitle   string
	Primary        models.Locale
	Secondary      models.Locale
	Location       *time.Location
	SyncServerTime bool
	// Now overrides the wall clock, mostly for tests
	Now func() time.Time
}

// Session is the single owner of display state. It is not safe for concurrent
// use: every method must be called from the same control goroutine.
type Session struct {
	id       string
	opts     Options
	renderer Renderer
	logger   *slog.Logger

	rotation *Rotation
	clock    *Clock
	feed     *models.Feed
	loaded   bool
	issued   uint64
	pending  bool
	status   Status
	title    string
}

// NewSession creates a session drawing on r
func NewSession(opts Options, r Renderer, logger *slog.Logger) *Session {
	id := uuid.NewString()
	if logger == nil {
		logger = slog.Default()
	}
	if opts.DefaultTitle == "" {
		opts.DefaultTitle = models.DefaultTitle
	}
	if opts.Primary.Code == "" {
		opts.Primary, _ = models.LookupLocale("it")
	}
	if opts.Secondary.Code == "" {
		opts.Secondary, _ = models.LookupLocale("en")
	}
	return &Session{
		id:       id,
		opts:     opts,
		renderer: r,
		logger:   logger.With("session", id),
		rotation: NewRotation(0),
		clock:    NewClock(opts.Location, opts.Now, opts.Primary, opts.Secondary),
		feed:     &models.Feed{},
		title:    opts.DefaultTitle,
	}
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// Start draws the initial screen. Without a channel id it shows the
// configuration error once and the session never fetches.
func (s *Session) Start() {
	s.renderer.SetTitle(s.title)
	s.renderer.SetClassroom(s.opts.ClassroomLabel)
	s.TickClock()
	s.renderer.SetProgress(s.rotation.State())

	if !s.CanFetch() {
		s.logger.Error("display not configured", "error", apierrors.NewMissingChatError())
		s.setStatus(StatusConfigError)
		return
	}
	s.logger.Info("session started", "chat", s.opts.ChatID, "classroom", s.opts.ClassroomLabel)
	s.setStatus(StatusLoading)
}

// CanFetch reports whether a channel id is configured
func (s *Session) CanFetch() bool {
	return s.opts.ChatID != ""
}

// StartFetch issues a new ticket, superseding any in-flight one
func (s *Session) StartFetch() (FetchTicket, bool) {
	if !s.CanFetch() {
		return FetchTicket{}, false
	}
	s.issued++
	s.pending = true
	return FetchTicket{SessionID: s.id, Generation: s.issued, ChatID: s.opts.ChatID}, true
}

// StartPoll issues a ticket for a scheduled refresh. It declines while the
// newest request is still outstanding, so a slow server is never abandoned
// by the next poll.
func (s *Session) StartPoll() (FetchTicket, bool) {
	if s.pending {
		s.logger.Debug("skipping poll, request in flight", "generation", s.issued)
		return FetchTicket{}, false
	}
	return s.StartFetch()
}

// Pending reports whether the newest request has not completed yet
func (s *Session) Pending() bool {
	return s.pending
}

// CompleteFetch applies a finished request to the session
func (s *Session) CompleteFetch(res FetchResult) FetchOutcome {
	log := s.logger.With("generation", res.Ticket.Generation, "chat", res.Ticket.ChatID)

	if res.Ticket.SessionID != s.id || res.Ticket.Generation < s.issued {
		log.Debug("discarding stale feed response", "latest", s.issued)
		return OutcomeStale
	}
	s.pending = false

	if res.Err != nil || res.Result == nil || res.Result.Feed == nil {
		err := res.Err
		if err == nil {
			err = apierrors.ErrInvalidResponse
		}
		log.Warn("feed fetch failed", "error", err, "status", apierrors.GetHTTPStatus(err),
			"transient", apierrors.IsTransient(err), "loaded", s.loaded)
		if !s.loaded {
			s.setStatus(StatusFetchError)
		}
		return OutcomeFailed
	}

	feed := res.Result.Feed
	if feed.Title != "" && feed.Title != s.title {
		s.title = feed.Title
		s.renderer.SetTitle(feed.Title)
	}
	if s.opts.SyncServerTime && !res.Result.ServerTime.IsZero() {
		s.clock.SyncTo(res.Result.ServerTime, res.Result.ReceivedAt)
	}

	if s.loaded && s.feed.SameMessages(feed) {
		log.Debug("feed unchanged", "messages", feed.Len())
		return OutcomeUnchanged
	}

	s.feed = feed
	s.loaded = true
	s.rotation.Reset(feed.Len())
	log.Info("feed updated", "messages", feed.Len(), "title", feed.Title)

	if feed.Len() == 0 {
		s.renderer.SetProgress(s.rotation.State())
		s.setStatus(StatusEmpty)
		return OutcomeChanged
	}
	s.status = StatusNone
	s.render()
	return OutcomeChanged
}

// Advance shows the next message. It is a no-op on an empty feed.
func (s *Session) Advance() bool {
	if !s.rotation.Advance() {
		return false
	}
	s.render()
	return true
}

// TickClock redraws the clock and the date
func (s *Session) TickClock() {
	s.renderer.SetClock(s.clock.Time())
	s.renderer.SetDate(s.clock.Date())
}

// ToggleLanguage flips the display language and redraws everything localized
func (s *Session) ToggleLanguage() models.DisplayLanguage {
	lang := s.clock.Toggle()
	s.TickClock()
	if s.status != StatusNone {
		s.renderer.ShowStatus(s.status.Text(s.clock.Locale()))
	}
	return lang
}

// Language returns the active display language
func (s *Session) Language() models.DisplayLanguage {
	return s.clock.Language()
}

// Rotation returns the rotation state
func (s *Session) Rotation() RotationState {
	return s.rotation.State()
}

// Status returns what the content region currently shows
func (s *Session) Status() Status {
	return s.status
}

// Feed returns the held feed
func (s *Session) Feed() *models.Feed {
	return s.feed
}

// Title returns the displayed title
func (s *Session) Title() string {
	return s.title
}

// Clock returns the session clock
func (s *Session) Clock() *Clock {
	return s.clock
}

func (s *Session) render() {
	state := s.rotation.State()
	msg, ok := s.feed.At(state.CurrentIndex)
	if !ok {
		return
	}
	s.renderer.ShowMessage(msg)
	s.renderer.SetProgress(state)
}

func (s *Session) setStatus(status Status) {
	s.status = status
	s.renderer.ShowStatus(status.Text(s.clock.Locale()))
}
