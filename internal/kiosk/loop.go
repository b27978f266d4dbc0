package kiosk

import (
	"context"
	"time"

	"github.com/diogo/kioskfeed/internal/api"
	"github.com/diogo/kioskfeed/internal/models"
)

// Schedule holds the independent cadences driving a session
type Schedule struct {
	Rotation time.Duration
	Refresh  time.Duration
	Language time.Duration
	Clock    time.Duration
	// Reset rebuilds the whole session; zero disables it
	Reset   time.Duration
	Timeout time.Duration
}

// DefaultSchedule returns the stock cadences
func DefaultSchedule() Schedule {
	return Schedule{
		Rotation: models.DefaultRotationInterval,
		Refresh:  models.DefaultRefreshInterval,
		Language: models.DefaultLanguageInterval,
		Clock:    models.DefaultClockInterval,
		Reset:    models.DefaultResetInterval,
		Timeout:  models.DefaultRequestTimeout,
	}
}

// WithDefaults fills every unset cadence except Reset with its default
func (s Schedule) WithDefaults() Schedule {
	d := DefaultSchedule()
	if s.Rotation <= 0 {
		s.Rotation = d.Rotation
	}
	if s.Refresh <= 0 {
		s.Refresh = d.Refresh
	}
	if s.Language <= 0 {
		s.Language = d.Language
	}
	if s.Clock <= 0 {
		s.Clock = d.Clock
	}
	if s.Timeout <= 0 {
		s.Timeout = d.Timeout
	}
	return s
}

// Loop drives sessions from newSession until ctx is done. It is the event loop
// used when no terminal UI runs: the calling goroutine owns the session and
// fetches run in their own goroutines.
func Loop(ctx context.Context, newSession func() *Session, src api.FeedFetcher, sched Schedule) error {
	sched = sched.WithDefaults()
	results := make(chan FetchResult, 1)

	fetch := func(start func() (FetchTicket, bool)) {
		ticket, ok := start()
		if !ok {
			return
		}
		go func() {
			res := ticket.Run(ctx, src, sched.Timeout)
			select {
			case results <- res:
			case <-ctx.Done():
			}
		}()
	}

	session := newSession()
	session.Start()
	fetch(session.StartFetch)

	rotation := time.NewTicker(sched.Rotation)
	defer rotation.Stop()
	refresh := time.NewTicker(sched.Refresh)
	defer refresh.Stop()
	language := time.NewTicker(sched.Language)
	defer language.Stop()
	clock := time.NewTicker(sched.Clock)
	defer clock.Stop()

	var reset <-chan time.Time
	if sched.Reset > 0 {
		t := time.NewTicker(sched.Reset)
		defer t.Stop()
		reset = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res := <-results:
			if session.CompleteFetch(res) == OutcomeChanged {
				rotation.Reset(sched.Rotation)
			}
		case <-rotation.C:
			session.Advance()
		case <-refresh.C:
			fetch(session.StartPoll)
		case <-language.C:
			session.ToggleLanguage()
		case <-clock.C:
			session.TickClock()
		case <-reset:
			session = newSession()
			session.Start()
			fetch(session.StartFetch)
			rotation.Reset(sched.Rotation)
			language.Reset(sched.Language)
		}
	}
}
