package kiosk

import (
	"context"
	"time"

	"github.com/diogo/kioskfeed/internal/api"
)

// FetchTicket identifies one feed request. A completion is applied only if its
// ticket is still the newest one issued by the same session.
type FetchTicket struct {
	SessionID  string
	Generation uint64
	ChatID     string
}

// FetchResult is the completion of a ticket
type FetchResult struct {
	Ticket FetchTicket
	Result *api.FeedResult
	Err    error
}

// Run performs the request. It touches no session state and may run on any goroutine.
func (t FetchTicket) Run(ctx context.Context, src api.FeedFetcher, timeout time.Duration) FetchResult {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	result, err := src.FetchFeed(ctx, t.ChatID)
	return FetchResult{Ticket: t, Result: result, Err: err}
}

// FetchOutcome tells the caller what a completion did to the session
type FetchOutcome int

const (
	// OutcomeStale means a newer request was issued, or the session was replaced
	OutcomeStale FetchOutcome = iota
	// OutcomeFailed means the request failed and the previous feed was kept
	OutcomeFailed
	// OutcomeUnchanged means the messages equal the held ones
	OutcomeUnchanged
	// OutcomeChanged means the feed was replaced and the rotation reset
	OutcomeChanged
)

func (o FetchOutcome) String() string {
	switch o {
	case OutcomeStale:
		return "stale"
	case OutcomeFailed:
		return "failed"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeChanged:
		return "changed"
	default:
		return "unknown"
	}
}
