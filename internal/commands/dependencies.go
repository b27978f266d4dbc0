package commands

import (
	"io"
	"os"
	"time"

	"github.com/diogo/kioskfeed/internal/api"
	"github.com/diogo/kioskfeed/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunKiosk(newSession tui.SessionFactory, fetcher api.FeedFetcher, opts tui.Options) error
}

// FetcherFactory builds the feed transport for a server base URL
type FetcherFactory func(serverURL string, timeout time.Duration) (api.FeedFetcher, error)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// TUI is the terminal user interface.
	TUI TUIInterface

	// NewFetcher creates the feed client.
	NewFetcher FetcherFactory

	// Out receives command output and plain-mode display lines.
	Out io.Writer

	// IsTerminal reports whether Out is an interactive terminal.
	IsTerminal func() bool
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunKiosk(newSession tui.SessionFactory, fetcher api.FeedFetcher, opts tui.Options) error {
	return tui.RunKiosk(newSession, fetcher, opts)
}

// NewFeedFetcher is the production FetcherFactory
func NewFeedFetcher(serverURL string, timeout time.Duration) (api.FeedFetcher, error) {
	return api.NewFeedClient(serverURL,
		api.WithTimeout(timeout),
		api.WithHeader("User-Agent", userAgent()),
	)
}

// userAgent identifies the display to the feed server
func userAgent() string {
	return "kiosk/" + Version
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:        &DefaultTUI{},
		NewFetcher: NewFeedFetcher,
		Out:        os.Stdout,
		IsTerminal: isStdoutTTY,
	}
}
