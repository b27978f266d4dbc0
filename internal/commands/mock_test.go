package commands

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/diogo/kioskfeed/internal/api"
	"github.com/diogo/kioskfeed/internal/models"
	"github.com/diogo/kioskfeed/internal/tui"
)

type mockFetcher struct {
	mu     sync.Mutex
	result *api.FeedResult
	err    error
	chats  []string
}

func (m *mockFetcher) FetchFeed(ctx context.Context, chatID string) (*api.FeedResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chats = append(m.chats, chatID)
	return m.result, m.err
}

func (m *mockFetcher) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.chats)
}

type mockTUI struct {
	called  bool
	factory tui.SessionFactory
	opts    tui.Options
	err     error
}

func (m *mockTUI) RunKiosk(newSession tui.SessionFactory, fetcher api.FeedFetcher, opts tui.Options) error {
	m.called = true
	m.factory = newSession
	m.opts = opts
	return m.err
}

type testDeps struct {
	*Dependencies
	out       *bytes.Buffer
	tui       *mockTUI
	fetcher   *mockFetcher
	serverURL string
	timeout   time.Duration
}

func newTestDeps(t *testing.T, terminal bool) *testDeps {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	td := &testDeps{
		out: &bytes.Buffer{},
		tui: &mockTUI{},
		fetcher: &mockFetcher{result: &api.FeedResult{Feed: &models.Feed{
			Title: "Bacheca 3A",
			Messages: []models.Message{
				{Content: "**Uscita** anticipata", Author: "Segreteria", Timestamp: "14/10/2026 08:00"},
				{Content: "Gita *annullata*", Author: "Preside", Timestamp: "13/10/2026 17:30"},
			},
		}}},
	}
	td.Dependencies = &Dependencies{
		TUI: td.tui,
		NewFetcher: func(serverURL string, timeout time.Duration) (api.FeedFetcher, error) {
			td.serverURL = serverURL
			td.timeout = timeout
			return td.fetcher, nil
		},
		Out:        td.out,
		IsTerminal: func() bool { return terminal },
	}
	return td
}
