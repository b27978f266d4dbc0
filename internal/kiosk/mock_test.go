package kiosk

import (
	"context"
	"sync"
	"time"

	"github.com/diogo/kioskfeed/internal/api"
	"github.com/diogo/kioskfeed/internal/models"
)

// recordingRenderer captures every draw call
type recordingRenderer struct {
	mu        sync.Mutex
	messages  []models.Message
	statuses  []string
	progress  []RotationState
	clock     string
	dates     []string
	titles    []string
	classroom string
}

func (r *recordingRenderer) ShowMessage(msg models.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recordingRenderer) ShowStatus(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, text)
}

func (r *recordingRenderer) SetProgress(state RotationState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, state)
}

func (r *recordingRenderer) SetClock(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = text
}

func (r *recordingRenderer) SetDate(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dates = append(r.dates, text)
}

func (r *recordingRenderer) SetTitle(title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.titles = append(r.titles, title)
}

func (r *recordingRenderer) SetClassroom(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classroom = label
}

func (r *recordingRenderer) lastMessage() (models.Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return models.Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}

func (r *recordingRenderer) lastStatus() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statuses) == 0 {
		return ""
	}
	return r.statuses[len(r.statuses)-1]
}

func (r *recordingRenderer) lastProgress() RotationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.progress) == 0 {
		return RotationState{}
	}
	return r.progress[len(r.progress)-1]
}

func (r *recordingRenderer) messageCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

// mockFetcher returns queued results in order, then repeats the last one
type mockFetcher struct {
	mu      sync.Mutex
	results []*api.FeedResult
	errs    []error
	calls   int
	chats   []string
	// delay holds every response back, honoring ctx
	delay time.Duration
}

func (m *mockFetcher) FetchFeed(ctx context.Context, chatID string) (*api.FeedResult, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chats = append(m.chats, chatID)
	i := m.calls
	m.calls++
	if n := len(m.results); n > 0 && i >= n {
		i = n - 1
	}
	var res *api.FeedResult
	var err error
	if i < len(m.results) {
		res = m.results[i]
	}
	if i < len(m.errs) {
		err = m.errs[i]
	}
	return res, err
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func feedOf(title string, contents ...string) *models.Feed {
	f := &models.Feed{Title: title}
	for _, c := range contents {
		f.Messages = append(f.Messages, models.Message{Content: c, Author: "Segreteria", Timestamp: "14/10/2026 08:00"})
	}
	return f
}
