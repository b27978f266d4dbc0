package tui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/kioskfeed/internal/api"
	"github.com/diogo/kioskfeed/internal/kiosk"
	"github.com/diogo/kioskfeed/internal/models"
)

type mockFetcher struct {
	mu    sync.Mutex
	feed  *models.Feed
	err   error
	calls int
}

func (f *mockFetcher) FetchFeed(ctx context.Context, chatID string) (*api.FeedResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &api.FeedResult{Feed: f.feed}, nil
}

var testNow = time.Date(2026, time.October, 14, 8, 0, 0, 0, time.UTC)

func sessionFactory(chat string) SessionFactory {
	it, _ := models.LookupLocale("it")
	en, _ := models.LookupLocale("en")
	return func(r kiosk.Renderer) *kiosk.Session {
		return kiosk.NewSession(kiosk.Options{
			ChatID:         chat,
			ClassroomLabel: "Aula 3A",
			Primary:        it,
			Secondary:      en,
			Location:       time.UTC,
			Now:            func() time.Time { return testNow },
		}, r, slog.New(slog.NewTextHandler(io.Discard, nil)))
	}
}

func testFeed(contents ...string) *models.Feed {
	f := &models.Feed{Title: "Bacheca"}
	for _, c := range contents {
		f.Messages = append(f.Messages, models.Message{Content: c, Author: "Segreteria", Timestamp: "14/10/2026"})
	}
	return f
}

func newTestModel(t *testing.T, chat string, fetcher api.FeedFetcher) Model {
	t.Helper()
	m := NewModel(sessionFactory(chat), fetcher, Options{
		Schedule: kiosk.Schedule{Rotation: 20 * time.Second},
		Now:      func() time.Time { return testNow },
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// deliver runs a fetch the same way the program would and feeds the result back
func deliver(t *testing.T, m Model) Model {
	t.Helper()
	cmd := m.fetch()
	if cmd == nil {
		t.Fatal("fetch() returned no command")
	}
	m, _ = update(t, m, cmd())
	return m
}

func TestNewModel_StartsLoading(t *testing.T) {
	m := newTestModel(t, "-100123", &mockFetcher{})

	if m.Session().Status() != kiosk.StatusLoading {
		t.Errorf("status = %s, want loading", m.Session().Status())
	}
	if m.Screen().Title() != models.DefaultTitle {
		t.Errorf("title = %q", m.Screen().Title())
	}
	view := m.View()
	for _, want := range []string{"Caricamento dei messaggi...", "Aula 3A", "08:00:00", "Mercoledì, 14 Ottobre 2026"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_ViewBeforeSize(t *testing.T) {
	m := NewModel(sessionFactory("1"), &mockFetcher{}, Options{})
	if !strings.Contains(m.View(), "Initializing") {
		t.Error("View() before the first size message should show the initializing line")
	}
}

func TestModel_FeedShowsFirstMessage(t *testing.T) {
	fetcher := &mockFetcher{feed: testFeed("uno **importante**", "due")}
	m := newTestModel(t, "-100123", fetcher)
	epoch := m.epoch

	m = deliver(t, m)

	msg, ok := m.Screen().Message()
	if !ok || msg.Content != "uno **importante**" {
		t.Fatalf("message = %+v", msg)
	}
	if m.epoch != epoch+1 {
		t.Errorf("epoch = %d, want rotation restarted", m.epoch)
	}
	view := m.View()
	if !strings.Contains(view, "importante") || strings.Contains(view, "**") {
		t.Errorf("content should be rendered without markers:\n%s", view)
	}
	if !strings.Contains(view, "Segreteria") || !strings.Contains(view, "Bacheca") {
		t.Errorf("View() missing author or title:\n%s", view)
	}
}

func TestModel_RotationTickAdvances(t *testing.T) {
	m := newTestModel(t, "-100123", &mockFetcher{feed: testFeed("a", "b", "c")})
	m = deliver(t, m)

	m, _ = update(t, m, rotationTickMsg{epoch: m.epoch})
	if got := m.Session().Rotation().CurrentIndex; got != 1 {
		t.Errorf("index = %d, want 1", got)
	}

	m, _ = update(t, m, rotationTickMsg{epoch: m.epoch - 1})
	if got := m.Session().Rotation().CurrentIndex; got != 1 {
		t.Errorf("stale epoch advanced rotation to %d", got)
	}
}

func TestModel_UnchangedFeedKeepsCadence(t *testing.T) {
	m := newTestModel(t, "-100123", &mockFetcher{feed: testFeed("a", "b")})
	m = deliver(t, m)
	m, _ = update(t, m, rotationTickMsg{epoch: m.epoch})
	epoch := m.epoch

	m = deliver(t, m)
	if m.epoch != epoch {
		t.Error("identical feed should not restart the rotation cadence")
	}
	if m.Session().Rotation().CurrentIndex != 1 {
		t.Errorf("index = %d, want 1", m.Session().Rotation().CurrentIndex)
	}
}

func TestModel_MissingChat(t *testing.T) {
	fetcher := &mockFetcher{}
	m := newTestModel(t, "", fetcher)

	if cmd := m.fetch(); cmd != nil {
		t.Error("fetch() should be nil without a chat id")
	}
	m, _ = update(t, m, refreshTickMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times", fetcher.calls)
	}
	if !strings.Contains(m.View(), "Errore: parametro 'chat' mancante nell'URL.") {
		t.Error("View() should show the configuration error")
	}
}

func TestModel_LanguageTick(t *testing.T) {
	m := newTestModel(t, "-100123", &mockFetcher{})

	m, _ = update(t, m, languageTickMsg{epoch: m.langEpoch})
	if m.Session().Language() != models.LanguageSecondary {
		t.Errorf("language = %s", m.Session().Language())
	}
	view := m.View()
	if !strings.Contains(view, "Wednesday, 14 October 2026") || !strings.Contains(view, "Loading messages...") {
		t.Errorf("View() not localized:\n%s", view)
	}
}

func TestModel_ResetBuildsNewSession(t *testing.T) {
	m := newTestModel(t, "-100123", &mockFetcher{feed: testFeed("a")})
	m = deliver(t, m)
	old := m.Session()

	m, cmd := update(t, m, resetTickMsg{})
	if m.Session() == old || m.Session().ID() == old.ID() {
		t.Fatal("reset should build a new session")
	}
	if cmd == nil {
		t.Error("reset should schedule a fetch")
	}
	if m.Session().Status() != kiosk.StatusLoading {
		t.Errorf("status = %s, want loading", m.Session().Status())
	}
}

func TestModel_ResetRestartsLanguageCadence(t *testing.T) {
	m := newTestModel(t, "-100123", &mockFetcher{feed: testFeed("a")})
	before := m.langEpoch

	m, _ = update(t, m, resetTickMsg{})
	if m.langEpoch != before+1 {
		t.Fatalf("langEpoch = %d, want %d", m.langEpoch, before+1)
	}

	m, _ = update(t, m, languageTickMsg{epoch: before})
	if m.Session().Language() != models.LanguagePrimary {
		t.Error("a language tick from before the reset should not toggle the new session")
	}

	m, _ = update(t, m, languageTickMsg{epoch: m.langEpoch})
	if m.Session().Language() != models.LanguageSecondary {
		t.Error("a language tick from the current cadence should toggle")
	}
}

func TestModel_RefreshWaitsForOutstandingFetch(t *testing.T) {
	fetcher := &mockFetcher{feed: testFeed("a")}
	m := newTestModel(t, "-100123", fetcher)

	inflight := m.fetch()
	if inflight == nil {
		t.Fatal("fetch() returned no command")
	}
	if cmd := m.poll(); cmd != nil {
		t.Fatal("poll() should wait while a fetch is outstanding")
	}

	m, _ = update(t, m, inflight())
	if _, ok := m.Screen().Message(); !ok {
		t.Fatal("outstanding fetch should still load the feed")
	}
	if cmd := m.poll(); cmd == nil {
		t.Error("poll() should resume once the fetch completed")
	}
}

func TestModel_MeasureEnablesScrolling(t *testing.T) {
	long := strings.Repeat("riga\n", 60)
	m := newTestModel(t, "-100123", &mockFetcher{feed: testFeed(long)})
	m = deliver(t, m)

	m, _ = update(t, m, measureMsg{seq: m.measureSeq - 1})
	if m.scrolling {
		t.Error("stale measurement should be ignored")
	}

	m, cmd := update(t, m, measureMsg{seq: m.measureSeq})
	if !m.scrolling {
		t.Fatal("overflowing content should scroll")
	}
	if cmd == nil {
		t.Error("scrolling should schedule a scroll tick")
	}

	m, _ = update(t, m, scrollTickMsg{seq: m.measureSeq})
	if m.viewport.YOffset != 1 {
		t.Errorf("YOffset = %d, want 1", m.viewport.YOffset)
	}
}

func TestModel_ShortContentDoesNotScroll(t *testing.T) {
	m := newTestModel(t, "-100123", &mockFetcher{feed: testFeed("breve")})
	m = deliver(t, m)

	m, _ = update(t, m, measureMsg{seq: m.measureSeq})
	if m.scrolling {
		t.Error("short content should not scroll")
	}
}

func TestModel_ProgressBars(t *testing.T) {
	m := newTestModel(t, "-100123", &mockFetcher{feed: testFeed("a", "b", "c")})
	m = deliver(t, m)

	bars := m.renderProgress(98)
	if bars == "" {
		t.Fatal("renderProgress() returned nothing")
	}
	if got := len(strings.Split(bars, " ")); got < 3 {
		t.Errorf("expected at least 3 bar segments, got %d", got)
	}

	m.screen.progress = kiosk.RotationState{}
	if m.renderProgress(98) != "" {
		t.Error("empty state should draw no bars")
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m := newTestModel(t, "-100123", &mockFetcher{})
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune("q")},
	} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", key.String())
		}
	}
}

func TestScreen_StatusClearsMessage(t *testing.T) {
	s := NewScreen()
	s.ShowMessage(models.Message{Content: "a"})
	v := s.contentVersion
	s.ShowStatus("Caricamento")

	if _, ok := s.Message(); ok {
		t.Error("status should clear the message")
	}
	if s.Status() != "Caricamento" || s.contentVersion == v {
		t.Error("status should bump the content version")
	}
}
