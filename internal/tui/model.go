package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/kioskfeed/internal/api"
	"github.com/diogo/kioskfeed/internal/kiosk"
	"github.com/diogo/kioskfeed/internal/render"
)

const (
	// frameInterval redraws the filling progress bar
	frameInterval = 250 * time.Millisecond
	// measureDelay lets the content settle before overflow is measured
	measureDelay = 100 * time.Millisecond
	// scrollInterval moves overflowing content one line
	scrollInterval = time.Second
)

// Message types for the TUI
type (
	rotationTickMsg struct{ epoch int }
	refreshTickMsg  struct{}
	languageTickMsg struct{ epoch int }
	clockTickMsg    time.Time
	frameTickMsg    time.Time
	resetTickMsg    struct{}
	feedMsg         struct{ result kiosk.FetchResult }
	measureMsg      struct{ seq int }
	scrollTickMsg   struct{ seq int }
)

// SessionFactory builds a fresh session drawing on r
type SessionFactory func(r kiosk.Renderer) *kiosk.Session

// Options configures the kiosk TUI
type Options struct {
	Schedule kiosk.Schedule
	Markdown render.Options
	// Now overrides the wall clock used for the progress fill
	Now func() time.Time
}

// Model represents the TUI state
type Model struct {
	newSession SessionFactory
	fetcher    api.FeedFetcher
	session    *kiosk.Session
	screen     *Screen
	sched      kiosk.Schedule
	markdown   render.Options
	now        func() time.Time

	// UI components
	viewport viewport.Model
	progress progress.Model
	spinner  spinner.Model

	// State
	epoch           int
	langEpoch       int
	rotationStart   time.Time
	renderedContent int
	seenProgress    int
	measureSeq      int
	scrolling       bool
	ready           bool

	// Dimensions
	width  int
	height int
}

// NewModel creates the kiosk model and starts its first session
func NewModel(newSession SessionFactory, fetcher api.FeedFetcher, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Markdown.Mode == "" {
		opts.Markdown = render.DefaultOptions()
	}

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	p := progress.New(
		progress.WithSolidFill(string(colorSecondary)),
		progress.WithoutPercentage(),
	)
	p.EmptyColor = string(colorTextMute)

	screen := NewScreen()
	session := newSession(screen)
	session.Start()

	return Model{
		newSession:    newSession,
		fetcher:       fetcher,
		session:       session,
		screen:        screen,
		sched:         opts.Schedule.WithDefaults(),
		markdown:      opts.Markdown,
		now:           opts.Now,
		spinner:       s,
		progress:      p,
		rotationStart: opts.Now(),
	}
}

// Init starts the fetch and every cadence
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.fetch(),
		m.rotationTick(),
		tickEvery(m.sched.Refresh, func(time.Time) tea.Msg { return refreshTickMsg{} }),
		m.languageTick(),
		tickEvery(m.sched.Clock, func(t time.Time) tea.Msg { return clockTickMsg(t) }),
		tickEvery(frameInterval, func(t time.Time) tea.Msg { return frameTickMsg(t) }),
		m.spinner.Tick,
	}
	if m.sched.Reset > 0 {
		cmds = append(cmds, tickEvery(m.sched.Reset, func(time.Time) tea.Msg { return resetTickMsg{} }))
	}
	return tea.Batch(cmds...)
}

func tickEvery(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return tea.Tick(d, fn)
}

func (m Model) rotationTick() tea.Cmd {
	epoch := m.epoch
	return tea.Tick(m.sched.Rotation, func(time.Time) tea.Msg { return rotationTickMsg{epoch: epoch} })
}

func (m Model) languageTick() tea.Cmd {
	epoch := m.langEpoch
	return tea.Tick(m.sched.Language, func(time.Time) tea.Msg { return languageTickMsg{epoch: epoch} })
}

// fetch issues a ticket on the session and runs it off the update loop
func (m Model) fetch() tea.Cmd {
	return m.run(m.session.StartFetch)
}

// poll is the scheduled refresh; it waits out a request still in flight
func (m Model) poll() tea.Cmd {
	return m.run(m.session.StartPoll)
}

func (m Model) run(start func() (kiosk.FetchTicket, bool)) tea.Cmd {
	ticket, ok := start()
	if !ok {
		return nil
	}
	fetcher, timeout := m.fetcher, m.sched.Timeout
	return func() tea.Msg {
		return feedMsg{result: ticket.Run(context.Background(), fetcher, timeout)}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpWidth, vpHeight := m.contentSize()

		if !m.ready {
			m.viewport = viewport.New(vpWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = vpWidth
			m.viewport.Height = vpHeight
		}
		m.renderedContent = -1

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "r":
			cmds = append(cmds, m.fetch())
		}

	case feedMsg:
		if m.session.CompleteFetch(msg.result) == kiosk.OutcomeChanged {
			m.epoch++
			cmds = append(cmds, m.rotationTick())
		}

	case rotationTickMsg:
		if msg.epoch != m.epoch {
			break
		}
		m.session.Advance()
		cmds = append(cmds, m.rotationTick())

	case refreshTickMsg:
		cmds = append(cmds, m.poll(), tickEvery(m.sched.Refresh, func(time.Time) tea.Msg { return refreshTickMsg{} }))

	case languageTickMsg:
		if msg.epoch != m.langEpoch {
			break
		}
		m.session.ToggleLanguage()
		cmds = append(cmds, m.languageTick())

	case clockTickMsg:
		m.session.TickClock()
		cmds = append(cmds, tickEvery(m.sched.Clock, func(t time.Time) tea.Msg { return clockTickMsg(t) }))

	case frameTickMsg:
		cmds = append(cmds, tickEvery(frameInterval, func(t time.Time) tea.Msg { return frameTickMsg(t) }))

	case resetTickMsg:
		m.session = m.newSession(m.screen)
		m.session.Start()
		m.epoch++
		m.langEpoch++
		cmds = append(cmds,
			m.fetch(),
			m.rotationTick(),
			m.languageTick(),
			tickEvery(m.sched.Reset, func(time.Time) tea.Msg { return resetTickMsg{} }),
		)

	case measureMsg:
		if msg.seq == m.measureSeq && m.ready {
			m.scrolling = m.viewport.TotalLineCount() > m.viewport.Height
			if m.scrolling {
				cmds = append(cmds, m.scrollTick())
			}
		}

	case scrollTickMsg:
		if msg.seq == m.measureSeq && m.scrolling {
			if m.viewport.AtBottom() {
				m.viewport.GotoTop()
			} else {
				m.viewport.SetYOffset(m.viewport.YOffset + 1)
			}
			cmds = append(cmds, m.scrollTick())
		}

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

func (m Model) scrollTick() tea.Cmd {
	seq := m.measureSeq
	return tea.Tick(scrollInterval, func(time.Time) tea.Msg { return scrollTickMsg{seq: seq} })
}

// sync pulls screen changes into the components. A new message restarts the
// overflow measurement; a new progress state restarts the active bar.
func (m *Model) sync() tea.Cmd {
	if m.screen.progressVersion != m.seenProgress {
		m.seenProgress = m.screen.progressVersion
		m.rotationStart = m.now()
	}

	if !m.ready || m.screen.contentVersion == m.renderedContent {
		return nil
	}
	m.renderedContent = m.screen.contentVersion
	m.scrolling = false
	m.measureSeq++

	msg, ok := m.screen.Message()
	if !ok {
		m.viewport.SetContent("")
		return nil
	}
	m.viewport.SetContent(m.renderContent(msg.Content))
	m.viewport.GotoTop()

	seq := m.measureSeq
	return tea.Tick(measureDelay, func(time.Time) tea.Msg { return measureMsg{seq: seq} })
}

func (m Model) renderContent(content string) string {
	width := m.viewport.Width
	out := render.Content(content, bodyStyle, m.markdown.WithWidth(width))
	return lipgloss.NewStyle().Width(width).Render(out)
}

// contentSize returns the viewport dimensions for the current window
func (m Model) contentSize() (int, int) {
	// header border, progress row, content border and padding, footer lines
	headerHeight := 3
	progressHeight := 1
	panelFrame := 4
	footerHeight := 3

	vpHeight := m.height - headerHeight - progressHeight - panelFrame - footerHeight
	if vpHeight < 3 {
		vpHeight = 3
	}
	vpWidth := m.width - 8
	if vpWidth < 10 {
		vpWidth = 10
	}
	return vpWidth, vpHeight
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	panelWidth := m.width - 2
	sections := []string{
		m.renderHeader(panelWidth),
		m.renderProgress(panelWidth),
		contentStyle.Width(panelWidth).Render(m.renderBody()),
		m.renderFooter(),
		dateStyle.Render(" " + m.screen.Date()),
		hintStyle.Render(" q quit • r refresh"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(width int) string {
	left := titleStyle.Render(m.screen.Title())
	if label := m.screen.Classroom(); label != "" {
		left += hintStyle.Render("  •  ") + classroomStyle.Render(label)
	}
	right := clockStyle.Render(m.screen.Clock())

	inner := width - 6
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderProgress draws one bar per message: full when seen, filling with
// elapsed rotation time when active, empty when unseen.
func (m Model) renderProgress(width int) string {
	state := m.screen.Progress()
	if state.Empty() {
		return ""
	}

	n := state.SequenceLength
	barWidth := (width - (n - 1)) / n
	if barWidth < 1 {
		barWidth = 1
	}

	elapsed := float64(m.now().Sub(m.rotationStart)) / float64(m.sched.Rotation)
	elapsed = max(0, min(1, elapsed))

	bar := m.progress
	bar.Width = barWidth
	parts := make([]string, 0, n)
	for _, b := range state.Bars() {
		switch b {
		case kiosk.BarSeen:
			parts = append(parts, bar.ViewAs(1))
		case kiosk.BarActive:
			parts = append(parts, bar.ViewAs(elapsed))
		default:
			parts = append(parts, bar.ViewAs(0))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderBody() string {
	if text := m.screen.Status(); text != "" {
		switch m.session.Status() {
		case kiosk.StatusLoading:
			return m.spinner.View() + " " + loadingStyle.Render(text)
		case kiosk.StatusConfigError, kiosk.StatusFetchError:
			return errorStyle.Render(text)
		default:
			return statusStyle.Render(text)
		}
	}
	return m.viewport.View()
}

func (m Model) renderFooter() string {
	msg, ok := m.screen.Message()
	if !ok {
		return ""
	}
	return " " + authorStyle.Render(msg.Author) + hintStyle.Render("  •  ") + timestampStyle.Render(msg.Timestamp)
}

// Session returns the active session
func (m Model) Session() *kiosk.Session {
	return m.session
}

// Screen returns the screen the session draws on
func (m Model) Screen() *Screen {
	return m.screen
}

// RunKiosk starts the kiosk TUI
func RunKiosk(newSession SessionFactory, fetcher api.FeedFetcher, opts Options) error {
	m := NewModel(newSession, fetcher, opts)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
