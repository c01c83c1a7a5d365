// Package tui provides the BubbleTea-based terminal user interface: a
// scrollable event log with the notification bar pinned underneath.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/flashbar/internal/bar"
	"github.com/jmylchreest/flashbar/internal/config"
	"github.com/jmylchreest/flashbar/internal/event"
	"github.com/jmylchreest/flashbar/internal/feed"
	"github.com/jmylchreest/flashbar/internal/severity"
)

// frameInterval is the render tick cadence. The bar's timeout detection is
// only as accurate as this tick.
const frameInterval = 100 * time.Millisecond

// Model is the main TUI model.
type Model struct {
	// Configuration
	cfg *config.Config

	// The arbitration engine and its latest frame
	bar   *bar.Bar
	frame bar.Frame

	// Components
	viewport viewport.Model

	// State
	events  []event.Event
	eventCh <-chan event.Event
	width   int
	height  int
	ready   bool

	// Key bindings
	keys KeyMap
}

// frameMsg drives the per-frame render tick.
type frameMsg struct{}

// eventMsg carries one feed event into the update loop.
type eventMsg struct {
	ev event.Event
}

// SettingsMsg carries a reloaded configuration into the update loop. Sent by
// the config watcher via Program.Send.
type SettingsMsg struct {
	Config *config.Config
}

// copyResultMsg reports the outcome of a clipboard copy.
type copyResultMsg struct {
	count int
	err   error
}

// New creates a new TUI model around a subscribed broker channel.
func New(cfg *config.Config, broker *feed.Broker, devBuild bool) Model {
	b := bar.New(bar.Options{
		DevBuild: devBuild,
		Timeout:  cfg.Notifications.Timeout.Duration(),
	})
	b.UpdateSettings(barSettings(cfg))

	m := Model{
		cfg:  cfg,
		bar:  b,
		keys: DefaultKeyMap(),
	}
	m.frame = b.Frame()

	if broker != nil {
		m.eventCh = broker.Subscribe()
	}

	return m
}

// barSettings extracts the bar's slice of the configuration.
func barSettings(cfg *config.Config) bar.Settings {
	return bar.Settings{
		MinLevel: cfg.Notifications.MinLevel,
		ShowTips: cfg.Notifications.ShowTips,
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitForEvent)
}

// tick schedules the next render frame.
func (m Model) tick() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

// waitForEvent blocks on the feed subscription.
func (m Model) waitForEvent() tea.Msg {
	if m.eventCh == nil {
		return nil
	}
	ev, ok := <-m.eventCh
	if !ok {
		return nil
	}
	return eventMsg{ev: ev}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height)
			m.ready = true
		}
		m.viewport.Width = msg.Width
		m.layout()
		m.viewport.SetContent(m.renderLog())
		return m, nil

	case frameMsg:
		m.frame = m.bar.Frame()
		m.layout()
		return m, m.tick()

	case eventMsg:
		m.bar.Push(msg.ev, false)
		m.events = append(m.events, msg.ev)
		if limit := m.cfg.TUI.LogLines; limit > 0 && len(m.events) > limit {
			m.events = m.events[len(m.events)-limit:]
		}
		atBottom := m.viewport.AtBottom()
		m.viewport.SetContent(m.renderLog())
		if atBottom {
			m.viewport.GotoBottom()
		}
		return m, m.waitForEvent

	case SettingsMsg:
		m.cfg = msg.Config
		m.bar.UpdateSettings(barSettings(m.cfg))
		return m, nil

	case copyResultMsg:
		// Copy feedback flows through the bar itself, as a dashboard-origin
		// event.
		if msg.err != nil {
			m.pushDashboard("Copy failed: "+msg.err.Error(), severity.Error)
		} else {
			m.pushDashboard(fmt.Sprintf("Copied %d events to clipboard", msg.count), severity.Info)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// pushDashboard feeds a UI-generated message into the bar.
func (m *Model) pushDashboard(content string, level severity.Level) {
	ev, err := event.New(content, level)
	if err != nil {
		slog.Warn("failed to create dashboard event", "error", err)
		return
	}
	m.bar.Push(ev, true)
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Expand):
		m.bar.Expand()
		m.frame = m.bar.Frame()
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Reduce):
		m.bar.Reduce()
		m.frame = m.bar.Frame()
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.CopyYAML):
		events := m.events
		return m, func() tea.Msg {
			data, err := yaml.Marshal(events)
			if err != nil {
				return copyResultMsg{err: err}
			}
			if err := copyText(string(data), m.cfg); err != nil {
				return copyResultMsg{err: err}
			}
			return copyResultMsg{count: len(events)}
		}
	}

	// Pass to viewport
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// layout resizes the viewport around the bar's current height.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	reserved := lipgloss.Height(m.renderBar()) + 1 // bar + keybind line
	h := m.height - reserved
	if h < 1 {
		h = 1
	}
	m.viewport.Height = h
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	return m.viewport.View() + "\n" + m.renderBar() + "\n" + m.renderKeybinds()
}

// renderBar renders the notification bar from the latest frame.
func (m Model) renderBar() string {
	f := m.frame

	style := lipgloss.NewStyle().
		Foreground(f.Foreground).
		Background(f.Background).
		Width(m.width).
		Padding(0, 1)

	if !f.Wrap {
		// Collapsed: one truncated line
		text := truncate(f.Text, m.width-2)
		return style.MaxHeight(f.MaxHeight).Render(text)
	}

	// Expanded: full text, wrapped by the style width, with the message age
	// appended for anything that is an actual notification.
	text := f.Text
	if f.Level > severity.Debug {
		text += "\n" + "received " + humanize.Time(m.bar.ReceivedAt())
	}
	return style.Render(text)
}

// renderKeybinds renders the one-line key hint bar.
func (m Model) renderKeybinds() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	binds := []struct {
		key  string
		desc string
	}{
		{"q", "quit"},
		{"e", "expand"},
		{"esc", "reduce"},
		{"y", "copy yaml"},
		{"j/k", "scroll"},
	}
	if m.bar.Expanded() {
		binds[1], binds[2] = binds[2], binds[1]
	}

	const separator = "  "
	result := ""
	plain := 0
	for _, b := range binds {
		plainItem := b.key + " " + b.desc
		if m.width > 0 && plain+len(separator)+len(plainItem) > m.width {
			break
		}
		if result != "" {
			result += separator
			plain += len(separator)
		}
		result += keyStyle.Render(b.key) + " " + b.desc
		plain += len(plainItem)
	}

	return style.Render(result)
}

// renderLog renders the event scrollback.
func (m Model) renderLog() string {
	if len(m.events) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8")).
			Render("Waiting for events...")
	}

	var s string
	for i, ev := range m.events {
		if i > 0 {
			s += "\n"
		}
		_, tagColor := bar.Palette(ev.Severity)
		tag := lipgloss.NewStyle().Foreground(tagColor).
			Render(fmt.Sprintf("%-7s", ev.Severity))
		s += ev.Timestamp.Format("15:04:05") + " " + tag + " " + ev.Content
	}
	return s
}

// truncate shortens s to at most width cells, appending an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config *config.Config

	// ConfigPath is watched for live settings changes (empty = no watching).
	ConfigPath string

	Broker  *feed.Broker
	Sources []feed.Source

	// DevBuild lowers the dashboard admission threshold to Debug.
	DevBuild bool
}

// Run starts the TUI with the given options, blocking until quit.
func Run(opts RunOptions) error {
	broker := opts.Broker
	if broker == nil {
		broker = feed.NewBroker()
	}

	m := New(opts.Config, broker, opts.DevBuild)
	p := tea.NewProgram(m, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, src := range opts.Sources {
		go func(s feed.Source) {
			if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Warn("feed source stopped", "source", s.Name(), "error", err)
			}
		}(src)
	}

	// Watch the config file so settings changes apply live
	var watcher *config.Watcher
	if opts.ConfigPath != "" {
		var err error
		watcher, err = config.NewWatcher(opts.ConfigPath, func(cfg *config.Config) {
			p.Send(SettingsMsg{Config: cfg})
		})
		if err != nil {
			slog.Warn("failed to create config watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			slog.Warn("failed to start config watcher", "error", err)
		}
	}

	_, err := p.Run()

	if watcher != nil {
		watcher.Stop()
	}

	return err
}
