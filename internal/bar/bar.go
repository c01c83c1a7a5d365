// Package bar implements the notification bar arbitration engine. It decides,
// among a stream of incoming events of varying severity, which single message
// is currently displayed, for how long, and what the display falls back to
// when nothing urgent is pending.
package bar

import (
	"math/rand/v2"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/jmylchreest/flashbar/internal/event"
	"github.com/jmylchreest/flashbar/internal/severity"
)

const (
	// DefaultTimeout is how long an accepted message stays current before
	// the bar decays to the idle or tip text.
	DefaultTimeout = 5 * time.Second

	// IdleMessage is shown when nothing is current and tips are disabled.
	IdleMessage = "No new notifications"
)

// Settings is the slice of configuration the bar reacts to.
type Settings struct {
	// MinLevel is the threshold below which feed events are dropped.
	MinLevel severity.Level

	// ShowTips enables the tip fallback shown while the bar is idle.
	ShowTips bool
}

// Options configures a Bar. The zero value uses the real clock, the default
// timeout, release-mode dashboard admission, and uniform random tip picks.
type Options struct {
	// Clock supplies time for the timeout window. Nil means the wall clock.
	Clock clock.Clock

	// DevBuild lowers the admission threshold for dashboard-origin events
	// from Info to Debug.
	DevBuild bool

	// Timeout overrides DefaultTimeout. Zero means DefaultTimeout.
	Timeout time.Duration

	// Pick selects a tip index in [0, n). Nil means uniform random.
	Pick func(n int) int
}

// Bar holds the notification display state and answers "what should be shown
// right now". It is not safe for concurrent use: all calls must come from the
// goroutine driving the render loop.
type Bar struct {
	message      string
	currentLevel severity.Level
	receivedAt   time.Time
	minLevel     severity.Level
	tipMessage   string // empty means no tip selected
	expanded     bool

	clock    clock.Clock
	devBuild bool
	timeout  time.Duration
	pick     func(n int) int
}

// New creates a Bar showing the idle message at Debug level.
func New(opts Options) *Bar {
	c := opts.Clock
	if c == nil {
		c = clock.New()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	pick := opts.Pick
	if pick == nil {
		pick = rand.IntN
	}

	return &Bar{
		message:      IdleMessage,
		currentLevel: severity.Debug,
		receivedAt:   c.Now(),
		minLevel:     severity.Debug,
		clock:        c,
		devBuild:     opts.DevBuild,
		timeout:      timeout,
		pick:         pick,
	}
}

// UpdateSettings syncs the bar with a new configuration snapshot. The tip is
// chosen at most once per enable cycle: repeated calls with tips enabled keep
// the already-selected tip, disabling clears it.
func (b *Bar) UpdateSettings(s Settings) {
	b.minLevel = s.MinLevel

	if s.ShowTips {
		if b.tipMessage == "" && len(Tips) > 0 {
			b.tipMessage = TipPrefix + Tips[b.pick(len(Tips))]
		}
	} else {
		b.tipMessage = ""
	}
}

// Push runs the admission and preemption rules for an incoming event.
//
// Admission: the event severity must reach the effective minimum — the
// configured threshold for feed events, or Debug (dev build) / Info (release
// build) for events originating from the dashboard itself.
//
// Preemption: an admitted event replaces the current message if the display
// window has elapsed, or if it is at least as severe as what is shown. The
// `at least` tie-break is deliberate: the latest of two equal-severity events
// wins even mid-window. Everything else is dropped silently.
func (b *Bar) Push(ev event.Event, fromDashboard bool) {
	now := b.clock.Now()

	minSeverity := b.minLevel
	if fromDashboard {
		if b.devBuild {
			minSeverity = severity.Debug
		} else {
			minSeverity = severity.Info
		}
	}

	if !ev.Severity.AtLeast(minSeverity) {
		return
	}
	if !now.After(b.receivedAt.Add(b.timeout)) && !ev.Severity.AtLeast(b.currentLevel) {
		return
	}

	b.message = ev.Content
	b.currentLevel = ev.Severity
	b.receivedAt = now
}

// Frame computes what the renderer should draw this frame. If the display
// window has expired it first decays the bar to the tip or idle text at Debug
// level; the decay does not touch the receive instant, so repeated frames
// after expiry keep re-selecting the same fallback.
func (b *Bar) Frame() Frame {
	now := b.clock.Now()
	if now.After(b.receivedAt.Add(b.timeout)) {
		if b.tipMessage != "" {
			b.message = b.tipMessage
		} else {
			b.message = IdleMessage
		}
		b.currentLevel = severity.Debug
	}

	fg, bg := Palette(b.currentLevel)
	f := Frame{
		Text:       b.message,
		Level:      b.currentLevel,
		Foreground: fg,
		Background: bg,
		Expanded:   b.expanded,
	}
	if b.expanded {
		f.Wrap = true
	} else {
		f.MaxHeight = collapsedHeight
	}
	return f
}

// Expand switches the bar to full-height wrapped rendering.
func (b *Bar) Expand() { b.expanded = true }

// Reduce switches the bar back to the single-line truncated rendering.
func (b *Bar) Reduce() { b.expanded = false }

// Expanded reports the current layout toggle. It has no arbitration effect.
func (b *Bar) Expanded() bool { return b.expanded }

// Message returns the currently displayed text.
func (b *Bar) Message() string { return b.message }

// Level returns the severity of the currently displayed text.
func (b *Bar) Level() severity.Level { return b.currentLevel }

// ReceivedAt returns when the current message was accepted.
func (b *Bar) ReceivedAt() time.Time { return b.receivedAt }

// TipMessage returns the selected tip, or "" when tips are disabled.
func (b *Bar) TipMessage() string { return b.tipMessage }
