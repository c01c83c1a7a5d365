package bar

import (
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/flashbar/internal/event"
	"github.com/jmylchreest/flashbar/internal/severity"
)

// testBar creates a bar on a mock clock with the first tip always picked.
func testBar(t *testing.T, opts Options) (*Bar, *clock.Mock) {
	t.Helper()

	mock := clock.NewMock()
	opts.Clock = mock
	if opts.Pick == nil {
		opts.Pick = func(n int) int { return 0 }
	}
	return New(opts), mock
}

func testEvent(t *testing.T, content string, level severity.Level) event.Event {
	t.Helper()

	ev, err := event.New(content, level)
	require.NoError(t, err)
	return ev
}

func TestNew(t *testing.T) {
	b, _ := testBar(t, Options{})

	assert.Equal(t, IdleMessage, b.Message())
	assert.Equal(t, severity.Debug, b.Level())
	assert.Empty(t, b.TipMessage())
	assert.False(t, b.Expanded())
}

func TestPush_AdmissionThreshold(t *testing.T) {
	b, _ := testBar(t, Options{})
	b.UpdateSettings(Settings{MinLevel: severity.Warning})

	// Below threshold: dropped unconditionally
	b.Push(testEvent(t, "chatter", severity.Info), false)
	assert.Equal(t, IdleMessage, b.Message())
	assert.Equal(t, severity.Debug, b.Level())

	// At threshold: accepted
	b.Push(testEvent(t, "slow response", severity.Warning), false)
	assert.Equal(t, "slow response", b.Message())
	assert.Equal(t, severity.Warning, b.Level())
}

func TestPush_Preemption(t *testing.T) {
	t.Run("lower severity dropped within window", func(t *testing.T) {
		b, mock := testBar(t, Options{})

		b.Push(testEvent(t, "GPU error", severity.Error), false)
		accepted := b.ReceivedAt()

		mock.Add(2 * time.Second)
		b.Push(testEvent(t, "info msg", severity.Info), false)

		assert.Equal(t, "GPU error", b.Message())
		assert.Equal(t, severity.Error, b.Level())
		assert.Equal(t, accepted, b.ReceivedAt())
	})

	t.Run("higher severity preempts within window", func(t *testing.T) {
		b, mock := testBar(t, Options{})

		b.Push(testEvent(t, "heads up", severity.Warning), false)
		mock.Add(time.Second)
		b.Push(testEvent(t, "it broke", severity.Error), false)

		assert.Equal(t, "it broke", b.Message())
		assert.Equal(t, severity.Error, b.Level())
	})

	t.Run("equal severity replaces within window", func(t *testing.T) {
		// Deliberate tie-break: the latest of two equal-severity events wins
		b, mock := testBar(t, Options{})

		b.Push(testEvent(t, "first", severity.Warning), false)
		mock.Add(time.Second)
		b.Push(testEvent(t, "second", severity.Warning), false)

		assert.Equal(t, "second", b.Message())
	})

	t.Run("lower severity accepted after window expires", func(t *testing.T) {
		b, mock := testBar(t, Options{})

		b.Push(testEvent(t, "it broke", severity.Error), false)
		mock.Add(DefaultTimeout + time.Millisecond)
		b.Push(testEvent(t, "all quiet", severity.Info), false)

		assert.Equal(t, "all quiet", b.Message())
		assert.Equal(t, severity.Info, b.Level())
	})

	t.Run("window is strict: not expired at exactly the timeout", func(t *testing.T) {
		b, mock := testBar(t, Options{})

		b.Push(testEvent(t, "it broke", severity.Error), false)
		mock.Add(DefaultTimeout)
		b.Push(testEvent(t, "all quiet", severity.Info), false)

		assert.Equal(t, "it broke", b.Message())
	})
}

func TestPush_DashboardOrigin(t *testing.T) {
	t.Run("dev build admits debug even above threshold", func(t *testing.T) {
		b, _ := testBar(t, Options{DevBuild: true})
		b.UpdateSettings(Settings{MinLevel: severity.Error})

		b.Push(testEvent(t, "ui detail", severity.Debug), true)
		assert.Equal(t, "ui detail", b.Message())
	})

	t.Run("release build admits dashboard events at info", func(t *testing.T) {
		b, _ := testBar(t, Options{})
		b.UpdateSettings(Settings{MinLevel: severity.Error})

		b.Push(testEvent(t, "ui detail", severity.Debug), true)
		assert.Equal(t, IdleMessage, b.Message())

		b.Push(testEvent(t, "copied", severity.Info), true)
		assert.Equal(t, "copied", b.Message())
	})

	t.Run("feed events still use the configured threshold", func(t *testing.T) {
		b, _ := testBar(t, Options{DevBuild: true})
		b.UpdateSettings(Settings{MinLevel: severity.Error})

		b.Push(testEvent(t, "chatter", severity.Warning), false)
		assert.Equal(t, IdleMessage, b.Message())
	})
}

func TestFrame_Decay(t *testing.T) {
	b, mock := testBar(t, Options{})

	b.Push(testEvent(t, "it broke", severity.Error), false)
	accepted := b.ReceivedAt()

	f := b.Frame()
	assert.Equal(t, "it broke", f.Text)
	assert.Equal(t, severity.Error, f.Level)

	mock.Add(DefaultTimeout + time.Millisecond)

	f = b.Frame()
	assert.Equal(t, IdleMessage, f.Text)
	assert.Equal(t, severity.Debug, f.Level)

	// Decay is idempotent and does not restart the timer
	assert.Equal(t, accepted, b.ReceivedAt())
	mock.Add(time.Second)
	f = b.Frame()
	assert.Equal(t, IdleMessage, f.Text)
	assert.Equal(t, severity.Debug, f.Level)
}

func TestFrame_DecaysToTip(t *testing.T) {
	b, mock := testBar(t, Options{})
	b.UpdateSettings(Settings{MinLevel: severity.Info, ShowTips: true})
	tip := b.TipMessage()
	require.NotEmpty(t, tip)

	b.Push(testEvent(t, "it broke", severity.Error), false)
	mock.Add(DefaultTimeout + time.Millisecond)

	f := b.Frame()
	assert.Equal(t, tip, f.Text)
	assert.Equal(t, severity.Debug, f.Level)
}

func TestFrame_Styling(t *testing.T) {
	b, _ := testBar(t, Options{})

	idleFg, idleBg := Palette(severity.Debug)
	f := b.Frame()
	assert.Equal(t, idleFg, f.Foreground)
	assert.Equal(t, idleBg, f.Background)

	b.Push(testEvent(t, "it broke", severity.Error), false)
	errFg, errBg := Palette(severity.Error)
	f = b.Frame()
	assert.Equal(t, errFg, f.Foreground)
	assert.Equal(t, errBg, f.Background)
	assert.NotEqual(t, idleBg, errBg)
}

func TestFrame_LayoutPolicy(t *testing.T) {
	b, _ := testBar(t, Options{})

	f := b.Frame()
	assert.False(t, f.Wrap)
	assert.Equal(t, 1, f.MaxHeight)
	assert.False(t, f.Expanded)

	b.Expand()
	f = b.Frame()
	assert.True(t, f.Wrap)
	assert.Zero(t, f.MaxHeight)
	assert.True(t, f.Expanded)

	// The toggle carries no arbitration semantics
	assert.Equal(t, IdleMessage, b.Message())
	assert.Equal(t, severity.Debug, b.Level())

	b.Reduce()
	assert.False(t, b.Frame().Wrap)
}

func TestUpdateSettings_TipLifecycle(t *testing.T) {
	picks := []int{0, 1}
	i := 0
	b, _ := testBar(t, Options{Pick: func(n int) int {
		p := picks[i%len(picks)]
		i++
		return p % n
	}})

	// Disabled: no tip
	b.UpdateSettings(Settings{MinLevel: severity.Info})
	assert.Empty(t, b.TipMessage())

	// Enabled: tip chosen once, prefixed
	b.UpdateSettings(Settings{MinLevel: severity.Info, ShowTips: true})
	first := b.TipMessage()
	require.NotEmpty(t, first)
	assert.True(t, strings.HasPrefix(first, TipPrefix))

	// Sticky: repeated refreshes never rerandomize
	b.UpdateSettings(Settings{MinLevel: severity.Info, ShowTips: true})
	b.UpdateSettings(Settings{MinLevel: severity.Warning, ShowTips: true})
	assert.Equal(t, first, b.TipMessage())

	// Off then on: a new pick happens
	b.UpdateSettings(Settings{MinLevel: severity.Info})
	assert.Empty(t, b.TipMessage())
	b.UpdateSettings(Settings{MinLevel: severity.Info, ShowTips: true})
	assert.NotEqual(t, first, b.TipMessage())
}

func TestUpdateSettings_Threshold(t *testing.T) {
	b, _ := testBar(t, Options{})

	b.UpdateSettings(Settings{MinLevel: severity.Error})
	b.Push(testEvent(t, "warning", severity.Warning), false)
	assert.Equal(t, IdleMessage, b.Message())

	b.UpdateSettings(Settings{MinLevel: severity.Debug})
	b.Push(testEvent(t, "warning", severity.Warning), false)
	assert.Equal(t, "warning", b.Message())
}

func TestTipsCatalog(t *testing.T) {
	require.NotEmpty(t, Tips)
	for _, tip := range Tips {
		assert.NotEmpty(t, tip)
	}
}

// TestScenario_ErrorThenInfoThenDecay walks the end-to-end arbitration
// sequence: an error pins the bar, quieter chatter cannot displace it, and
// the display decays after the window.
func TestScenario_ErrorThenInfoThenDecay(t *testing.T) {
	b, mock := testBar(t, Options{})
	b.UpdateSettings(Settings{MinLevel: severity.Info})

	assert.Equal(t, IdleMessage, b.Message())
	assert.Equal(t, severity.Debug, b.Level())

	b.Push(testEvent(t, "GPU error", severity.Error), false)
	assert.Equal(t, "GPU error", b.Message())

	mock.Add(2 * time.Second)
	b.Push(testEvent(t, "info msg", severity.Info), false)
	assert.Equal(t, "GPU error", b.Message())

	mock.Add(4 * time.Second) // 6 seconds total elapsed
	f := b.Frame()
	assert.Equal(t, IdleMessage, f.Text)
	assert.Equal(t, severity.Debug, f.Level)
}

func TestCustomTimeout(t *testing.T) {
	b, mock := testBar(t, Options{Timeout: time.Second})

	b.Push(testEvent(t, "quick", severity.Warning), false)
	mock.Add(1100 * time.Millisecond)

	f := b.Frame()
	assert.Equal(t, IdleMessage, f.Text)
}
