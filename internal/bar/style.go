package bar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/flashbar/internal/severity"
)

// collapsedHeight caps the bar at one line when not expanded.
const collapsedHeight = 1

// Frame is what the renderer draws for one tick of the bar.
type Frame struct {
	Text       string
	Level      severity.Level
	Foreground lipgloss.Color
	Background lipgloss.Color

	// Wrap allows the text to wrap across lines; otherwise it is truncated.
	Wrap bool

	// MaxHeight caps the rendered height in lines. Zero means unbounded.
	MaxHeight int

	Expanded bool
}

// palettePair is a fixed foreground/background pairing for one severity.
type palettePair struct {
	fg lipgloss.Color
	bg lipgloss.Color
}

// palette maps each severity to its color pair. Debug uses a neutral theme
// pair rather than a log color.
var palette = map[severity.Level]palettePair{
	severity.Error:   {fg: lipgloss.Color("0"), bg: lipgloss.Color("9")},
	severity.Warning: {fg: lipgloss.Color("0"), bg: lipgloss.Color("11")},
	severity.Info:    {fg: lipgloss.Color("0"), bg: lipgloss.Color("12")},
	severity.Debug:   {fg: lipgloss.Color("7"), bg: lipgloss.Color("236")},
}

// Palette returns the foreground/background pair for a severity.
func Palette(level severity.Level) (fg, bg lipgloss.Color) {
	pair, ok := palette[level]
	if !ok {
		pair = palette[severity.Debug]
	}
	return pair.fg, pair.bg
}
