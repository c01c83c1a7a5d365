// Package severity defines the ordered severity levels used by flashbar.
package severity

import (
	"fmt"
	"strings"
)

// Level is an ordered severity level. Comparisons use the numeric order
// Debug < Info < Warning < Error everywhere; no other ordering exists.
type Level int

const (
	Debug Level = iota
	Info
	Warning
	Error
)

// Names maps levels to their canonical lowercase names.
var Names = map[Level]string{
	Debug:   "debug",
	Info:    "info",
	Warning: "warning",
	Error:   "error",
}

// String returns the canonical name of the level.
func (l Level) String() string {
	if name, ok := Names[l]; ok {
		return name
	}
	return "unknown"
}

// AtLeast reports whether l is at least as severe as min.
func (l Level) AtLeast(min Level) bool {
	return l >= min
}

// Parse parses a severity name. Accepts common aliases and is
// case-insensitive. Returns an error for unrecognized input.
func Parse(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg", "d":
		return Debug, nil
	case "info", "i":
		return Info, nil
	case "warning", "warn", "w":
		return Warning, nil
	case "error", "err", "e":
		return Error, nil
	default:
		return Debug, fmt.Errorf("unknown severity %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler for TOML/JSON/YAML output.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML/JSON/YAML input.
func (l *Level) UnmarshalText(text []byte) error {
	level, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = level
	return nil
}
