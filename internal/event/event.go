// Package event defines the log/status event value consumed by the bar.
package event

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/flashbar/internal/severity"
)

// Event is a single immutable log/status event produced by a feed source.
type Event struct {
	// ID is a ULID assigned when the event enters the feed.
	ID string `json:"id" yaml:"id"`

	Content  string         `json:"content" yaml:"content"`
	Severity severity.Level `json:"severity" yaml:"severity"`

	// Timestamp is when the event entered the feed, not when it was shown.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// New creates an Event with a generated ULID and the current time.
func New(content string, level severity.Level) (Event, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return Event{}, fmt.Errorf("failed to generate ULID: %w", err)
	}

	return Event{
		ID:        id.String(),
		Content:   content,
		Severity:  level,
		Timestamp: time.Now(),
	}, nil
}
