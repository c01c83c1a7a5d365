package feed

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jmylchreest/flashbar/internal/event"
	"github.com/jmylchreest/flashbar/internal/severity"
)

// StdinSource reads events from standard input, one per line.
//
// Two line formats are supported:
//  1. JSON: {"content": "disk full", "severity": "error"}
//  2. Plain text, treated as an info event
type StdinSource struct {
	reader io.Reader
	broker *Broker
}

// stdinLine is the wire format for JSON input lines.
type stdinLine struct {
	Content  string         `json:"content"`
	Severity severity.Level `json:"severity"`
}

// NewStdinSource creates a StdinSource reading from os.Stdin.
func NewStdinSource(broker *Broker) *StdinSource {
	return &StdinSource{reader: os.Stdin, broker: broker}
}

// NewStdinSourceWithReader creates a StdinSource with a custom reader.
func NewStdinSourceWithReader(r io.Reader, broker *Broker) *StdinSource {
	return &StdinSource{reader: r, broker: broker}
}

// Name returns the source identifier.
func (s *StdinSource) Name() string {
	return "stdin"
}

// Run reads lines until EOF or context cancellation, publishing each as an
// event. Malformed JSON lines fall back to plain-text handling.
func (s *StdinSource) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.reader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		ev, err := parseLine(line)
		if err != nil {
			slog.Debug("skipping unparseable line", "error", err)
			continue
		}

		if err := s.broker.Publish(ev); err != nil {
			return fmt.Errorf("failed to publish event: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	return nil
}

// parseLine converts one input line into an event.
func parseLine(line string) (event.Event, error) {
	if strings.HasPrefix(line, "{") {
		var parsed stdinLine
		if err := json.Unmarshal([]byte(line), &parsed); err == nil && parsed.Content != "" {
			return event.New(parsed.Content, parsed.Severity)
		}
		// Fall through: not our JSON shape, treat as plain text
	}
	return event.New(line, severity.Info)
}
