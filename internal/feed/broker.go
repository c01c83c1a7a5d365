// Package feed provides event sources for the notification bar: a pub/sub
// broker, a stdin reader, and a synthetic demo generator.
package feed

import (
	"errors"
	"sync"

	"github.com/jmylchreest/flashbar/internal/event"
)

// ErrBrokerClosed is returned when publishing to a closed broker.
var ErrBrokerClosed = errors.New("feed broker is closed")

// Broker fans incoming events out to subscribers. Sources publish, the TUI
// subscribes. Slow subscribers drop events rather than blocking a source.
type Broker struct {
	mu          sync.Mutex
	subscribers []chan event.Event
	closed      bool
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{
		subscribers: make([]chan event.Event, 0),
	}
}

// Subscribe returns a channel receiving all events published after the call.
func (b *Broker) Subscribe() <-chan event.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan event.Event, 16)
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Broker) Unsubscribe(ch <-chan event.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscribers {
		if sub == ch {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// Publish delivers an event to all current subscribers.
func (b *Broker) Publish(ev event.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBrokerClosed
	}

	for _, ch := range b.subscribers {
		select {
		case ch <- ev:
		default:
			// Subscriber is not keeping up; drop rather than block
		}
	}
	return nil
}

// Close closes all subscriber channels.
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, ch := range b.subscribers {
		close(ch)
	}
	b.subscribers = nil
	return nil
}
