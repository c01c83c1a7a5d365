package feed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jmylchreest/flashbar/internal/event"
	"github.com/jmylchreest/flashbar/internal/severity"
)

// demoMessages is the pool the generator draws from, weighted towards
// low-severity chatter so the arbitration rules are visible.
var demoMessages = []struct {
	content string
	level   severity.Level
}{
	{"connection pool warmed", severity.Debug},
	{"cache entry evicted", severity.Debug},
	{"heartbeat acknowledged", severity.Debug},
	{"worker 3 picked up job", severity.Info},
	{"deploy finished in 42s", severity.Info},
	{"client reconnected", severity.Info},
	{"response time above threshold", severity.Warning},
	{"disk usage at 85%", severity.Warning},
	{"certificate expires in 6 days", severity.Warning},
	{"upstream returned 502", severity.Error},
	{"failed to persist checkpoint", severity.Error},
}

// Generator publishes synthetic events at a fixed cadence. It exists so the
// bar's admission, preemption and decay behavior can be watched without a
// real feed.
type Generator struct {
	broker   *Broker
	interval time.Duration
}

// NewGenerator creates a generator publishing roughly every interval.
func NewGenerator(broker *Broker, interval time.Duration) *Generator {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Generator{broker: broker, interval: interval}
}

// Name returns the source identifier.
func (g *Generator) Name() string {
	return "demo"
}

// Run publishes synthetic events until the context is cancelled.
func (g *Generator) Run(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	seq := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			seq++
			pick := demoMessages[rand.IntN(len(demoMessages))]
			ev, err := event.New(fmt.Sprintf("%s (#%d)", pick.content, seq), pick.level)
			if err != nil {
				return err
			}
			if err := g.broker.Publish(ev); err != nil {
				return err
			}
		}
	}
}
