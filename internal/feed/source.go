package feed

import "context"

// Source produces events and publishes them to a broker until its context is
// cancelled or its input is exhausted.
type Source interface {
	// Name returns the source identifier for logging.
	Name() string

	// Run blocks, publishing events. It returns nil on clean EOF.
	Run(ctx context.Context) error
}
