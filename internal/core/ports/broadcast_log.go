package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/broadcast"
)

// BroadcastLog is the bounded, shared log of envelopes. Appending beyond
// capacity evicts the oldest entries.
type BroadcastLog interface {
	Append(ctx context.Context, env broadcast.Envelope) error

	// Entries returns the retained envelopes in append order.
	Entries(ctx context.Context) ([]broadcast.Envelope, error)

	Capacity() int
}

// WakeSignal carries out-of-band "the log changed" notifications between
// processes so subscribers can poll ahead of their timer.
type WakeSignal interface {
	Signal(ctx context.Context) error

	// Listen delivers a value per signal until ctx is done, then closes the channel.
	Listen(ctx context.Context) (<-chan struct{}, error)
}
