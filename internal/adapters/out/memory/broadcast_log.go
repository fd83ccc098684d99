// Package memory provides in-process implementations of the broadcast log
// and wake signal for single-node deployments and tests.
package memory

import (
	"context"
	"sync"

	"parceltrack/internal/core/domain/model/broadcast"
)

// BroadcastLog keeps the newest envelopes in memory.
type BroadcastLog struct {
	mu       sync.RWMutex
	capacity int
	entries  []broadcast.Envelope
}

func NewBroadcastLog(capacity int) *BroadcastLog {
	return &BroadcastLog{capacity: broadcast.ClampCapacity(capacity)}
}

// Append stores env, evicting the oldest entries beyond capacity. An
// envelope whose updateId is already retained is ignored.
func (l *BroadcastLog) Append(_ context.Context, env broadcast.Envelope) error {
	if err := env.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.entries {
		if e.UpdateID == env.UpdateID {
			return nil
		}
	}
	l.entries = append(l.entries, env)
	if over := len(l.entries) - l.capacity; over > 0 {
		l.entries = append(l.entries[:0:0], l.entries[over:]...)
	}
	return nil
}

func (l *BroadcastLog) Entries(_ context.Context) ([]broadcast.Envelope, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]broadcast.Envelope, len(l.entries))
	copy(out, l.entries)
	return out, nil
}

func (l *BroadcastLog) Capacity() int {
	return l.capacity
}
