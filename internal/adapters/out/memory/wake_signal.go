package memory

import (
	"context"
	"sync"
)

// WakeSignal fans signals out to every listener in the process.
type WakeSignal struct {
	mu        sync.Mutex
	listeners map[chan struct{}]struct{}
}

func NewWakeSignal() *WakeSignal {
	return &WakeSignal{listeners: make(map[chan struct{}]struct{})}
}

// Signal never blocks; a listener that has not drained its previous signal
// does not get a second one.
func (w *WakeSignal) Signal(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for ch := range w.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (w *WakeSignal) Listen(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	w.mu.Lock()
	w.listeners[ch] = struct{}{}
	w.mu.Unlock()

	go func() {
		<-ctx.Done()
		w.mu.Lock()
		delete(w.listeners, ch)
		w.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}
