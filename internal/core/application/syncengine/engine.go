// Package syncengine propagates committed parcel changes to every subscriber.
//
// Publishers append envelopes to a bounded broadcast log. Each subscriber
// keeps its own high-water mark and, on every poll, receives the envelopes
// after it in timestamp order. Polls are triggered by a timer (see the jobs
// package), by local publishes and by wake signals from other processes.
//
// Delivery is at-least-once: a handler error stops that subscriber's batch
// and the failed envelope is offered again on the next poll.
package syncengine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"parceltrack/internal/core/domain/model/broadcast"
	"parceltrack/internal/core/ports"
)

// ErrSyncUnavailable wraps transport failures of the broadcast log or wake
// signal. It is transient: the engine retries on the next poll.
var ErrSyncUnavailable = errors.New("sync unavailable")

var ErrEngineAlreadyStarted = errors.New("sync engine already started")

// Handler consumes one envelope. Handlers must tolerate redelivery.
type Handler func(ctx context.Context, env broadcast.Envelope) error

type subscriber struct {
	name    string
	handler Handler
	cursor  broadcast.Cursor
	active  bool
}

// Engine is the synchronization engine.
type Engine struct {
	log    ports.BroadcastLog
	wake   ports.WakeSignal
	logger *slog.Logger

	mu          sync.Mutex
	subscribers []*subscriber
	pending     []broadcast.Envelope
	cancel      context.CancelFunc
	done        chan struct{}

	// pollMu serializes poll cycles; Stop takes it to wait for the one in flight.
	pollMu sync.Mutex
	kick   chan struct{}
}

// NewEngine builds an engine over log. wake may be nil for single-process use.
func NewEngine(log ports.BroadcastLog, wake ports.WakeSignal, logger *slog.Logger) *Engine {
	return &Engine{
		log:    log,
		wake:   wake,
		logger: logger.With("component", "sync_engine"),
		kick:   make(chan struct{}, 1),
	}
}

// Publish appends env to the broadcast log and wakes subscribers.
//
// When the log is unreachable env is kept in memory, appended by a later
// Publish or Poll, and ErrSyncUnavailable is returned.
func (e *Engine) Publish(ctx context.Context, env broadcast.Envelope) error {
	if err := env.Validate(); err != nil {
		return err
	}

	if err := e.flushPending(ctx); err != nil {
		e.enqueue(env)
		e.logger.WarnContext(ctx, "Broadcast log unavailable, envelope queued",
			"update_id", env.UpdateID, "type", env.Type, "pending", e.Pending(), "error", err)
		return err
	}
	if err := e.log.Append(ctx, env); err != nil {
		e.enqueue(env)
		e.logger.WarnContext(ctx, "Broadcast log append failed, will retry",
			"update_id", env.UpdateID, "type", env.Type, "error", err)
		return fmt.Errorf("%w: append %s: %w", ErrSyncUnavailable, env.UpdateID, err)
	}

	e.signal(ctx)
	return nil
}

// Subscribe registers handler under name. The subscriber starts before the
// oldest retained envelope, so its first poll replays the whole log.
// The returned function deregisters it; a batch in progress stops at the
// next envelope.
func (e *Engine) Subscribe(name string, handler Handler) (unsubscribe func()) {
	sub := &subscriber{name: name, handler: handler, active: true}

	e.mu.Lock()
	e.subscribers = append(e.subscribers, sub)
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			sub.active = false
			for i, s := range e.subscribers {
				if s == sub {
					e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
					break
				}
			}
		})
	}
}

// Poll runs one delivery cycle for every subscriber.
func (e *Engine) Poll(ctx context.Context) error {
	e.pollMu.Lock()
	defer e.pollMu.Unlock()

	if err := e.flushPending(ctx); err != nil {
		return err
	}

	entries, err := e.log.Entries(ctx)
	if err != nil {
		return fmt.Errorf("%w: read log: %w", ErrSyncUnavailable, err)
	}

	for _, sub := range e.activeSubscribers() {
		e.deliver(ctx, sub, entries)
	}
	return nil
}

// Entries returns the retained envelopes, oldest first.
func (e *Engine) Entries(ctx context.Context) ([]broadcast.Envelope, error) {
	entries, err := e.log.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read log: %w", ErrSyncUnavailable, err)
	}
	broadcast.Sort(entries)
	return entries, nil
}

// Pending is the number of envelopes waiting for the log to come back.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Start polls on every local publish and every wake signal until Stop or
// until ctx is cancelled. Timer-driven polls are scheduled separately.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		return ErrEngineAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	var remote <-chan struct{}
	if e.wake != nil {
		ch, err := e.wake.Listen(runCtx)
		if err != nil {
			cancel()
			return fmt.Errorf("%w: listen for wake signals: %w", ErrSyncUnavailable, err)
		}
		remote = ch
	}

	e.cancel = cancel
	e.done = make(chan struct{})
	go e.run(runCtx, remote, e.done)

	e.logger.InfoContext(ctx, "Sync engine started", "capacity", e.log.Capacity())
	return nil
}

// Stop ends the wake loop and waits for the poll cycle in flight, if any.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel, e.done = nil, nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	e.pollMu.Lock()
	e.logger.Info("Sync engine stopped")
	e.pollMu.Unlock()
}

func (e *Engine) run(ctx context.Context, remote <-chan struct{}, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.kick:
		case _, ok := <-remote:
			if !ok {
				remote = nil
				continue
			}
		}

		if err := e.Poll(ctx); err != nil && ctx.Err() == nil {
			e.logger.WarnContext(ctx, "Wake-triggered poll failed", "error", err)
		}
	}
}

func (e *Engine) deliver(ctx context.Context, sub *subscriber, entries []broadcast.Envelope) {
	for _, env := range sub.cursor.Due(entries) {
		if ctx.Err() != nil || !e.isActive(sub) {
			return
		}
		if err := sub.handler(ctx, env); err != nil {
			e.logger.ErrorContext(ctx, "Subscriber failed, envelope will be redelivered",
				"subscriber", sub.name, "update_id", env.UpdateID, "type", env.Type, "error", err)
			return
		}
		sub.cursor = broadcast.CursorOf(env)
	}
}

func (e *Engine) signal(ctx context.Context) {
	select {
	case e.kick <- struct{}{}:
	default:
	}

	if e.wake == nil {
		return
	}
	if err := e.wake.Signal(ctx); err != nil {
		e.logger.WarnContext(ctx, "Wake signal failed", "error", err)
	}
}

func (e *Engine) enqueue(env broadcast.Envelope) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = append(e.pending, env)
}

// flushPending appends queued envelopes in order, stopping at the first failure.
func (e *Engine) flushPending(ctx context.Context) error {
	e.mu.Lock()
	queued := e.pending
	e.pending = nil
	e.mu.Unlock()

	for i, env := range queued {
		if err := e.log.Append(ctx, env); err != nil {
			e.mu.Lock()
			e.pending = append(queued[i:len(queued):len(queued)], e.pending...)
			e.mu.Unlock()
			return fmt.Errorf("%w: flush %d pending envelopes: %w", ErrSyncUnavailable, len(queued)-i, err)
		}
	}
	if len(queued) > 0 {
		e.logger.InfoContext(ctx, "Flushed pending envelopes", "count", len(queued))
		e.signal(ctx)
	}
	return nil
}

func (e *Engine) activeSubscribers() []*subscriber {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*subscriber, len(e.subscribers))
	copy(out, e.subscribers)
	return out
}

func (e *Engine) isActive(sub *subscriber) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return sub.active
}
