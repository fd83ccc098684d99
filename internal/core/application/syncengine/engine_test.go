package syncengine_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/memory"
	"parceltrack/internal/core/application/syncengine"
	"parceltrack/internal/core/domain/model/broadcast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// flakyLog fails every call while down is set.
type flakyLog struct {
	*memory.BroadcastLog
	mu   sync.Mutex
	down bool
}

var errLogDown = errors.New("connection refused")

func (l *flakyLog) setDown(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.down = v
}

func (l *flakyLog) isDown() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.down
}

func (l *flakyLog) Append(ctx context.Context, env broadcast.Envelope) error {
	if l.isDown() {
		return errLogDown
	}
	return l.BroadcastLog.Append(ctx, env)
}

func (l *flakyLog) Entries(ctx context.Context) ([]broadcast.Envelope, error) {
	if l.isDown() {
		return nil, errLogDown
	}
	return l.BroadcastLog.Entries(ctx)
}

// recorder is a Handler collecting update ids.
type recorder struct {
	mu     sync.Mutex
	ids    []string
	failOn map[string]int
}

func (r *recorder) handle(_ context.Context, env broadcast.Envelope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn[env.UpdateID] > 0 {
		r.failOn[env.UpdateID]--
		return errors.New("handler failed")
	}
	r.ids = append(r.ids, env.UpdateID)
	return nil
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

func env(id string, ts int64) broadcast.Envelope {
	return broadcast.Envelope{
		UpdateID:  id,
		Type:      broadcast.TypeParcelUpdated,
		Data:      json.RawMessage(`{}`),
		Timestamp: ts,
	}
}

func TestEngine_DeliversInTimestampOrder(t *testing.T) {
	ctx := t.Context()
	engine := syncengine.NewEngine(memory.NewBroadcastLog(50), nil, discard)
	rec := &recorder{}
	engine.Subscribe("rec", rec.handle)

	// published out of order by different clients
	require.NoError(t, engine.Publish(ctx, env("c", 300)))
	require.NoError(t, engine.Publish(ctx, env("a", 100)))
	require.NoError(t, engine.Publish(ctx, env("b", 200)))

	require.NoError(t, engine.Poll(ctx))
	assert.Equal(t, []string{"a", "b", "c"}, rec.seen())

	require.NoError(t, engine.Poll(ctx))
	assert.Equal(t, []string{"a", "b", "c"}, rec.seen(), "high-water mark prevents repeats")

	require.NoError(t, engine.Publish(ctx, env("d", 400)))
	require.NoError(t, engine.Poll(ctx))
	assert.Equal(t, []string{"a", "b", "c", "d"}, rec.seen())
}

func TestEngine_RedeliversAfterHandlerError(t *testing.T) {
	ctx := t.Context()
	engine := syncengine.NewEngine(memory.NewBroadcastLog(50), nil, discard)
	rec := &recorder{failOn: map[string]int{"b": 1}}
	engine.Subscribe("rec", rec.handle)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, engine.Publish(ctx, env(id, int64(100*(i+1)))))
	}

	require.NoError(t, engine.Poll(ctx))
	assert.Equal(t, []string{"a"}, rec.seen())

	require.NoError(t, engine.Poll(ctx))
	assert.Equal(t, []string{"a", "b", "c"}, rec.seen())
}

func TestEngine_SubscribersHaveIndependentMarks(t *testing.T) {
	ctx := t.Context()
	engine := syncengine.NewEngine(memory.NewBroadcastLog(50), nil, discard)
	early := &recorder{}
	engine.Subscribe("early", early.handle)

	require.NoError(t, engine.Publish(ctx, env("a", 100)))
	require.NoError(t, engine.Poll(ctx))

	late := &recorder{}
	engine.Subscribe("late", late.handle)
	require.NoError(t, engine.Publish(ctx, env("b", 200)))
	require.NoError(t, engine.Poll(ctx))

	assert.Equal(t, []string{"a", "b"}, early.seen())
	assert.Equal(t, []string{"a", "b"}, late.seen(), "new subscribers replay the retained log")
}

func TestEngine_Unsubscribe(t *testing.T) {
	ctx := t.Context()
	engine := syncengine.NewEngine(memory.NewBroadcastLog(50), nil, discard)
	rec := &recorder{}
	unsubscribe := engine.Subscribe("rec", rec.handle)

	require.NoError(t, engine.Publish(ctx, env("a", 100)))
	require.NoError(t, engine.Poll(ctx))

	unsubscribe()
	unsubscribe()

	require.NoError(t, engine.Publish(ctx, env("b", 200)))
	require.NoError(t, engine.Poll(ctx))
	assert.Equal(t, []string{"a"}, rec.seen())
}

func TestEngine_PublishWhileLogIsDown(t *testing.T) {
	ctx := t.Context()
	log := &flakyLog{BroadcastLog: memory.NewBroadcastLog(50)}
	engine := syncengine.NewEngine(log, nil, discard)
	rec := &recorder{}
	engine.Subscribe("rec", rec.handle)

	log.setDown(true)
	err := engine.Publish(ctx, env("a", 100))
	require.ErrorIs(t, err, syncengine.ErrSyncUnavailable)
	err = engine.Publish(ctx, env("b", 200))
	require.ErrorIs(t, err, syncengine.ErrSyncUnavailable)
	assert.Equal(t, 2, engine.Pending())

	require.ErrorIs(t, engine.Poll(ctx), syncengine.ErrSyncUnavailable)
	assert.Empty(t, rec.seen())

	log.setDown(false)
	require.NoError(t, engine.Poll(ctx))

	assert.Zero(t, engine.Pending())
	assert.Equal(t, []string{"a", "b"}, rec.seen())

	entries, err := engine.Entries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestEngine_LogsEveryQueuedEnvelope(t *testing.T) {
	ctx := t.Context()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	log := &flakyLog{BroadcastLog: memory.NewBroadcastLog(50)}
	log.setDown(true)
	engine := syncengine.NewEngine(log, nil, logger)

	// "a" fails its own append, "b" fails while flushing "a"
	require.ErrorIs(t, engine.Publish(ctx, env("a", 100)), syncengine.ErrSyncUnavailable)
	require.ErrorIs(t, engine.Publish(ctx, env("b", 200)), syncengine.ErrSyncUnavailable)
	assert.Equal(t, 2, engine.Pending())

	var queued []string
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var record struct {
			Level    string `json:"level"`
			UpdateID string `json:"update_id"`
		}
		require.NoError(t, dec.Decode(&record))
		assert.Equal(t, "WARN", record.Level)
		queued = append(queued, record.UpdateID)
	}
	assert.Equal(t, []string{"a", "b"}, queued)
}

func TestEngine_RejectsInvalidEnvelopes(t *testing.T) {
	engine := syncengine.NewEngine(memory.NewBroadcastLog(50), nil, discard)

	err := engine.Publish(t.Context(), broadcast.Envelope{UpdateID: "x"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, syncengine.ErrSyncUnavailable)
	assert.Zero(t, engine.Pending())
}

func TestEngine_StartPollsOnWakeSignals(t *testing.T) {
	ctx := t.Context()
	log := memory.NewBroadcastLog(50)
	wake := memory.NewWakeSignal()

	engine := syncengine.NewEngine(log, wake, discard)
	rec := &recorder{}
	engine.Subscribe("rec", rec.handle)
	require.NoError(t, engine.Start(ctx))
	require.ErrorIs(t, engine.Start(ctx), syncengine.ErrEngineAlreadyStarted)

	// another process appends and signals
	other := syncengine.NewEngine(log, wake, discard)
	require.NoError(t, other.Publish(ctx, env("remote", 100)))

	assert.Eventually(t, func() bool {
		return len(rec.seen()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, engine.Publish(ctx, env("local", 200)))
	assert.Eventually(t, func() bool {
		return len(rec.seen()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	engine.Stop()
	engine.Stop()

	require.NoError(t, other.Publish(ctx, env("after-stop", 300)))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{"remote", "local"}, rec.seen())
}

func TestEngine_StopWaitsForInFlightPoll(t *testing.T) {
	ctx := t.Context()
	engine := syncengine.NewEngine(memory.NewBroadcastLog(50), nil, discard)

	started := make(chan struct{})
	release := make(chan struct{})
	var finished bool
	var mu sync.Mutex
	engine.Subscribe("slow", func(context.Context, broadcast.Envelope) error {
		close(started)
		<-release
		mu.Lock()
		finished = true
		mu.Unlock()
		return nil
	})
	require.NoError(t, engine.Publish(ctx, env("a", 100)))

	go func() { _ = engine.Poll(ctx) }()
	<-started

	stopped := make(chan struct{})
	go func() {
		engine.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a poll was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-stopped
	mu.Lock()
	defer mu.Unlock()
	assert.True(t, finished)
}
