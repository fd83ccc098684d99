package broadcastlog

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const wakeMessage = "wake"

// WakeSignal tells other processes that the log has new entries.
type WakeSignal struct {
	client  redis.UniversalClient
	channel string
}

func NewWakeSignal(client redis.UniversalClient, channel string) *WakeSignal {
	if channel == "" {
		channel = DefaultChannel
	}
	return &WakeSignal{client: client, channel: channel}
}

func (w *WakeSignal) Signal(ctx context.Context) error {
	return w.client.Publish(ctx, w.channel, wakeMessage).Err()
}

// Listen subscribes to the channel and returns once the subscription is
// confirmed. Bursts of messages collapse into one pending signal. The
// channel is closed when ctx is done.
func (w *WakeSignal) Listen(ctx context.Context) (<-chan struct{}, error) {
	sub := w.client.Subscribe(ctx, w.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", w.channel, err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer sub.Close()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-messages:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()

	return out, nil
}
