// Package broadcastlog keeps the broadcast log in a Redis list shared by
// every process, and carries wake signals over Redis pub/sub.
package broadcastlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"parceltrack/internal/core/domain/model/broadcast"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultKey     = "parceltrack:sync:log"
	DefaultChannel = "parceltrack:sync:wake"

	maxTxRetries = 16
)

// Log is a bounded list of JSON envelopes under one key. Appends run in a
// WATCH transaction so concurrent writers never lose or duplicate entries.
type Log struct {
	client   redis.UniversalClient
	key      string
	capacity int
	logger   *slog.Logger
}

func NewLog(client redis.UniversalClient, key string, capacity int, logger *slog.Logger) *Log {
	if key == "" {
		key = DefaultKey
	}
	return &Log{
		client:   client,
		key:      key,
		capacity: broadcast.ClampCapacity(capacity),
		logger:   logger.With("component", "redis_broadcast_log"),
	}
}

// Append pushes env and trims the list to capacity. An envelope whose
// updateId is already retained is ignored.
func (l *Log) Append(ctx context.Context, env broadcast.Envelope) error {
	if err := env.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope %s: %w", env.UpdateID, err)
	}

	txf := func(tx *redis.Tx) error {
		retained, err := tx.LRange(ctx, l.key, 0, -1).Result()
		if err != nil {
			return err
		}
		for _, e := range l.decode(ctx, retained) {
			if e.UpdateID == env.UpdateID {
				return nil
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.RPush(ctx, l.key, raw)
			pipe.LTrim(ctx, l.key, int64(-l.capacity), -1)
			return nil
		})
		return err
	}

	for range maxTxRetries {
		err = l.client.Watch(ctx, txf, l.key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("append %s: %w", env.UpdateID, err)
}

// Entries returns the retained envelopes in append order. Entries that do
// not decode are logged and left out.
func (l *Log) Entries(ctx context.Context) ([]broadcast.Envelope, error) {
	raw, err := l.client.LRange(ctx, l.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return l.decode(ctx, raw), nil
}

func (l *Log) Capacity() int {
	return l.capacity
}

func (l *Log) decode(ctx context.Context, raw []string) []broadcast.Envelope {
	out := make([]broadcast.Envelope, 0, len(raw))
	for i, item := range raw {
		var env broadcast.Envelope
		if err := json.Unmarshal([]byte(item), &env); err != nil {
			l.logger.WarnContext(ctx, "Ignoring undecodable log entry", "key", l.key, "index", i, "error", err)
			continue
		}
		if err := env.Validate(); err != nil {
			l.logger.WarnContext(ctx, "Ignoring invalid log entry", "key", l.key, "index", i, "error", err)
			continue
		}
		out = append(out, env)
	}
	return out
}
