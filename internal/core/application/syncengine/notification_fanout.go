package syncengine

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/domain/model/broadcast"
	"parceltrack/internal/core/domain/model/notification"
	"parceltrack/internal/core/domain/services"
)

// NotificationStore is the part of the notification repository the fan-out writes to.
type NotificationStore interface {
	AddMany(ctx context.Context, records []*notification.Notification) error
}

// NotificationFanout dispatches the Notify effects carried by each envelope.
// Record ids derive from the envelope's updateId, so redelivery and the
// synchronous dispatch done by command handlers collapse into one record.
type NotificationFanout struct {
	store      NotificationStore
	dispatcher services.NotificationDispatcher
	logger     *slog.Logger
}

func NewNotificationFanout(store NotificationStore, logger *slog.Logger) *NotificationFanout {
	return &NotificationFanout{
		store:      store,
		dispatcher: services.NewNotificationDispatcher(),
		logger:     logger.With("component", "notification_fanout"),
	}
}

// Apply is a Handler.
func (f *NotificationFanout) Apply(ctx context.Context, env broadcast.Envelope) error {
	if !env.Type.CarriesParcel() {
		return nil
	}

	change, err := env.DecodeChange()
	if err != nil {
		f.logger.WarnContext(ctx, "Skipping undecodable envelope", "update_id", env.UpdateID, "error", err)
		return nil
	}
	effects, err := change.ToEffects()
	if err != nil {
		f.logger.WarnContext(ctx, "Skipping envelope with invalid effects", "update_id", env.UpdateID, "error", err)
		return nil
	}

	records, err := f.dispatcher.Dispatch(effects, services.DispatchContext{UpdateID: env.UpdateID, At: env.Time()})
	if err != nil {
		f.logger.WarnContext(ctx, "Skipping invalid notifications", "update_id", env.UpdateID, "error", err)
		return nil
	}
	if len(records) == 0 {
		return nil
	}
	return f.store.AddMany(ctx, records)
}
