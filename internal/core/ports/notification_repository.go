package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/notification"
)

// NotificationRepository stores per-recipient inboxes.
type NotificationRepository interface {
	// AddMany inserts the records, ignoring ids that already exist.
	AddMany(ctx context.Context, records []*notification.Notification) error

	// ListByRecipient returns the inbox, newest first. limit 0 means no cap.
	ListByRecipient(ctx context.Context, recipient string, limit int) ([]*notification.Notification, error)

	// Delete dismisses one record. Returns errs.ObjectNotFoundError if it is gone.
	Delete(ctx context.Context, id kernel.UUID) error
}
