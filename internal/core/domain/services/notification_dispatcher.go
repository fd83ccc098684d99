package services

import (
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/effect"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/notification"
	"parceltrack/internal/pkg/errs"
)

// DispatchContext identifies the change whose effects are being dispatched.
type DispatchContext struct {
	// UpdateID is the updateId of the envelope carrying the change.
	UpdateID string
	At       time.Time
}

// NotificationDispatcher fans Notify effects out into inbox records.
//
// The i-th Notify effect of an update always gets the identifier
// NameUUID(updateId + "#" + i), so dispatching the same envelope twice
// yields the same records and an insert-or-ignore store keeps one copy.
type NotificationDispatcher struct{}

func NewNotificationDispatcher() NotificationDispatcher {
	return NotificationDispatcher{}
}

func (NotificationDispatcher) Dispatch(effects []effect.Effect, dc DispatchContext) ([]*notification.Notification, error) {
	if dc.UpdateID == "" {
		return nil, errs.NewValueIsRequiredError("updateId")
	}

	var (
		out  []*notification.Notification
		errz error
	)
	for i, n := range effect.Notifications(effects) {
		id := NotificationID(dc.UpdateID, i)
		record, err := notification.NewNotification(id, n.Recipient, n.Title, n.Message, dc.At)
		if err != nil {
			errz = errors.Join(errz, fmt.Errorf("notification %d: %w", i, err))
			continue
		}
		out = append(out, record)
	}
	if errz != nil {
		return nil, errz
	}
	return out, nil
}

// NotificationID derives the identifier of the index-th notification of an update.
func NotificationID(updateID string, index int) kernel.UUID {
	return kernel.NameUUID(fmt.Sprintf("%s#%d", updateID, index))
}
