package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrDismissNotificationCommandIsNotConstructed = errors.New(
	"DismissNotificationCommand must be created via NewDismissNotificationCommand constructor",
)

// DismissNotificationCommand removes one record from an inbox.
type DismissNotificationCommand struct {
	notificationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDismissNotificationCommand(notificationID kernel.UUID) (DismissNotificationCommand, error) {
	if err := notificationID.Validate(); err != nil {
		return DismissNotificationCommand{}, err
	}

	return DismissNotificationCommand{
		notificationID: notificationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c DismissNotificationCommand) Validate() error {
	return c.guard.Validate(ErrDismissNotificationCommandIsNotConstructed)
}

func (c DismissNotificationCommand) NotificationID() kernel.UUID {
	return c.notificationID
}
