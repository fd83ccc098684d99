package commands

import (
	"context"
)

// DismissNotificationCommandHandler deletes an inbox record. Dismissal is
// local bookkeeping: nothing is published.
type DismissNotificationCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewDismissNotificationCommandHandler(uowFactory NotificationUoWFactory) DismissNotificationCommandHandler {
	return DismissNotificationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns errs.ObjectNotFoundError when the record is already gone.
func (h *DismissNotificationCommandHandler) Handle(ctx context.Context, cmd DismissNotificationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.NotificationRepository().Delete(ctx, cmd.NotificationID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
