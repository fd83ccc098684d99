package commands

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/domain/model/broadcast"
	"parceltrack/internal/core/domain/model/effect"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// ConfirmPaymentCommandHandler marks parcels paid and credits their amount.
//
// A second confirmation fails with parcel.ErrAlreadyPaid before anything is
// written, so revenue is credited once per parcel.
type ConfirmPaymentCommandHandler struct {
	uowFactory ParcelUoWFactory
	machine    *services.ParcelStateMachine
	committer  changeCommitter
}

func NewConfirmPaymentCommandHandler(
	uowFactory ParcelUoWFactory,
	machine *services.ParcelStateMachine,
	publisher Publisher,
	logger *slog.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
		committer:  newChangeCommitter(publisher, logger.With("component", "confirm_payment")),
	}
}

func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (ChangeResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeResult{}, err
	}

	return h.committer.mutate(ctx, h.uowFactory, cmd.ParcelID(), broadcast.TypePaymentReceived,
		func(current *parcel.Parcel) (*parcel.Parcel, []effect.Effect, error) {
			return h.machine.ConfirmPayment(current, cmd.Actor())
		})
}
