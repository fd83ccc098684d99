package commands

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/domain/model/broadcast"
	"parceltrack/internal/core/domain/model/effect"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// TransitionParcelCommandHandler applies status changes. Transitions never
// credit revenue; receiving an unpaid cash-on-delivery parcel fails with
// *parcel.PaymentRequiredError.
type TransitionParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	machine    *services.ParcelStateMachine
	committer  changeCommitter
}

func NewTransitionParcelCommandHandler(
	uowFactory ParcelUoWFactory,
	machine *services.ParcelStateMachine,
	publisher Publisher,
	logger *slog.Logger,
) TransitionParcelCommandHandler {
	return TransitionParcelCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
		committer:  newChangeCommitter(publisher, logger.With("component", "transition_parcel")),
	}
}

func (h *TransitionParcelCommandHandler) Handle(ctx context.Context, cmd TransitionParcelCommand) (ChangeResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeResult{}, err
	}

	return h.committer.mutate(ctx, h.uowFactory, cmd.ParcelID(), broadcast.TypeStatusUpdated,
		func(current *parcel.Parcel) (*parcel.Parcel, []effect.Effect, error) {
			return h.machine.RequestTransition(current, cmd.Target(), cmd.Actor(), cmd.Note())
		})
}
