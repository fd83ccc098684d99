package commands

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/domain/model/broadcast"
	"parceltrack/internal/core/domain/model/effect"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// AddFloatAmountCommandHandler adds float charges. Received and cancelled
// parcels are refused with parcel.ErrParcelIsFinalized.
type AddFloatAmountCommandHandler struct {
	uowFactory ParcelUoWFactory
	machine    *services.ParcelStateMachine
	committer  changeCommitter
}

func NewAddFloatAmountCommandHandler(
	uowFactory ParcelUoWFactory,
	machine *services.ParcelStateMachine,
	publisher Publisher,
	logger *slog.Logger,
) AddFloatAmountCommandHandler {
	return AddFloatAmountCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
		committer:  newChangeCommitter(publisher, logger.With("component", "add_float_amount")),
	}
}

func (h *AddFloatAmountCommandHandler) Handle(ctx context.Context, cmd AddFloatAmountCommand) (ChangeResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeResult{}, err
	}

	return h.committer.mutate(ctx, h.uowFactory, cmd.ParcelID(), broadcast.TypeParcelUpdated,
		func(current *parcel.Parcel) (*parcel.Parcel, []effect.Effect, error) {
			return h.machine.AddFloatAmount(current, cmd.Delta(), cmd.Actor())
		})
}
