package commands

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/domain/model/broadcast"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
)

// CreateParcelCommandHandler registers parcels. A prepaid parcel is paid and
// credited here, in the same transaction as the record.
type CreateParcelCommandHandler struct {
	uowFactory     ParcelUoWFactory
	machine        *services.ParcelStateMachine
	committer      changeCommitter
	trackingPrefix string
}

// NewCreateParcelCommandHandler builds the handler. An empty trackingPrefix
// selects kernel.DefaultTrackingPrefix.
func NewCreateParcelCommandHandler(
	uowFactory ParcelUoWFactory,
	machine *services.ParcelStateMachine,
	publisher Publisher,
	trackingPrefix string,
	logger *slog.Logger,
) CreateParcelCommandHandler {
	if trackingPrefix == "" {
		trackingPrefix = kernel.DefaultTrackingPrefix
	}
	return CreateParcelCommandHandler{
		uowFactory:     uowFactory,
		machine:        machine,
		committer:      newChangeCommitter(publisher, logger.With("component", "create_parcel")),
		trackingPrefix: trackingPrefix,
	}
}

func (h *CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (ChangeResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeResult{}, err
	}

	tn, err := kernel.NewTrackingNumber(h.trackingPrefix)
	if err != nil {
		return ChangeResult{}, err
	}

	params := cmd.Params()
	p, effects, err := h.machine.Create(services.CreateParcelInput{
		TrackingNumber:      tn,
		Sender:              params.Sender,
		Receiver:            params.Receiver,
		SenderBranchID:      params.SenderBranchID,
		DestinationBranchID: params.DestinationBranchID,
		Description:         params.Description,
		Weight:              params.Weight,
		PaymentMethod:       params.PaymentMethod,
		Amount:              params.Amount,
		FloatAmount:         params.FloatAmount,
		Actor:               params.Actor,
	})
	if err != nil {
		return ChangeResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return h.committer.commit(ctx, uow, parcelChange{
		parcel:       p,
		effects:      effects,
		envelopeType: broadcast.TypeParcelCreated,
		isNew:        true,
	})
}
