package commands

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelParams carries the raw input of a parcel registration.
type CreateParcelParams struct {
	Sender              parcel.Party
	Receiver            parcel.Party
	SenderBranchID      string
	DestinationBranchID string
	Description         string
	Weight              float64
	PaymentMethod       parcel.PaymentMethod
	Amount              kernel.Money
	// FloatAmount is optional; the zero value means no float charge.
	FloatAmount kernel.Money
	Actor       parcel.Actor
}

// CreateParcelCommand registers a parcel at the sender branch.
//
// Example:
//
//	cmd, err := NewCreateParcelCommand(CreateParcelParams{
//	    Sender:              parcel.Party{Name: "Tendai", Email: "tendai@example.com"},
//	    Receiver:            parcel.Party{Name: "Rudo", Phone: "+263771234567"},
//	    SenderBranchID:      "harare",
//	    DestinationBranchID: "bulawayo",
//	    PaymentMethod:       parcel.PaymentMethodCashOnDelivery,
//	    Amount:              kernel.MustMoney("30"),
//	    Actor:               parcel.Actor{ID: "op-1", BranchID: "harare"},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid parcel data: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	params CreateParcelParams

	guard guard.ConstructorGuard
}

func NewCreateParcelCommand(params CreateParcelParams) (CreateParcelCommand, error) {
	params.SenderBranchID = strings.TrimSpace(params.SenderBranchID)
	params.DestinationBranchID = strings.TrimSpace(params.DestinationBranchID)
	params.Description = strings.TrimSpace(params.Description)

	var branchErr error
	switch {
	case params.SenderBranchID == "":
		branchErr = errs.NewValueIsRequiredError("senderBranchId")
	case params.DestinationBranchID == "":
		branchErr = errs.NewValueIsRequiredError("destinationBranchId")
	}

	var weightErr error
	if params.Weight < 0 {
		weightErr = errs.NewValueIsOutOfRangeError("weight", params.Weight, 0, "unbounded")
	}

	if err := errors.Join(
		params.Sender.Validate(),
		params.Receiver.Validate(),
		branchErr,
		weightErr,
		params.PaymentMethod.Validate(),
		params.Actor.Validate(),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return CreateParcelCommand{
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) Params() CreateParcelParams {
	return c.params
}
