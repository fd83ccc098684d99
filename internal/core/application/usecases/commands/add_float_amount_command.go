package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrAddFloatAmountCommandIsNotConstructed = errors.New(
	"AddFloatAmountCommand must be created via NewAddFloatAmountCommand constructor",
)

// AddFloatAmountCommand raises the additional charge on a parcel.
type AddFloatAmountCommand struct {
	parcelID kernel.UUID
	delta    kernel.Money
	actor    parcel.Actor

	guard guard.ConstructorGuard
}

func NewAddFloatAmountCommand(parcelID kernel.UUID, delta kernel.Money, actor parcel.Actor) (AddFloatAmountCommand, error) {
	var deltaErr error
	if delta.IsZero() {
		deltaErr = errs.NewValueIsInvalidErrorWithCause("floatAmount", errors.New("must be greater than zero"))
	}

	if err := errors.Join(parcelID.Validate(), deltaErr, actor.Validate()); err != nil {
		return AddFloatAmountCommand{}, err
	}

	return AddFloatAmountCommand{
		parcelID: parcelID,
		delta:    delta,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AddFloatAmountCommand) Validate() error {
	return c.guard.Validate(ErrAddFloatAmountCommandIsNotConstructed)
}

func (c AddFloatAmountCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c AddFloatAmountCommand) Delta() kernel.Money {
	return c.delta
}

func (c AddFloatAmountCommand) Actor() parcel.Actor {
	return c.actor
}
