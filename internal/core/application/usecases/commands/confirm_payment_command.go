package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand records that a parcel's charge was collected.
type ConfirmPaymentCommand struct {
	parcelID kernel.UUID
	actor    parcel.Actor

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(parcelID kernel.UUID, actor parcel.Actor) (ConfirmPaymentCommand, error) {
	if err := errors.Join(parcelID.Validate(), actor.Validate()); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return ConfirmPaymentCommand{
		parcelID: parcelID,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c ConfirmPaymentCommand) Actor() parcel.Actor {
	return c.actor
}
