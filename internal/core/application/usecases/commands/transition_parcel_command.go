package commands

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/guard"
)

var ErrTransitionParcelCommandIsNotConstructed = errors.New(
	"TransitionParcelCommand must be created via NewTransitionParcelCommand constructor",
)

// TransitionParcelCommand moves a parcel along its lifecycle.
type TransitionParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	target   parcel.Status
	actor    parcel.Actor
	note     string

	guard guard.ConstructorGuard
}

func NewTransitionParcelCommand(
	parcelID kernel.UUID,
	target parcel.Status,
	actor parcel.Actor,
	note string,
) (TransitionParcelCommand, error) {
	cmd := TransitionParcelCommand{
		note:  strings.TrimSpace(note),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return TransitionParcelCommand{}, err
	}

	return cmd, nil
}

func (c TransitionParcelCommand) Validate() error {
	return c.guard.Validate(ErrTransitionParcelCommandIsNotConstructed)
}

func (c TransitionParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c TransitionParcelCommand) Target() parcel.Status {
	return c.target
}

func (c TransitionParcelCommand) Actor() parcel.Actor {
	return c.actor
}

// Note is free text stored on the status history entry.
func (c TransitionParcelCommand) Note() string {
	return c.note
}

func (c *TransitionParcelCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.parcelID = id
	return nil
}

func (c *TransitionParcelCommand) setTarget(target parcel.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *TransitionParcelCommand) setActor(actor parcel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
