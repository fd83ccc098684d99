package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/broadcast"
	"parceltrack/internal/pkg/guard"
)

var ErrPushEnvelopeCommandIsNotConstructed = errors.New(
	"PushEnvelopeCommand must be created via NewPushEnvelopeCommand constructor",
)

// PushEnvelopeCommand carries an envelope produced by another client.
type PushEnvelopeCommand struct {
	envelope broadcast.Envelope

	guard guard.ConstructorGuard
}

func NewPushEnvelopeCommand(env broadcast.Envelope) (PushEnvelopeCommand, error) {
	if err := env.Validate(); err != nil {
		return PushEnvelopeCommand{}, err
	}

	return PushEnvelopeCommand{
		envelope: env,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c PushEnvelopeCommand) Validate() error {
	return c.guard.Validate(ErrPushEnvelopeCommandIsNotConstructed)
}

func (c PushEnvelopeCommand) Envelope() broadcast.Envelope {
	return c.envelope
}
