package commands

import (
	"context"
)

// PushEnvelopeCommandHandler accepts envelopes from other clients into the
// broadcast log. Subscribers, the replica included, pick them up on their
// next poll.
type PushEnvelopeCommandHandler struct {
	publisher Publisher
}

func NewPushEnvelopeCommandHandler(publisher Publisher) PushEnvelopeCommandHandler {
	return PushEnvelopeCommandHandler{
		publisher: publisher,
	}
}

// Handle returns the publisher's error unchanged. When it wraps
// syncengine.ErrSyncUnavailable the envelope is already queued for retry,
// and pushing it again is harmless because updateId is the dedup key.
func (h *PushEnvelopeCommandHandler) Handle(ctx context.Context, cmd PushEnvelopeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.publisher.Publish(ctx, cmd.Envelope())
}
