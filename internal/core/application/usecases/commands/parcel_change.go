package commands

import (
	"context"
	"fmt"
	"log/slog"

	"parceltrack/internal/core/domain/model/broadcast"
	"parceltrack/internal/core/domain/model/effect"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// ChangeResult is what every parcel command returns.
type ChangeResult struct {
	Parcel *parcel.Parcel

	// UpdateID identifies the envelope that carries the change.
	UpdateID string

	// Published is false when the change was committed but the broadcast log
	// was unreachable. The engine keeps the envelope and appends it later.
	Published bool
}

// parcelChange is a state machine outcome waiting to be committed.
type parcelChange struct {
	parcel       *parcel.Parcel
	effects      []effect.Effect
	envelopeType broadcast.Type
	isNew        bool
}

// changeCommitter writes a parcelChange in the caller's transaction and
// publishes it after commit.
type changeCommitter struct {
	publisher  Publisher
	dispatcher services.NotificationDispatcher
	logger     *slog.Logger
}

func newChangeCommitter(publisher Publisher, logger *slog.Logger) changeCommitter {
	return changeCommitter{
		publisher:  publisher,
		dispatcher: services.NewNotificationDispatcher(),
		logger:     logger,
	}
}

// write stores the record, credits revenue and fills the inboxes. The
// returned envelope must only be published once uow is committed.
func (c changeCommitter) write(ctx context.Context, uow ParcelUoW, ch parcelChange) (broadcast.Envelope, error) {
	repo := uow.ParcelRepository()
	if ch.isNew {
		if err := repo.Add(ctx, ch.parcel); err != nil {
			return broadcast.Envelope{}, err
		}
	} else {
		if err := repo.Update(ctx, ch.parcel); err != nil {
			return broadcast.Envelope{}, err
		}
	}

	at := ch.parcel.UpdatedAt()

	if effect.CountRevenue(ch.effects) > 0 {
		revenueRepo := uow.RevenueRepository()
		ledger, err := revenueRepo.GetForUpdate(ctx)
		if err != nil {
			return broadcast.Envelope{}, err
		}
		ledger, err = ledger.Apply(ch.effects, at)
		if err != nil {
			return broadcast.Envelope{}, err
		}
		if err := revenueRepo.Save(ctx, ledger); err != nil {
			return broadcast.Envelope{}, err
		}
	}

	env, err := broadcast.NewEnvelope(ch.envelopeType, broadcast.Change{
		Parcel:  broadcast.FromParcel(ch.parcel),
		Effects: broadcast.EffectsToPayload(ch.effects),
	}, at)
	if err != nil {
		return broadcast.Envelope{}, err
	}

	records, err := c.dispatcher.Dispatch(ch.effects, services.DispatchContext{UpdateID: env.UpdateID, At: env.Time()})
	if err != nil {
		return broadcast.Envelope{}, fmt.Errorf("dispatch notifications: %w", err)
	}
	if len(records) > 0 {
		if err := uow.NotificationRepository().AddMany(ctx, records); err != nil {
			return broadcast.Envelope{}, err
		}
	}

	return env, nil
}

// commit runs write inside a fresh transaction, then publishes.
func (c changeCommitter) commit(ctx context.Context, uow ParcelUoW, ch parcelChange) (ChangeResult, error) {
	env, err := c.write(ctx, uow, ch)
	if err != nil {
		return ChangeResult{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return ChangeResult{}, err
	}

	return ChangeResult{
		Parcel:    ch.parcel,
		UpdateID:  env.UpdateID,
		Published: c.publish(ctx, env),
	}, nil
}

// mutation derives the next state of a stored parcel.
type mutation func(current *parcel.Parcel) (*parcel.Parcel, []effect.Effect, error)

// mutate loads a parcel inside a transaction, applies fn and commits the
// outcome. A concurrent writer surfaces as errs.VersionIsInvalidError.
func (c changeCommitter) mutate(
	ctx context.Context,
	uowFactory ParcelUoWFactory,
	id kernel.UUID,
	envelopeType broadcast.Type,
	fn mutation,
) (ChangeResult, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	current, err := uow.ParcelRepository().Get(ctx, id)
	if err != nil {
		return ChangeResult{}, err
	}

	next, effects, err := fn(current)
	if err != nil {
		return ChangeResult{}, err
	}

	return c.commit(ctx, uow, parcelChange{
		parcel:       next,
		effects:      effects,
		envelopeType: envelopeType,
	})
}

// publish never fails the command: the change is already committed.
func (c changeCommitter) publish(ctx context.Context, env broadcast.Envelope) bool {
	if err := c.publisher.Publish(ctx, env); err != nil {
		c.logger.WarnContext(ctx, "Committed change not yet published",
			"update_id", env.UpdateID, "type", env.Type, "error", err)
		return false
	}
	return true
}
