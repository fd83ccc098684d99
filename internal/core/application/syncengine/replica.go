package syncengine

import (
	"context"
	"errors"
	"log/slog"

	"parceltrack/internal/core/domain/model/broadcast"
	"parceltrack/internal/core/domain/model/effect"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

type (
	// ReplicaUoW is the transaction the replica applies one snapshot in.
	ReplicaUoW interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
		ParcelRepository() ports.ParcelRepository
		RevenueRepository() ports.RevenueRepository
	}

	ReplicaUoWFactory interface {
		Create() ReplicaUoW
	}
)

// Replica materializes envelopes into the parcel record store.
//
// Record fields follow the last writer by update time while the status
// history is merged by entry id, so a stale overwrite can never drop
// history. A replicated payment credits revenue once, when the stored
// parcel turns paid; the isPaid guard makes redelivery harmless.
//
// Envelopes whose payload cannot be decoded or reconciled are logged and
// skipped; store failures are returned so the engine redelivers them.
type Replica struct {
	uowFactory ReplicaUoWFactory
	subledger  services.PaymentSubledger
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewReplica(uowFactory ReplicaUoWFactory, clock kernel.Clock, logger *slog.Logger) *Replica {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return &Replica{
		uowFactory: uowFactory,
		subledger:  services.NewPaymentSubledger(),
		clock:      clock,
		logger:     logger.With("component", "replica"),
	}
}

// Apply is a Handler.
func (r *Replica) Apply(ctx context.Context, env broadcast.Envelope) error {
	var snapshots []broadcast.ParcelSnapshot

	if env.Type == broadcast.TypeSync {
		full, err := env.DecodeFullSync()
		if err != nil {
			r.skip(ctx, env, err)
			return nil
		}
		snapshots = full.Parcels
	} else {
		change, err := env.DecodeChange()
		if err != nil {
			r.skip(ctx, env, err)
			return nil
		}
		snapshots = []broadcast.ParcelSnapshot{change.Parcel}
	}

	for _, s := range snapshots {
		incoming, err := s.ToParcel()
		if err != nil {
			r.skip(ctx, env, err)
			continue
		}
		if err := r.applyParcel(ctx, incoming); err != nil {
			if errors.Is(err, errs.ErrValueIsInvalid) {
				r.skip(ctx, env, err)
				continue
			}
			return err
		}
	}
	return nil
}

// Get reads one materialized parcel. Reads never Begin: a repository taken
// from a unit of work that was not begun queries the plain connection.
func (r *Replica) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return r.uowFactory.Create().ParcelRepository().Get(ctx, id)
}

// List reads every materialized parcel, newest first, outside a transaction
// like Get.
func (r *Replica) List(ctx context.Context) ([]*parcel.Parcel, error) {
	return r.uowFactory.Create().ParcelRepository().List(ctx, ports.ParcelFilter{})
}

func (r *Replica) applyParcel(ctx context.Context, incoming *parcel.Parcel) error {
	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()

	var result parcel.MergeResult
	stored, err := repo.Get(ctx, incoming.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		if err := repo.Add(ctx, incoming); err != nil {
			return err
		}
		result = parcel.MergeResult{Parcel: incoming, Changed: true, NewlyPaid: incoming.IsPaid()}
	case err != nil:
		return err
	default:
		result, err = parcel.Merge(stored, incoming)
		if err != nil {
			return err
		}
		if !result.Changed {
			return nil
		}
		if err := repo.Update(ctx, result.Parcel); err != nil {
			return err
		}
	}

	if credit, ok := r.subledger.CreditReplicated(result); ok {
		if err := r.credit(ctx, uow.RevenueRepository(), credit); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "Replicated parcel",
		"parcel_id", result.Parcel.ID().String(),
		"status", result.Parcel.Status().String(),
		"version", result.Parcel.Version())
	return nil
}

func (r *Replica) credit(ctx context.Context, repo ports.RevenueRepository, credit effect.Revenue) error {
	ledger, err := repo.GetForUpdate(ctx)
	if err != nil {
		return err
	}
	next, err := ledger.Apply([]effect.Effect{credit}, r.clock.Now())
	if err != nil {
		return err
	}
	return repo.Save(ctx, next)
}

func (r *Replica) skip(ctx context.Context, env broadcast.Envelope, err error) {
	r.logger.WarnContext(ctx, "Skipping envelope that cannot be replicated",
		"update_id", env.UpdateID, "type", env.Type, "error", err)
}
