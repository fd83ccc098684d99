// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every parcel command runs the same path: validation, the state machine,
// one transaction for the record, revenue and inbox, then a publish to the
// synchronization engine.
package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/broadcast"
	"parceltrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	RevenueRepoFactory interface {
		RevenueRepository() ports.RevenueRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// ParcelUoW spans everything a parcel change writes: the record, the
	// revenue it credits and the inbox records it produces.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.ParcelRepository().Update(ctx, p)
	//   ledger, err := uow.RevenueRepository().GetForUpdate(ctx)
	//   // ...
	//
	//   err = uow.Commit(ctx)
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
		RevenueRepoFactory
		NotificationRepoFactory
	}

	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// NotificationUoW manages transactions for inbox-only operations.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)

// Publisher hands committed envelopes to the synchronization engine.
type Publisher interface {
	Publish(ctx context.Context, env broadcast.Envelope) error
}
