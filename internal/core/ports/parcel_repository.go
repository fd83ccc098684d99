// Package ports defines the contracts between the parcel core and its
// infrastructure: record stores, the broadcast log and the wake signal.
package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

// ParcelFilter narrows ParcelRepository.List. Zero values match everything.
type ParcelFilter struct {
	// BranchID matches parcels sent from or destined to the branch.
	BranchID string
	Statuses []parcel.Status
	// Limit caps the result; 0 means no cap.
	Limit int
}

// ParcelRepository is the parcel record store. Writes use optimistic
// versioning: Update succeeds only while the stored version still equals
// the parcel's OriginalVersion, and stores Version.
//
// Status history rows are append-only; Update inserts entries it has not
// seen and never rewrites or deletes existing ones.
type ParcelRepository interface {
	// Add persists a parcel that is not stored yet.
	Add(ctx context.Context, p *parcel.Parcel) error

	// Update persists a changed parcel. Returns errs.VersionIsInvalidError when
	// another writer saved the record since it was loaded.
	Update(ctx context.Context, p *parcel.Parcel) error

	// Get returns errs.ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingNumber returns errs.ObjectNotFoundError for unknown numbers.
	GetByTrackingNumber(ctx context.Context, tn kernel.TrackingNumber) (*parcel.Parcel, error)

	// List returns matching parcels, newest first.
	List(ctx context.Context, filter ParcelFilter) ([]*parcel.Parcel, error)
}
