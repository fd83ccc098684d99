package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/broadcast"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

type (
	// LogReader returns the retained broadcast log.
	LogReader interface {
		Entries(ctx context.Context) ([]broadcast.Envelope, error)
	}

	// ParcelLister returns every materialized parcel.
	ParcelLister interface {
		List(ctx context.Context) ([]*parcel.Parcel, error)
	}
)

type GetSyncLogQueryHandler struct {
	log     LogReader
	parcels ParcelLister
	clock   kernel.Clock
}

func NewGetSyncLogQueryHandler(log LogReader, parcels ParcelLister, clock kernel.Clock) GetSyncLogQueryHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return GetSyncLogQueryHandler{log: log, parcels: parcels, clock: clock}
}

// Handle returns the entries newer than the query's Since, oldest first.
func (h GetSyncLogQueryHandler) Handle(ctx context.Context, query GetSyncLogQuery) (SyncLog, error) {
	if err := query.Validate(); err != nil {
		return SyncLog{}, err
	}

	result := SyncLog{Timestamp: kernel.UnixMilli(h.clock.Now())}

	entries, err := h.log.Entries(ctx)
	if err != nil {
		return SyncLog{}, err
	}
	result.Updates = broadcast.After(entries, query.Since())

	if !query.IsFull() {
		return result, nil
	}

	stored, err := h.parcels.List(ctx)
	if err != nil {
		return SyncLog{}, err
	}
	result.Parcels = make([]broadcast.ParcelSnapshot, 0, len(stored))
	for _, p := range stored {
		result.Parcels = append(result.Parcels, broadcast.FromParcel(p))
	}
	return result, nil
}
