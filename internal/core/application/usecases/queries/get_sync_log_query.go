package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/broadcast"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrGetSyncLogQueryIsNotConstructed = errors.New(
	"GetSyncLogQuery must be created via NewGetSyncLogQuery constructor",
)

// GetSyncLogQuery pulls the broadcast log tail newer than Since, in
// milliseconds. Since 0 is a full sync: the response also carries a
// snapshot of every stored parcel.
type GetSyncLogQuery struct {
	since int64
	guard guard.ConstructorGuard
}

func NewGetSyncLogQuery(since int64) (GetSyncLogQuery, error) {
	if since < 0 {
		return GetSyncLogQuery{}, errs.NewValueIsOutOfRangeError("since", since, 0, "now")
	}
	return GetSyncLogQuery{since: since, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSyncLogQuery) Validate() error {
	return q.guard.Validate(ErrGetSyncLogQueryIsNotConstructed)
}

func (q GetSyncLogQuery) Since() int64 {
	return q.since
}

func (q GetSyncLogQuery) IsFull() bool {
	return q.since == 0
}

// SyncLog is the pull response. Timestamp is the server clock at read time.
type SyncLog struct {
	Updates   []broadcast.Envelope
	Parcels   []broadcast.ParcelSnapshot
	Timestamp int64
}
