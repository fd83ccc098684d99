package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrTrackParcelQueryIsNotConstructed = errors.New(
	"TrackParcelQuery must be created via NewTrackParcelQuery constructor",
)

// TrackParcelQuery is the public lookup by tracking number. The number is
// normalised to upper case before it is matched.
//
// Example:
//
//	query, err := NewTrackParcelQuery("pcl0048213377")
//	if err != nil {
//	    return err
//	}
//	view, err := NewTrackParcelQueryHandler(db).Handle(ctx, query)
type TrackParcelQuery struct {
	trackingNumber kernel.TrackingNumber
	guard          guard.ConstructorGuard
}

func NewTrackParcelQuery(trackingNumber string) (TrackParcelQuery, error) {
	tn, err := kernel.TrackingNumberFromString(trackingNumber)
	if err != nil {
		return TrackParcelQuery{}, err
	}
	return TrackParcelQuery{trackingNumber: tn, guard: guard.NewConstructorGuard()}, nil
}

func (q TrackParcelQuery) Validate() error {
	return q.guard.Validate(ErrTrackParcelQueryIsNotConstructed)
}

func (q TrackParcelQuery) TrackingNumber() kernel.TrackingNumber {
	return q.trackingNumber
}
