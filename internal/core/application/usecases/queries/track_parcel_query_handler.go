package queries

import (
	"context"

	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

type TrackParcelQueryHandler struct {
	db *gorm.DB
}

func NewTrackParcelQueryHandler(db *gorm.DB) TrackParcelQueryHandler {
	return TrackParcelQueryHandler{db: db}
}

func (h TrackParcelQueryHandler) Handle(ctx context.Context, query TrackParcelQuery) (ParcelView, error) {
	if err := query.Validate(); err != nil {
		return ParcelView{}, err
	}

	tn := query.TrackingNumber().String()
	view, ok, err := findParcelView(ctx, h.db, "tracking_number = ?", tn)
	if err != nil {
		return ParcelView{}, err
	}
	if !ok {
		return ParcelView{}, errs.NewObjectNotFoundError("trackingNumber", tn)
	}
	return view, nil
}
