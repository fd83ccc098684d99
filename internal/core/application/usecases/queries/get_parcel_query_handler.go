package queries

import (
	"context"

	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetParcelQueryHandler struct {
	db *gorm.DB
}

func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when no parcel has the id.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelView, error) {
	if err := query.Validate(); err != nil {
		return ParcelView{}, err
	}

	view, ok, err := findParcelView(ctx, h.db, "id = ?", query.ParcelID().Bytes())
	if err != nil {
		return ParcelView{}, err
	}
	if !ok {
		return ParcelView{}, errs.NewObjectNotFoundError("parcelId", query.ParcelID())
	}
	return view, nil
}
