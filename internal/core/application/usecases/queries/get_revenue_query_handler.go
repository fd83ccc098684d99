package queries

import (
	"context"
	"database/sql"

	"parceltrack/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetRevenueQueryHandler struct {
	db *gorm.DB
}

func NewGetRevenueQueryHandler(db *gorm.DB) GetRevenueQueryHandler {
	return GetRevenueQueryHandler{db: db}
}

func (h GetRevenueQueryHandler) Handle(ctx context.Context, query GetRevenueQuery) (RevenueView, error) {
	if err := query.Validate(); err != nil {
		return RevenueView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`SELECT total, updated_at FROM revenue WHERE id = 1`).Rows()
	if err != nil {
		return RevenueView{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		return RevenueView{Total: kernel.Zero()}, rows.Err()
	}

	var (
		total     decimal.Decimal
		updatedAt sql.NullTime
	)
	if err = rows.Scan(&total, &updatedAt); err != nil {
		return RevenueView{}, err
	}

	money, err := kernel.NewMoney(total)
	if err != nil {
		return RevenueView{}, err
	}
	view := RevenueView{Total: money}
	if updatedAt.Valid {
		view.UpdatedAt = updatedAt.Time.UTC()
	}
	return view, nil
}
