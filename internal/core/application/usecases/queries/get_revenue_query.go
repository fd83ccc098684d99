package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrGetRevenueQueryIsNotConstructed = errors.New(
	"GetRevenueQuery must be created via NewGetRevenueQuery constructor",
)

// GetRevenueQuery reads the revenue ledger.
type GetRevenueQuery struct {
	guard guard.ConstructorGuard
}

func NewGetRevenueQuery() GetRevenueQuery {
	return GetRevenueQuery{guard: guard.NewConstructorGuard()}
}

func (q GetRevenueQuery) Validate() error {
	return q.guard.Validate(ErrGetRevenueQueryIsNotConstructed)
}

// RevenueView is the running total of credited base amounts. UpdatedAt is
// zero until the first credit.
type RevenueView struct {
	Total     kernel.Money
	UpdatedAt time.Time
}
