package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ReportPeriod restricts a branch report to parcels created in a window.
type ReportPeriod string

const (
	ReportPeriodAll   ReportPeriod = "all"
	ReportPeriodMonth ReportPeriod = "month"
)

func ReportPeriodFromString(s string) (ReportPeriod, error) {
	switch p := ReportPeriod(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ReportPeriodAll, nil
	case ReportPeriodAll, ReportPeriodMonth:
		return p, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("period", fmt.Errorf("unknown period %q", s))
	}
}

var ErrGetBranchReportQueryIsNotConstructed = errors.New(
	"GetBranchReportQuery must be created via NewGetBranchReportQuery constructor",
)

// GetBranchReportQuery aggregates parcels per destination branch.
type GetBranchReportQuery struct {
	period ReportPeriod
	guard  guard.ConstructorGuard
}

func NewGetBranchReportQuery(period ReportPeriod) (GetBranchReportQuery, error) {
	if period != ReportPeriodAll && period != ReportPeriodMonth {
		return GetBranchReportQuery{}, errs.NewValueIsInvalidError("period")
	}
	return GetBranchReportQuery{period: period, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBranchReportQuery) Validate() error {
	return q.guard.Validate(ErrGetBranchReportQueryIsNotConstructed)
}

func (q GetBranchReportQuery) Period() ReportPeriod {
	return q.period
}

// BranchReport holds one row per destination branch, ordered by branch id,
// plus the sum over all rows.
type BranchReport struct {
	Period ReportPeriod
	// From is the inclusive lower bound on creation time; zero for ReportPeriodAll.
	From     time.Time
	Branches []BranchReportRow
	Totals   BranchReportRow
}

type BranchReportRow struct {
	BranchID string
	Total    int64
	// Delivered counts delivered and received parcels.
	Delivered int64
	// Open counts pending and in-transit parcels.
	Open      int64
	Cancelled int64
	Paid      int64
	Unpaid    int64
	// Revenue is the sum of base amounts over paid parcels.
	Revenue kernel.Money
}

func (r BranchReportRow) add(other BranchReportRow) BranchReportRow {
	r.Total += other.Total
	r.Delivered += other.Delivered
	r.Open += other.Open
	r.Cancelled += other.Cancelled
	r.Paid += other.Paid
	r.Unpaid += other.Unpaid
	r.Revenue = r.Revenue.Add(other.Revenue)
	return r
}
