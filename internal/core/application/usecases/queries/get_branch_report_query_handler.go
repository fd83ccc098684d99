package queries

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetBranchReportQueryHandler struct {
	db    *gorm.DB
	clock kernel.Clock
}

func NewGetBranchReportQueryHandler(db *gorm.DB, clock kernel.Clock) GetBranchReportQueryHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return GetBranchReportQueryHandler{db: db, clock: clock}
}

// Handle groups parcels by destination branch. ReportPeriodMonth starts at
// the first instant of the current UTC month.
func (h GetBranchReportQueryHandler) Handle(ctx context.Context, query GetBranchReportQuery) (BranchReport, error) {
	if err := query.Validate(); err != nil {
		return BranchReport{}, err
	}

	report := BranchReport{Period: query.Period(), Branches: make([]BranchReportRow, 0), Totals: BranchReportRow{Revenue: kernel.Zero()}}
	var from time.Time
	if query.Period() == ReportPeriodMonth {
		from = now.With(h.clock.Now().UTC()).BeginningOfMonth()
		report.From = from
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			destination_branch_id,
			COUNT(*),
			COUNT(*) FILTER (WHERE status IN (?, ?)),
			COUNT(*) FILTER (WHERE status IN (?, ?)),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE is_paid),
			COUNT(*) FILTER (WHERE NOT is_paid),
			COALESCE(SUM(amount) FILTER (WHERE is_paid), 0)
		FROM parcels
		WHERE created_at >= ?
		GROUP BY destination_branch_id
		ORDER BY destination_branch_id
	`,
		parcel.StatusDelivered.String(), parcel.StatusReceived.String(),
		parcel.StatusPending.String(), parcel.StatusInTransit.String(),
		parcel.StatusCancelled.String(),
		from,
	).Rows()
	if err != nil {
		return BranchReport{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			row     BranchReportRow
			revenue decimal.Decimal
		)
		if err = rows.Scan(
			&row.BranchID,
			&row.Total,
			&row.Delivered,
			&row.Open,
			&row.Cancelled,
			&row.Paid,
			&row.Unpaid,
			&revenue,
		); err != nil {
			return BranchReport{}, err
		}

		money, moneyErr := kernel.NewMoney(revenue)
		if moneyErr != nil {
			return BranchReport{}, moneyErr
		}
		row.Revenue = money

		report.Branches = append(report.Branches, row)
		report.Totals = report.Totals.add(row)
	}

	if err = rows.Err(); err != nil {
		return BranchReport{}, err
	}
	return report, nil
}
