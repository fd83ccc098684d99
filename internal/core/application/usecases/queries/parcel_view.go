// Package queries contains read-only operations over the record store.
// Handlers read with raw SQL through GORM and return view structs; they
// never load aggregates or open transactions.
package queries

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ParcelView is the read model of one parcel.
type ParcelView struct {
	ID                  kernel.UUID
	TrackingNumber      string
	Sender              parcel.Party
	Receiver            parcel.Party
	SenderBranchID      string
	DestinationBranchID string
	Description         string
	Weight              float64
	PaymentMethod       parcel.PaymentMethod
	IsPaid              bool
	PaidAt              *time.Time
	PaidBy              string
	Amount              kernel.Money
	FloatAmount         kernel.Money
	TotalAmount         kernel.Money
	Status              parcel.Status
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Version             int64

	// StatusUpdates is oldest first. List results leave it nil.
	StatusUpdates []StatusUpdateView
}

type StatusUpdateView struct {
	ID        kernel.UUID
	Status    parcel.Status
	Timestamp time.Time
	ActorID   string
	BranchID  string
	Note      string
}

const parcelColumns = `
	id, tracking_number,
	sender_name, sender_email, sender_phone,
	receiver_name, receiver_email, receiver_phone,
	sender_branch_id, destination_branch_id, description, weight,
	payment_method, is_paid, paid_at, paid_by,
	amount, float_amount, total_amount,
	status, created_at, updated_at, version`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParcelView(row rowScanner) (ParcelView, error) {
	var (
		v                              ParcelView
		id                             uuid.UUID
		method, status                 string
		paidAt                         sql.NullTime
		amount, floatAmount, totalAmnt decimal.Decimal
	)

	if err := row.Scan(
		&id, &v.TrackingNumber,
		&v.Sender.Name, &v.Sender.Email, &v.Sender.Phone,
		&v.Receiver.Name, &v.Receiver.Email, &v.Receiver.Phone,
		&v.SenderBranchID, &v.DestinationBranchID, &v.Description, &v.Weight,
		&method, &v.IsPaid, &paidAt, &v.PaidBy,
		&amount, &floatAmount, &totalAmnt,
		&status, &v.CreatedAt, &v.UpdatedAt, &v.Version,
	); err != nil {
		return ParcelView{}, err
	}

	parcelID, idErr := kernel.UUIDFromBytes(id[:])
	paymentMethod, methodErr := parcel.PaymentMethodFromString(method)
	parcelStatus, statusErr := parcel.StatusFromString(status)
	amountMoney, amountErr := kernel.NewMoney(amount)
	floatMoney, floatErr := kernel.NewMoney(floatAmount)
	totalMoney, totalErr := kernel.NewMoney(totalAmnt)
	if err := errors.Join(idErr, methodErr, statusErr, amountErr, floatErr, totalErr); err != nil {
		return ParcelView{}, err
	}

	v.ID = parcelID
	v.PaymentMethod = paymentMethod
	v.Status = parcelStatus
	v.Amount = amountMoney
	v.FloatAmount = floatMoney
	v.TotalAmount = totalMoney
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()
	if paidAt.Valid {
		at := paidAt.Time.UTC()
		v.PaidAt = &at
	}
	return v, nil
}

// findParcelView loads one parcel with its history. ok is false when no
// row matches where.
func findParcelView(ctx context.Context, db *gorm.DB, where string, arg any) (view ParcelView, ok bool, err error) {
	rows, err := db.WithContext(ctx).Raw(`SELECT `+parcelColumns+` FROM parcels WHERE `+where+` LIMIT 1`, arg).Rows()
	if err != nil {
		return ParcelView{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return ParcelView{}, false, rows.Err()
	}
	view, err = scanParcelView(rows)
	if err != nil {
		return ParcelView{}, false, err
	}
	if err := rows.Close(); err != nil {
		return ParcelView{}, false, err
	}

	view.StatusUpdates, err = loadStatusUpdates(ctx, db, view.ID)
	if err != nil {
		return ParcelView{}, false, err
	}
	return view, true, nil
}

func loadStatusUpdates(ctx context.Context, db *gorm.DB, parcelID kernel.UUID) ([]StatusUpdateView, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT id, status, "timestamp", actor_id, branch_id, note
		FROM status_updates
		WHERE parcel_id = ?
		ORDER BY "timestamp", id
	`, parcelID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	updates := make([]StatusUpdateView, 0)
	for rows.Next() {
		var (
			u      StatusUpdateView
			id     uuid.UUID
			status string
		)
		if err := rows.Scan(&id, &status, &u.Timestamp, &u.ActorID, &u.BranchID, &u.Note); err != nil {
			return nil, err
		}

		updateID, idErr := kernel.UUIDFromBytes(id[:])
		updateStatus, statusErr := parcel.StatusFromString(status)
		if err := errors.Join(idErr, statusErr); err != nil {
			return nil, err
		}
		u.ID = updateID
		u.Status = updateStatus
		u.Timestamp = u.Timestamp.UTC()
		updates = append(updates, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// equal timestamps are ordered by lifecycle rank, as in the aggregate
	sort.SliceStable(updates, func(i, j int) bool {
		a, b := updates[i], updates[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.Status < b.Status
	})
	return updates, nil
}
