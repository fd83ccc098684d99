package parcel

import "time"

// Payment is the parcel's payment record. Once IsPaid is true the record
// is never rewritten.
type Payment struct {
	isPaid bool
	paidAt time.Time
	paidBy string
}

// Unpaid returns an empty payment record.
func Unpaid() Payment {
	return Payment{}
}

// Paid returns a settled payment record.
func Paid(at time.Time, by string) Payment {
	return Payment{isPaid: true, paidAt: at.UTC(), paidBy: by}
}

func (p Payment) IsPaid() bool {
	return p.isPaid
}

// PaidAt is the zero time while unpaid.
func (p Payment) PaidAt() time.Time {
	return p.paidAt
}

// PaidBy is the actor that settled the charge, empty while unpaid.
func (p Payment) PaidBy() string {
	return p.paidBy
}
