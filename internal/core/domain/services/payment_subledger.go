package services

import (
	"time"

	"parceltrack/internal/core/domain/model/effect"
	"parceltrack/internal/core/domain/model/parcel"
)

// PaymentSubledger is the single credit point for parcel revenue.
//
// Business rules:
//   - prepaid: captured once, at creation
//   - cash-on-delivery: confirmable while delivered or received
//   - pay-forward: confirmable once received
//   - a paid parcel is never captured again, whatever its method
//
// The credited delta is the parcel's base amount; float charges are not revenue.
type PaymentSubledger struct{}

func NewPaymentSubledger() PaymentSubledger {
	return PaymentSubledger{}
}

// ValidateConfirm reports whether p may be marked paid now.
//
// Returns:
//   - parcel.ErrAlreadyPaid if p is paid (every prepaid parcel after creation)
//   - *parcel.PaymentNotAllowedError if the status is outside the method's window
func (PaymentSubledger) ValidateConfirm(p *parcel.Parcel) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.IsPaid() {
		return parcel.ErrAlreadyPaid
	}

	status := p.Status()
	allowed := false
	switch p.PaymentMethod() {
	case parcel.PaymentMethodPrepaid:
		allowed = status != parcel.StatusCancelled
	case parcel.PaymentMethodCashOnDelivery:
		allowed = status == parcel.StatusDelivered || status == parcel.StatusReceived
	case parcel.PaymentMethodPayForward:
		allowed = status == parcel.StatusReceived
	}
	if !allowed {
		return &parcel.PaymentNotAllowedError{Method: p.PaymentMethod(), Status: status}
	}
	return nil
}

// Capture marks p paid and returns the matching Revenue effect. p is mutated;
// callers pass a clone when the input must stay untouched.
func (s PaymentSubledger) Capture(p *parcel.Parcel, actor parcel.Actor, at time.Time) (effect.Revenue, error) {
	if err := s.ValidateConfirm(p); err != nil {
		return effect.Revenue{}, err
	}
	if err := p.MarkPaid(actor, at); err != nil {
		return effect.Revenue{}, err
	}
	return effect.Revenue{Delta: p.Amount()}, nil
}

// CreditReplicated returns the revenue owed for a payment made by another
// client: the amount, once, when a merge turned the stored parcel paid.
func (PaymentSubledger) CreditReplicated(result parcel.MergeResult) (effect.Revenue, bool) {
	if !result.NewlyPaid || result.Parcel == nil {
		return effect.Revenue{}, false
	}
	return effect.Revenue{Delta: result.Parcel.Amount()}, true
}
