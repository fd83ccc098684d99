package parcel

import (
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/kernel"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel was not built by
	// NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("parcel must be created via NewParcel or RestoreParcel")

	ErrInvalidTransition = errors.New("invalid transition")
	ErrPaymentRequired   = errors.New("payment required")
	ErrPaymentNotAllowed = errors.New("payment not allowed")
	ErrAlreadyPaid       = errors.New("parcel is already paid")
	ErrParcelIsFinalized = errors.New("parcel is finalized")
)

// InvalidTransitionError reports a move that is not an edge of the lifecycle graph.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// PaymentRequiredError blocks receipt of an unpaid cash-on-delivery parcel.
// Outstanding is the parcel's total amount.
type PaymentRequiredError struct {
	ParcelID    kernel.UUID
	Outstanding kernel.Money
}

func (e *PaymentRequiredError) Error() string {
	return fmt.Sprintf("%s: parcel %s has %s outstanding", ErrPaymentRequired, e.ParcelID, e.Outstanding)
}

func (e *PaymentRequiredError) Unwrap() error {
	return ErrPaymentRequired
}

// PaymentNotAllowedError reports a payment confirmation outside the window
// permitted by the parcel's payment method.
type PaymentNotAllowedError struct {
	Method PaymentMethod
	Status Status
}

func (e *PaymentNotAllowedError) Error() string {
	return fmt.Sprintf("%s: %s parcel cannot be paid while %s", ErrPaymentNotAllowed, e.Method, e.Status)
}

func (e *PaymentNotAllowedError) Unwrap() error {
	return ErrPaymentNotAllowed
}
