package parcel

import (
	"fmt"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// PaymentMethod decides when a parcel's charge is collected.
type PaymentMethod int

const (
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentMethodPrepaid is paid by the sender when the parcel is registered.
	PaymentMethodPrepaid

	// PaymentMethodCashOnDelivery is collected from the receiver once the
	// parcel is delivered; receipt is blocked until it is paid.
	PaymentMethodCashOnDelivery

	// PaymentMethodPayForward is collected from the receiver after receipt.
	PaymentMethodPayForward
)

var paymentMethodNames = map[PaymentMethod]string{
	PaymentMethodUnknown:        "unknown",
	PaymentMethodPrepaid:        "prepaid",
	PaymentMethodCashOnDelivery: "cash-on-delivery",
	PaymentMethodPayForward:     "pay-forward",
}

// PaymentMethodFromString parses "prepaid", "cash-on-delivery" or "pay-forward".
// Underscored spellings and the legacy "postpaid" (cash-on-delivery) are accepted.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if normalized == "postpaid" {
		return PaymentMethodCashOnDelivery, nil
	}
	for m, name := range paymentMethodNames {
		if m != PaymentMethodUnknown && name == normalized {
			return m, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment method is invalid",
		fmt.Errorf("%q is not a valid payment method", s),
	)
}

func (m PaymentMethod) Validate() error {
	if m <= PaymentMethodUnknown || m > PaymentMethodPayForward {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method is invalid",
			fmt.Errorf("%d is not a valid payment method", m),
		)
	}
	return nil
}

func (m PaymentMethod) String() string {
	if name, ok := paymentMethodNames[m]; ok {
		return name
	}
	return paymentMethodNames[PaymentMethodUnknown]
}

// PaidAtCreation reports whether the charge is captured when the parcel is registered.
func (m PaymentMethod) PaidAtCreation() bool {
	return m == PaymentMethodPrepaid
}

func (m PaymentMethod) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *PaymentMethod) UnmarshalText(text []byte) error {
	parsed, err := PaymentMethodFromString(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
