package kernel

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// DefaultTrackingPrefix is used when no prefix is configured.
const DefaultTrackingPrefix = "PCL"

const trackingDigits = 10

var (
	// ErrTrackingNumberIsNotConstructed is returned for zero-value tracking numbers.
	ErrTrackingNumberIsNotConstructed = errs.NewValueIsRequiredError(
		"tracking number must be created via NewTrackingNumber or TrackingNumberFromString")

	trackingPattern = regexp.MustCompile(`^[A-Z]{2,6}[0-9]{4,12}$`)
	trackingRange   = new(big.Int).Exp(big.NewInt(10), big.NewInt(trackingDigits), nil)
)

// TrackingNumber is the human-facing parcel identifier, e.g. "PCL0048213377".
// It is assigned once at creation and never changes.
type TrackingNumber struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewTrackingNumber generates a random tracking number with the given prefix.
// An empty prefix falls back to DefaultTrackingPrefix.
func NewTrackingNumber(prefix string) (TrackingNumber, error) {
	if prefix == "" {
		prefix = DefaultTrackingPrefix
	}
	n, err := rand.Int(rand.Reader, trackingRange)
	if err != nil {
		return TrackingNumber{}, fmt.Errorf("generate tracking number: %w", err)
	}
	return TrackingNumberFromString(fmt.Sprintf("%s%0*d", strings.ToUpper(prefix), trackingDigits, n))
}

// TrackingNumberFromString validates an existing tracking number.
// Lower-case input is normalised to upper case.
func TrackingNumberFromString(s string) (TrackingNumber, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return TrackingNumber{}, errs.NewValueIsRequiredError("trackingNumber")
	}
	if !trackingPattern.MatchString(v) {
		return TrackingNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingNumber",
			fmt.Errorf("%q does not match %s", v, trackingPattern.String()),
		)
	}
	return TrackingNumber{value: v, guard: guard.NewConstructorGuard()}, nil
}

func (t TrackingNumber) Validate() error {
	return t.guard.Validate(ErrTrackingNumberIsNotConstructed)
}

func (t TrackingNumber) String() string {
	return t.value
}

func (t TrackingNumber) IsEqual(other TrackingNumber) bool {
	return t.value == other.value
}
