// Package revenue models the process-wide revenue total.
package revenue

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/effect"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// Ledger is the revenue total and the time it last changed. It only grows
// by applying Revenue effects.
type Ledger struct {
	total     kernel.Money
	updatedAt time.Time
}

func NewLedger(total kernel.Money, updatedAt time.Time) Ledger {
	return Ledger{total: total, updatedAt: updatedAt.UTC()}
}

func (l Ledger) Total() kernel.Money  { return l.total }
func (l Ledger) UpdatedAt() time.Time { return l.updatedAt }

// Apply returns the ledger with every Revenue delta added. Notify effects
// are ignored. A negative delta rejects the whole batch.
func (l Ledger) Apply(effects []effect.Effect, at time.Time) (Ledger, error) {
	next := l
	changed := false
	for _, e := range effects {
		r, ok := e.(effect.Revenue)
		if !ok {
			continue
		}
		if r.Delta.Decimal().IsNegative() {
			return l, errs.NewValueIsInvalidErrorWithCause("revenue delta", errors.New("must not be negative"))
		}
		next.total = next.total.Add(r.Delta)
		changed = true
	}
	if changed {
		next.updatedAt = at.UTC()
	}
	return next, nil
}
