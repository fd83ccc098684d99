package parcel

import (
	"fmt"
	"sort"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// MergeResult is the outcome of reconciling two copies of one parcel.
type MergeResult struct {
	Parcel *Parcel
	// Changed is false when incoming added nothing to stored.
	Changed bool
	// NewlyPaid is true when stored was unpaid and the merge made it paid.
	NewlyPaid bool
}

// Merge reconciles the stored record with a replicated copy of the same
// parcel written by another client. The result does not depend on which copy
// is stored, so replicas receiving the same copies in any order converge.
//
// Rules:
//   - the history is the union of both histories by entry id, in historyLess order
//   - status is the status of the newest history entry
//   - the other record fields come from the copy updated last; see laterWriter
//   - a paid copy wins the payment record and a parcel never becomes unpaid;
//     of two paid records the earlier one is kept
//   - identity fields (tracking number, createdAt) always come from stored
//
// The result carries stored's OriginalVersion, ready for an optimistic Update.
func Merge(stored, incoming *Parcel) (MergeResult, error) {
	if err := stored.Validate(); err != nil {
		return MergeResult{}, err
	}
	if err := incoming.Validate(); err != nil {
		return MergeResult{}, err
	}
	if !stored.id.IsEqual(incoming.id) {
		return MergeResult{}, errs.NewValueIsInvalidErrorWithCause(
			"parcel id",
			fmt.Errorf("cannot merge %s into %s", incoming.id, stored.id),
		)
	}

	history := unionHistory(stored.history, incoming.history)

	merged := laterWriter(stored, incoming).Clone()
	merged.trackingNumber = stored.trackingNumber
	merged.createdAt = stored.createdAt
	merged.history = history
	merged.status = history[len(history)-1].Status()
	merged.totalAmount = merged.amount.Add(merged.floatAmount)
	merged.payment = mergePayment(stored.payment, incoming.payment)

	if stored.updatedAt.After(merged.updatedAt) {
		merged.updatedAt = stored.updatedAt
	}
	if incoming.updatedAt.After(merged.updatedAt) {
		merged.updatedAt = incoming.updatedAt
	}

	changed := len(history) != len(stored.history) ||
		merged.status != stored.status ||
		!sameRecord(merged, stored) ||
		!samePayment(merged.payment, stored.payment) ||
		merged.updatedAt.After(stored.updatedAt)

	merged.originalVersion = stored.originalVersion
	merged.version = stored.version
	if changed {
		merged.version = stored.originalVersion + 1
	}

	return MergeResult{
		Parcel:    merged,
		Changed:   changed,
		NewlyPaid: !stored.payment.IsPaid() && merged.payment.IsPaid(),
	}, nil
}

// laterWriter picks the copy whose record fields survive a merge: the later
// updatedAt, then the copy whose own newest history entry sorts later, then
// the greater record key. Versions are per-replica counters and never decide.
func laterWriter(a, b *Parcel) *Parcel {
	switch {
	case a.updatedAt.After(b.updatedAt):
		return a
	case b.updatedAt.After(a.updatedAt):
		return b
	}

	lastA, lastB := a.LastStatusUpdate(), b.LastStatusUpdate()
	switch {
	case historyLess(lastB, lastA):
		return a
	case historyLess(lastA, lastB):
		return b
	}

	if strings.Compare(recordKey(b), recordKey(a)) > 0 {
		return b
	}
	return a
}

func mergePayment(a, b Payment) Payment {
	switch {
	case !b.IsPaid():
		if a.IsPaid() {
			return a
		}
		return Unpaid()
	case !a.IsPaid():
		return b
	case b.paidAt.Before(a.paidAt):
		return b
	case a.paidAt.Equal(b.paidAt) && b.paidBy < a.paidBy:
		return b
	default:
		return a
	}
}

func samePayment(a, b Payment) bool {
	return a.isPaid == b.isPaid && a.paidAt.Equal(b.paidAt) && a.paidBy == b.paidBy
}

// sameRecord compares the fields Merge takes from the later writer.
func sameRecord(a, b *Parcel) bool {
	return a.sender == b.sender &&
		a.receiver == b.receiver &&
		a.senderBranchID == b.senderBranchID &&
		a.destinationBranchID == b.destinationBranchID &&
		a.description == b.description &&
		a.weight == b.weight &&
		a.paymentMethod == b.paymentMethod &&
		a.amount.IsEqual(b.amount) &&
		a.floatAmount.IsEqual(b.floatAmount)
}

func recordKey(p *Parcel) string {
	return fmt.Sprintf("%s|%s|%s|%g|%v|%v|%s|%s|%s",
		p.amount, p.floatAmount, p.paymentMethod, p.weight,
		p.sender, p.receiver, p.senderBranchID, p.destinationBranchID, p.description)
}

func unionHistory(a, b []StatusUpdate) []StatusUpdate {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]StatusUpdate, 0, len(a)+len(b))
	for _, list := range [][]StatusUpdate{a, b} {
		for _, u := range list {
			key := u.id.String()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return historyLess(out[i], out[j])
	})
	return out
}
