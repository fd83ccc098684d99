// Package effect holds the side-effect values produced by parcel operations.
// Effects live only between the state machine and the components that apply
// them: the revenue ledger and the notification dispatcher.
package effect

import "parceltrack/internal/core/domain/model/kernel"

// Effect is either a Notify or a Revenue value.
type Effect interface {
	isEffect()
}

// Notify asks for one notification in Recipient's inbox.
type Notify struct {
	Recipient string
	Title     string
	Message   string
}

// Revenue credits Delta to the process-wide revenue total.
type Revenue struct {
	Delta kernel.Money
}

func (Notify) isEffect()  {}
func (Revenue) isEffect() {}

// Notifications filters the Notify effects, preserving order.
func Notifications(effects []Effect) []Notify {
	var out []Notify
	for _, e := range effects {
		if n, ok := e.(Notify); ok {
			out = append(out, n)
		}
	}
	return out
}

// RevenueTotal sums every Revenue delta.
func RevenueTotal(effects []Effect) kernel.Money {
	total := kernel.Zero()
	for _, e := range effects {
		if r, ok := e.(Revenue); ok {
			total = total.Add(r.Delta)
		}
	}
	return total
}

// CountRevenue returns how many Revenue effects the list holds.
func CountRevenue(effects []Effect) int {
	n := 0
	for _, e := range effects {
		if _, ok := e.(Revenue); ok {
			n++
		}
	}
	return n
}
