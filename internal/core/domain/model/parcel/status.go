package parcel

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
//
// State transitions:
//
//	Pending ──> InTransit ──> Delivered ──> Received
//	   │            │
//	   └────────────┴──> Cancelled
//
// Received and Cancelled are terminal.
type Status int

const (
	// StatusUnknown catches uninitialised values.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a newly registered parcel.
	StatusPending

	// StatusInTransit means the parcel left the sender branch.
	StatusInTransit

	// StatusDelivered means the parcel arrived at the destination branch.
	StatusDelivered

	// StatusReceived means the receiver collected the parcel. Terminal.
	StatusReceived

	// StatusCancelled means the shipment was abandoned before delivery. Terminal.
	StatusCancelled
)

var statusNames = map[Status]string{
	StatusUnknown:   "unknown",
	StatusPending:   "pending",
	StatusInTransit: "in_transit",
	StatusDelivered: "delivered",
	StatusReceived:  "received",
	StatusCancelled: "cancelled",
}

// successors lists the permitted next states for every non-terminal status.
var successors = map[Status][]Status{
	StatusPending:   {StatusInTransit, StatusCancelled},
	StatusInTransit: {StatusDelivered, StatusCancelled},
	StatusDelivered: {StatusReceived},
}

// AllStatuses returns the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusInTransit, StatusDelivered, StatusReceived, StatusCancelled}
}

// StatusFromString parses the wire name of a status ("in_transit", ...).
func StatusFromString(s string) (Status, error) {
	for st, name := range statusNames {
		if st != StatusUnknown && name == s {
			return st, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate rejects StatusUnknown and out-of-range values.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status; invalid values render as "unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[StatusUnknown]
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusReceived || s == StatusCancelled
}

// Successors returns the statuses reachable in one step.
func (s Status) Successors() []Status {
	next := successors[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether target is a permitted successor of s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range successors[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates a single step of the lifecycle graph.
//
// Returns:
//   - (target, nil) when target is a permitted successor
//   - (StatusUnknown, *InvalidTransitionError) otherwise, including
//     skipping steps (pending -> received) and leaving terminal states
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}
	if !s.CanTransitionTo(target) {
		return StatusUnknown, &InvalidTransitionError{From: s, To: target}
	}
	return target, nil
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := StatusFromString(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
