// Package broadcast defines the envelope that carries committed parcel
// changes between clients, and the payloads it wraps.
//
// Wire shape:
//
//	{"updateId": "...", "type": "STATUS_UPDATED", "data": {...}, "timestamp": 1767225600000}
//
// timestamp is milliseconds since the Unix epoch. updateId is the
// deduplication key subscribers use for at-least-once delivery.
package broadcast

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// Type tells subscribers how to decode Data.
type Type string

const (
	TypeParcelCreated   Type = "PARCEL_CREATED"
	TypeParcelUpdated   Type = "PARCEL_UPDATED"
	TypeStatusUpdated   Type = "STATUS_UPDATED"
	TypePaymentReceived Type = "PAYMENT_RECEIVED"
	TypeSync            Type = "SYNC"
)

func (t Type) Validate() error {
	switch t {
	case TypeParcelCreated, TypeParcelUpdated, TypeStatusUpdated, TypePaymentReceived, TypeSync:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not an envelope type", string(t)))
	}
}

// CarriesParcel reports whether Data decodes as a Change.
func (t Type) CarriesParcel() bool {
	return t != TypeSync
}

// Envelope is one immutable unit of propagation.
type Envelope struct {
	UpdateID  string          `json:"updateId"`
	Type      Type            `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// NewEnvelope marshals data and stamps it with a fresh updateId.
func NewEnvelope(t Type, data any, at time.Time) (Envelope, error) {
	return NewEnvelopeWithID(kernel.NewUUID().String(), t, data, at)
}

// NewEnvelopeWithID is NewEnvelope with a caller-chosen updateId, used when
// the id must be known before publishing.
func NewEnvelopeWithID(updateID string, t Type, data any, at time.Time) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", t, err)
	}
	env := Envelope{
		UpdateID:  updateID,
		Type:      t,
		Data:      raw,
		Timestamp: kernel.UnixMilli(at),
	}
	if err := env.Validate(); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// Validate checks the fields every subscriber relies on.
func (e Envelope) Validate() error {
	if strings.TrimSpace(e.UpdateID) == "" {
		return errs.NewValueIsRequiredError("updateId")
	}
	if err := e.Type.Validate(); err != nil {
		return err
	}
	if e.Timestamp <= 0 {
		return errs.NewValueIsOutOfRangeError("timestamp", e.Timestamp, 1, "unbounded")
	}
	if len(e.Data) == 0 {
		return errs.NewValueIsRequiredError("data")
	}
	return nil
}

// Time returns Timestamp as a UTC time.
func (e Envelope) Time() time.Time {
	return time.UnixMilli(e.Timestamp).UTC()
}

// Before orders envelopes by timestamp, then by updateId so that envelopes
// stamped in the same millisecond still have a stable order.
func (e Envelope) Before(other Envelope) bool {
	if e.Timestamp != other.Timestamp {
		return e.Timestamp < other.Timestamp
	}
	return e.UpdateID < other.UpdateID
}

// Sort orders envelopes in place, oldest first.
func Sort(envs []Envelope) {
	sort.SliceStable(envs, func(i, j int) bool {
		return envs[i].Before(envs[j])
	})
}

// After returns the envelopes strictly newer than hwm, oldest first.
// The input is not modified.
func After(envs []Envelope, hwm int64) []Envelope {
	out := make([]Envelope, 0, len(envs))
	for _, e := range envs {
		if e.Timestamp > hwm {
			out = append(out, e)
		}
	}
	Sort(out)
	return out
}

// DecodeChange decodes Data of a parcel-carrying envelope.
func (e Envelope) DecodeChange() (Change, error) {
	if !e.Type.CarriesParcel() {
		return Change{}, errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%s does not carry a parcel", e.Type))
	}
	var c Change
	if err := json.Unmarshal(e.Data, &c); err != nil {
		return Change{}, errs.NewValueIsInvalidErrorWithCause("data", err)
	}
	if c.Parcel.ID == "" {
		return Change{}, errs.NewValueIsRequiredError("data.parcel.id")
	}
	return c, nil
}

// DecodeFullSync decodes Data of a SYNC envelope.
func (e Envelope) DecodeFullSync() (FullSync, error) {
	if e.Type != TypeSync {
		return FullSync{}, errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%s is not %s", e.Type, TypeSync))
	}
	var s FullSync
	if err := json.Unmarshal(e.Data, &s); err != nil {
		return FullSync{}, errs.NewValueIsInvalidErrorWithCause("data", err)
	}
	return s, nil
}

const (
	DefaultLogCapacity = 50
	MaxLogCapacity     = 1000
)

// ClampCapacity bounds a configured broadcast log capacity to 1..MaxLogCapacity;
// values below 1 select DefaultLogCapacity.
func ClampCapacity(n int) int {
	switch {
	case n < 1:
		return DefaultLogCapacity
	case n > MaxLogCapacity:
		return MaxLogCapacity
	default:
		return n
	}
}
