package parcel

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// Parcel is the aggregate root of a shipment between two branches.
//
// Parcel follows these invariants:
//   - id and trackingNumber are assigned at creation and never change
//   - status only moves along the edges of the Status graph
//   - totalAmount == amount + floatAmount after every mutation
//   - the payment record is written at most once
//   - history is append-only, ordered by historyLess, and its last entry
//     carries the current status
//
// version is the optimistic concurrency token of the record store. Any number
// of mutations between a load and a save bump it by exactly one.
type Parcel struct {
	id             kernel.UUID
	trackingNumber kernel.TrackingNumber

	sender              Party
	receiver            Party
	senderBranchID      string
	destinationBranchID string
	description         string
	weight              float64

	paymentMethod PaymentMethod
	payment       Payment
	amount        kernel.Money
	floatAmount   kernel.Money
	totalAmount   kernel.Money

	status  Status
	history []StatusUpdate

	createdAt time.Time
	updatedAt time.Time

	originalVersion int64
	version         int64

	isConstructed bool
}

// NewParcelParams carries everything needed to register a parcel.
type NewParcelParams struct {
	ID                  kernel.UUID
	TrackingNumber      kernel.TrackingNumber
	Sender              Party
	Receiver            Party
	SenderBranchID      string
	DestinationBranchID string
	Description         string
	Weight              float64
	PaymentMethod       PaymentMethod
	Amount              kernel.Money
	FloatAmount         kernel.Money
	Actor               Actor
	CreatedAt           time.Time
}

// NewParcel registers a pending, unpaid parcel with a single history entry.
// Capturing a prepaid charge is left to the payment subledger.
//
// Example:
//
//	p, err := parcel.NewParcel(parcel.NewParcelParams{
//	    ID:                  kernel.NewUUID(),
//	    TrackingNumber:      tn,
//	    Sender:              sender,
//	    Receiver:            receiver,
//	    SenderBranchID:      "harare-cbd",
//	    DestinationBranchID: "bulawayo",
//	    PaymentMethod:       parcel.PaymentMethodCashOnDelivery,
//	    Amount:              kernel.MustMoney("30"),
//	    Actor:               parcel.Actor{ID: "op-1", BranchID: "harare-cbd"},
//	    CreatedAt:           time.Now(),
//	})
func NewParcel(params NewParcelParams) (*Parcel, error) {
	p := &Parcel{
		status:        StatusPending,
		payment:       Unpaid(),
		createdAt:     params.CreatedAt.UTC(),
		updatedAt:     params.CreatedAt.UTC(),
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(params.ID),
		p.setTrackingNumber(params.TrackingNumber),
		p.setParties(params.Sender, params.Receiver),
		p.setBranches(params.SenderBranchID, params.DestinationBranchID),
		p.setDescription(params.Description, params.Weight),
		p.setPaymentMethod(params.PaymentMethod),
		p.setCharges(params.Amount, params.FloatAmount),
		params.Actor.Validate(),
		requireTime("createdAt", params.CreatedAt),
	); err != nil {
		return nil, err
	}

	first, err := NewStatusUpdate(StatusPending, params.Actor, p.createdAt, "parcel registered")
	if err != nil {
		return nil, err
	}
	p.history = []StatusUpdate{first}

	return p, nil
}

// RestoreParams rebuilds a stored or replicated parcel.
type RestoreParams struct {
	NewParcelParams
	Status    Status
	Payment   Payment
	History   []StatusUpdate
	UpdatedAt time.Time
	Version   int64
}

// RestoreParcel rebuilds a parcel without replaying its lifecycle. The
// history is sorted by timestamp and must end in the given status.
func RestoreParcel(params RestoreParams) (*Parcel, error) {
	p := &Parcel{
		payment:         params.Payment,
		createdAt:       params.CreatedAt.UTC(),
		updatedAt:       params.UpdatedAt.UTC(),
		originalVersion: params.Version,
		version:         params.Version,
		isConstructed:   true,
	}

	if err := errors.Join(
		p.setID(params.ID),
		p.setTrackingNumber(params.TrackingNumber),
		p.setParties(params.Sender, params.Receiver),
		p.setBranches(params.SenderBranchID, params.DestinationBranchID),
		p.setDescription(params.Description, params.Weight),
		p.setPaymentMethod(params.PaymentMethod),
		p.setCharges(params.Amount, params.FloatAmount),
		p.setHistory(params.Status, params.History),
		requireTime("createdAt", params.CreatedAt),
	); err != nil {
		return nil, err
	}
	if params.Version < 1 {
		return nil, errs.NewValueIsOutOfRangeError("version", params.Version, 1, "unbounded")
	}
	if p.updatedAt.Before(p.createdAt) {
		p.updatedAt = p.createdAt
	}

	return p, nil
}

// Validate ensures the Parcel was built by NewParcel or RestoreParcel.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Parcel) ID() kernel.UUID                       { return p.id }
func (p *Parcel) TrackingNumber() kernel.TrackingNumber { return p.trackingNumber }
func (p *Parcel) Sender() Party                         { return p.sender }
func (p *Parcel) Receiver() Party                       { return p.receiver }
func (p *Parcel) SenderBranchID() string                { return p.senderBranchID }
func (p *Parcel) DestinationBranchID() string           { return p.destinationBranchID }
func (p *Parcel) Description() string                   { return p.description }
func (p *Parcel) Weight() float64                       { return p.weight }
func (p *Parcel) PaymentMethod() PaymentMethod          { return p.paymentMethod }
func (p *Parcel) Payment() Payment                      { return p.payment }
func (p *Parcel) IsPaid() bool                          { return p.payment.IsPaid() }
func (p *Parcel) Amount() kernel.Money                  { return p.amount }
func (p *Parcel) FloatAmount() kernel.Money             { return p.floatAmount }
func (p *Parcel) TotalAmount() kernel.Money             { return p.totalAmount }
func (p *Parcel) Status() Status                        { return p.status }
func (p *Parcel) CreatedAt() time.Time                  { return p.createdAt }
func (p *Parcel) UpdatedAt() time.Time                  { return p.updatedAt }

// Version is the token the record store will hold after the next save.
func (p *Parcel) Version() int64 { return p.version }

// OriginalVersion is the token read from the record store, 0 for a new parcel.
func (p *Parcel) OriginalVersion() int64 { return p.originalVersion }

// IsDirty reports whether the parcel changed since it was loaded.
func (p *Parcel) IsDirty() bool { return p.version != p.originalVersion }

// StatusUpdates returns a copy of the history, oldest first.
func (p *Parcel) StatusUpdates() []StatusUpdate {
	out := make([]StatusUpdate, len(p.history))
	copy(out, p.history)
	return out
}

// LastStatusUpdate returns the newest history entry.
func (p *Parcel) LastStatusUpdate() StatusUpdate {
	return p.history[len(p.history)-1]
}

// Clone returns an independent copy. Operations that must leave their input
// untouched mutate a clone.
func (p *Parcel) Clone() *Parcel {
	c := *p
	c.history = p.StatusUpdates()
	return &c
}

// CheckTransition validates target against the lifecycle graph and the
// cash-on-delivery receipt rule without changing the parcel.
func (p *Parcel) CheckTransition(target Status) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := p.status.TransitionTo(target); err != nil {
		return err
	}
	if target == StatusReceived && p.paymentMethod == PaymentMethodCashOnDelivery && !p.payment.IsPaid() {
		return &PaymentRequiredError{ParcelID: p.id, Outstanding: p.totalAmount}
	}
	return nil
}

// Transition moves the parcel to target and appends a history entry.
// A timestamp earlier than the last entry is clamped so history stays ordered.
func (p *Parcel) Transition(target Status, actor Actor, note string, at time.Time) (StatusUpdate, error) {
	if err := p.CheckTransition(target); err != nil {
		return StatusUpdate{}, err
	}

	at = p.notBeforeLast(at)
	update, err := NewStatusUpdate(target, actor, at, strings.TrimSpace(note))
	if err != nil {
		return StatusUpdate{}, err
	}

	p.status = target
	p.history = append(p.history, update)
	p.touch(at)
	return update, nil
}

// MarkPaid writes the payment record. A paid parcel stays paid: a second
// call returns ErrAlreadyPaid and leaves the record untouched.
func (p *Parcel) MarkPaid(actor Actor, at time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.payment.IsPaid() {
		return ErrAlreadyPaid
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	p.payment = Paid(at, actor.ID)
	p.touch(at)
	return nil
}

// AddFloatAmount raises the additional charge by delta and recomputes the total.
func (p *Parcel) AddFloatAmount(delta kernel.Money, at time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.status.IsTerminal() {
		return fmt.Errorf("%w: cannot add float amount while %s", ErrParcelIsFinalized, p.status)
	}
	if delta.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("floatAmount", errors.New("must be greater than zero"))
	}

	p.floatAmount = p.floatAmount.Add(delta)
	p.totalAmount = p.amount.Add(p.floatAmount)
	p.touch(at)
	return nil
}

func (p *Parcel) touch(at time.Time) {
	if at.After(p.updatedAt) {
		p.updatedAt = at.UTC()
	}
	p.version = p.originalVersion + 1
}

func (p *Parcel) notBeforeLast(at time.Time) time.Time {
	last := p.history[len(p.history)-1].Timestamp()
	if at.Before(last) {
		return last
	}
	return at
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingNumber(tn kernel.TrackingNumber) error {
	if err := tn.Validate(); err != nil {
		return err
	}
	p.trackingNumber = tn
	return nil
}

func (p *Parcel) setParties(sender, receiver Party) error {
	if err := errors.Join(
		wrapParty("sender", sender.Validate()),
		wrapParty("receiver", receiver.Validate()),
	); err != nil {
		return err
	}
	p.sender = sender
	p.receiver = receiver
	return nil
}

func (p *Parcel) setBranches(senderBranchID, destinationBranchID string) error {
	senderBranchID = strings.TrimSpace(senderBranchID)
	destinationBranchID = strings.TrimSpace(destinationBranchID)

	var err error
	if senderBranchID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("senderBranchId"))
	}
	if destinationBranchID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("destinationBranchId"))
	}
	if err != nil {
		return err
	}

	p.senderBranchID = senderBranchID
	p.destinationBranchID = destinationBranchID
	return nil
}

func (p *Parcel) setDescription(description string, weight float64) error {
	if weight < 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid", fmt.Errorf("%v is negative", weight))
	}
	p.description = strings.TrimSpace(description)
	p.weight = weight
	return nil
}

func (p *Parcel) setPaymentMethod(m PaymentMethod) error {
	if err := m.Validate(); err != nil {
		return err
	}
	p.paymentMethod = m
	return nil
}

func (p *Parcel) setCharges(amount, floatAmount kernel.Money) error {
	p.amount = amount
	p.floatAmount = floatAmount
	p.totalAmount = amount.Add(floatAmount)
	return nil
}

func (p *Parcel) setHistory(status Status, history []StatusUpdate) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if len(history) == 0 {
		return errs.NewValueIsRequiredError("statusUpdates")
	}

	sorted := make([]StatusUpdate, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return historyLess(sorted[i], sorted[j])
	})

	if last := sorted[len(sorted)-1].Status(); last != status {
		return errs.NewValueIsInvalidErrorWithCause(
			"statusUpdates",
			fmt.Errorf("last entry is %s but parcel is %s", last, status),
		)
	}

	p.status = status
	p.history = sorted
	return nil
}

func wrapParty(role string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", role, err)
}

func requireTime(name string, t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
