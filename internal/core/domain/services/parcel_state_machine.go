package services

import (
	"fmt"

	"parceltrack/internal/core/domain/model/effect"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

// CreateParcelInput describes a parcel being registered at the sender branch.
type CreateParcelInput struct {
	TrackingNumber      kernel.TrackingNumber
	Sender              parcel.Party
	Receiver            parcel.Party
	SenderBranchID      string
	DestinationBranchID string
	Description         string
	Weight              float64
	PaymentMethod       parcel.PaymentMethod
	Amount              kernel.Money
	FloatAmount         kernel.Money
	Actor               parcel.Actor
}

// ParcelStateMachine is the one place parcel status, payment and charges change.
//
// Every operation works on a clone: the parcel passed in is never modified,
// and on error nothing is returned but the error. Effects are returned in the
// order they should be applied.
//
// Example usage:
//
//	sm := services.NewParcelStateMachine(kernel.SystemClock{}, "admin")
//	p, effects, err := sm.RequestTransition(current, parcel.StatusDelivered, actor, "")
//	if errors.Is(err, parcel.ErrInvalidTransition) {
//	    // the caller picked an action that is not available
//	}
type ParcelStateMachine struct {
	subledger      PaymentSubledger
	clock          kernel.Clock
	adminRecipient string
}

// NewParcelStateMachine builds a state machine. An empty adminRecipient
// disables the administrator copies of notifications.
func NewParcelStateMachine(clock kernel.Clock, adminRecipient string) *ParcelStateMachine {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return &ParcelStateMachine{
		subledger:      NewPaymentSubledger(),
		clock:          clock,
		adminRecipient: adminRecipient,
	}
}

// Create registers a pending parcel. A prepaid parcel is captured here, which
// is the only revenue it will ever produce.
func (m *ParcelStateMachine) Create(in CreateParcelInput) (*parcel.Parcel, []effect.Effect, error) {
	now := m.clock.Now()

	p, err := parcel.NewParcel(parcel.NewParcelParams{
		ID:                  kernel.NewUUID(),
		TrackingNumber:      in.TrackingNumber,
		Sender:              in.Sender,
		Receiver:            in.Receiver,
		SenderBranchID:      in.SenderBranchID,
		DestinationBranchID: in.DestinationBranchID,
		Description:         in.Description,
		Weight:              in.Weight,
		PaymentMethod:       in.PaymentMethod,
		Amount:              in.Amount,
		FloatAmount:         in.FloatAmount,
		Actor:               in.Actor,
		CreatedAt:           now,
	})
	if err != nil {
		return nil, nil, err
	}

	var effects notices
	if in.PaymentMethod.PaidAtCreation() {
		credit, err := m.subledger.Capture(p, in.Actor, now)
		if err != nil {
			return nil, nil, err
		}
		effects.add(credit)
	}

	tn := p.TrackingNumber().String()
	effects.notify(p.Receiver().Recipient(), "Parcel Registered",
		fmt.Sprintf("Parcel %s from %s is registered for delivery to branch %s", tn, p.Sender().Name, p.DestinationBranchID()))
	effects.notify(m.adminRecipient, "New Parcel",
		fmt.Sprintf("Parcel %s registered at branch %s (%s, %s)", tn, p.SenderBranchID(), p.PaymentMethod(), p.TotalAmount()))

	return p, effects.list(), nil
}

// RequestTransition moves a copy of p to target.
//
// Returns:
//   - *parcel.InvalidTransitionError if target is not a successor of the current status
//   - *parcel.PaymentRequiredError when receiving an unpaid cash-on-delivery parcel
//
// Transitions never produce revenue; see PaymentSubledger.
func (m *ParcelStateMachine) RequestTransition(
	p *parcel.Parcel,
	target parcel.Status,
	actor parcel.Actor,
	note string,
) (*parcel.Parcel, []effect.Effect, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	next := p.Clone()
	if _, err := next.Transition(target, actor, note, m.clock.Now()); err != nil {
		return nil, nil, err
	}

	return next, m.transitionEffects(next, actor), nil
}

// ConfirmPayment marks a copy of p paid and credits its amount once.
//
// Returns:
//   - parcel.ErrAlreadyPaid if p is already paid; revenue is not credited again
//   - *parcel.PaymentNotAllowedError outside the payment method's window
func (m *ParcelStateMachine) ConfirmPayment(p *parcel.Parcel, actor parcel.Actor) (*parcel.Parcel, []effect.Effect, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	next := p.Clone()
	credit, err := m.subledger.Capture(next, actor, m.clock.Now())
	if err != nil {
		return nil, nil, err
	}

	var effects notices
	effects.add(credit)
	tn := next.TrackingNumber().String()
	effects.notify(m.adminRecipient, "Payment Received",
		fmt.Sprintf("Payment of %s received for parcel %s by %s", next.TotalAmount(), tn, actor.ID))
	effects.notify(next.Receiver().Recipient(), "Payment Confirmed",
		fmt.Sprintf("Payment of %s for parcel %s is confirmed", next.TotalAmount(), tn))

	return next, effects.list(), nil
}

// AddFloatAmount raises the float charge on a copy of p.
func (m *ParcelStateMachine) AddFloatAmount(
	p *parcel.Parcel,
	delta kernel.Money,
	actor parcel.Actor,
) (*parcel.Parcel, []effect.Effect, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	if err := actor.Validate(); err != nil {
		return nil, nil, err
	}

	next := p.Clone()
	if err := next.AddFloatAmount(delta, m.clock.Now()); err != nil {
		return nil, nil, err
	}

	var effects notices
	tn := next.TrackingNumber().String()
	if !next.IsPaid() {
		effects.notify(next.Receiver().Recipient(), "Charges Updated",
			fmt.Sprintf("An additional %s was added to parcel %s; total due is %s", delta, tn, next.TotalAmount()))
	}
	effects.notify(m.adminRecipient, "Charges Updated",
		fmt.Sprintf("Float amount of %s added to parcel %s by %s", delta, tn, actor.ID))

	return next, effects.list(), nil
}

func (m *ParcelStateMachine) transitionEffects(p *parcel.Parcel, actor parcel.Actor) []effect.Effect {
	var effects notices
	tn := p.TrackingNumber().String()
	sender := p.Sender().Recipient()
	receiver := p.Receiver().Recipient()

	switch p.Status() {
	case parcel.StatusInTransit:
		effects.notify(sender, "Parcel In Transit", fmt.Sprintf("Your parcel %s has left branch %s", tn, p.SenderBranchID()))
		effects.notify(receiver, "Parcel In Transit", fmt.Sprintf("Parcel %s is on its way to branch %s", tn, p.DestinationBranchID()))
	case parcel.StatusDelivered:
		if p.PaymentMethod() == parcel.PaymentMethodCashOnDelivery && !p.IsPaid() {
			effects.notify(receiver, "Payment Due",
				fmt.Sprintf("Parcel %s has arrived at branch %s; %s is due on collection", tn, p.DestinationBranchID(), p.TotalAmount()))
		} else {
			effects.notify(receiver, "Parcel Delivered",
				fmt.Sprintf("Parcel %s is ready for collection at branch %s", tn, p.DestinationBranchID()))
		}
		effects.notify(sender, "Parcel Delivered", fmt.Sprintf("Your parcel %s has been delivered to branch %s", tn, p.DestinationBranchID()))
	case parcel.StatusReceived:
		effects.notify(sender, "Parcel Received", fmt.Sprintf("Your parcel %s was collected by %s", tn, p.Receiver().Name))
	case parcel.StatusCancelled:
		effects.notify(sender, "Parcel Cancelled", fmt.Sprintf("Parcel %s has been cancelled", tn))
		effects.notify(receiver, "Parcel Cancelled", fmt.Sprintf("Parcel %s has been cancelled", tn))
	}

	effects.notify(m.adminRecipient, "Parcel Status Updated",
		fmt.Sprintf("Parcel %s status updated to %s by %s", tn, p.Status(), actor.ID))

	return effects.list()
}

// notices collects effects, dropping notifications without a recipient and
// repeats of the same recipient and title.
type notices struct {
	effects []effect.Effect
	seen    map[string]struct{}
}

func (n *notices) add(e effect.Effect) {
	n.effects = append(n.effects, e)
}

func (n *notices) notify(recipient, title, message string) {
	if recipient == "" {
		return
	}
	key := recipient + "\x00" + title
	if _, ok := n.seen[key]; ok {
		return
	}
	if n.seen == nil {
		n.seen = make(map[string]struct{})
	}
	n.seen[key] = struct{}{}
	n.add(effect.Notify{Recipient: recipient, Title: title, Message: message})
}

func (n *notices) list() []effect.Effect {
	return n.effects
}
