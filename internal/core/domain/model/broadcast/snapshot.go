package broadcast

import (
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

// ParcelSnapshot is the wire form of a parcel record.
type ParcelSnapshot struct {
	ID                  string                 `json:"id"`
	TrackingNumber      string                 `json:"trackingNumber"`
	Sender              PartySnapshot          `json:"sender"`
	Receiver            PartySnapshot          `json:"receiver"`
	SenderBranchID      string                 `json:"senderBranchId"`
	DestinationBranchID string                 `json:"destinationBranchId"`
	Description         string                 `json:"description,omitempty"`
	Weight              float64                `json:"weight,omitempty"`
	PaymentMethod       string                 `json:"paymentMethod"`
	IsPaid              bool                   `json:"isPaid"`
	PaidAt              *time.Time             `json:"paidAt,omitempty"`
	PaidBy              string                 `json:"paidBy,omitempty"`
	Amount              kernel.Money           `json:"amount"`
	FloatAmount         kernel.Money           `json:"floatAmount"`
	TotalAmount         kernel.Money           `json:"totalAmount"`
	Status              string                 `json:"status"`
	StatusUpdates       []StatusUpdateSnapshot `json:"statusUpdates"`
	CreatedAt           time.Time              `json:"createdAt"`
	UpdatedAt           time.Time              `json:"updatedAt"`
	Version             int64                  `json:"version"`
}

type PartySnapshot struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type StatusUpdateSnapshot struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actorId"`
	BranchID  string    `json:"branchId,omitempty"`
	Note      string    `json:"note,omitempty"`
}

// FromParcel captures the current state of p.
func FromParcel(p *parcel.Parcel) ParcelSnapshot {
	s := ParcelSnapshot{
		ID:                  p.ID().String(),
		TrackingNumber:      p.TrackingNumber().String(),
		Sender:              partySnapshot(p.Sender()),
		Receiver:            partySnapshot(p.Receiver()),
		SenderBranchID:      p.SenderBranchID(),
		DestinationBranchID: p.DestinationBranchID(),
		Description:         p.Description(),
		Weight:              p.Weight(),
		PaymentMethod:       p.PaymentMethod().String(),
		IsPaid:              p.IsPaid(),
		PaidBy:              p.Payment().PaidBy(),
		Amount:              p.Amount(),
		FloatAmount:         p.FloatAmount(),
		TotalAmount:         p.TotalAmount(),
		Status:              p.Status().String(),
		CreatedAt:           p.CreatedAt(),
		UpdatedAt:           p.UpdatedAt(),
		Version:             p.Version(),
	}
	if p.IsPaid() {
		paidAt := p.Payment().PaidAt()
		s.PaidAt = &paidAt
	}
	for _, u := range p.StatusUpdates() {
		s.StatusUpdates = append(s.StatusUpdates, StatusUpdateSnapshot{
			ID:        u.ID().String(),
			Status:    u.Status().String(),
			Timestamp: u.Timestamp(),
			ActorID:   u.ActorID(),
			BranchID:  u.BranchID(),
			Note:      u.Note(),
		})
	}
	return s
}

// ToParcel rebuilds the aggregate, enforcing every parcel invariant.
// totalAmount is recomputed rather than trusted.
func (s ParcelSnapshot) ToParcel() (*parcel.Parcel, error) {
	id, idErr := kernel.UUIDFromString(s.ID)
	tn, tnErr := kernel.TrackingNumberFromString(s.TrackingNumber)
	method, methodErr := parcel.PaymentMethodFromString(s.PaymentMethod)
	status, statusErr := parcel.StatusFromString(s.Status)
	history, historyErr := s.history()
	if err := errors.Join(idErr, tnErr, methodErr, statusErr, historyErr); err != nil {
		return nil, err
	}

	payment := parcel.Unpaid()
	if s.IsPaid {
		paidAt := s.UpdatedAt
		if s.PaidAt != nil {
			paidAt = *s.PaidAt
		}
		payment = parcel.Paid(paidAt, s.PaidBy)
	}

	return parcel.RestoreParcel(parcel.RestoreParams{
		NewParcelParams: parcel.NewParcelParams{
			ID:                  id,
			TrackingNumber:      tn,
			Sender:              s.Sender.toParty(),
			Receiver:            s.Receiver.toParty(),
			SenderBranchID:      s.SenderBranchID,
			DestinationBranchID: s.DestinationBranchID,
			Description:         s.Description,
			Weight:              s.Weight,
			PaymentMethod:       method,
			Amount:              s.Amount,
			FloatAmount:         s.FloatAmount,
			CreatedAt:           s.CreatedAt,
		},
		Status:    status,
		Payment:   payment,
		History:   history,
		UpdatedAt: s.UpdatedAt,
		Version:   s.Version,
	})
}

func (s ParcelSnapshot) history() ([]parcel.StatusUpdate, error) {
	out := make([]parcel.StatusUpdate, 0, len(s.StatusUpdates))
	for i, u := range s.StatusUpdates {
		id, err := kernel.UUIDFromString(u.ID)
		if err != nil {
			return nil, fmt.Errorf("statusUpdates[%d]: %w", i, err)
		}
		st, err := parcel.StatusFromString(u.Status)
		if err != nil {
			return nil, fmt.Errorf("statusUpdates[%d]: %w", i, err)
		}
		update, err := parcel.RestoreStatusUpdate(id, st, u.Timestamp, u.ActorID, u.BranchID, u.Note)
		if err != nil {
			return nil, fmt.Errorf("statusUpdates[%d]: %w", i, err)
		}
		out = append(out, update)
	}
	return out, nil
}

func partySnapshot(p parcel.Party) PartySnapshot {
	return PartySnapshot{Name: p.Name, Email: p.Email, Phone: p.Phone}
}

func (p PartySnapshot) toParty() parcel.Party {
	return parcel.Party{Name: p.Name, Email: p.Email, Phone: p.Phone}
}
