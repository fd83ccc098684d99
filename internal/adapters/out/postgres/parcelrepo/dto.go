// Package parcelrepo persists parcel aggregates and their status history.
package parcelrepo

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParcelDTO is one row of the parcels table. Version backs optimistic
// concurrency; timestamps are owned by the domain, not by GORM.
type ParcelDTO struct {
	ID                  uuid.UUID         `gorm:"type:uuid;primaryKey"`
	TrackingNumber      string            `gorm:"type:varchar(32);not null;uniqueIndex"`
	Sender              PartyDTO          `gorm:"embedded;embeddedPrefix:sender_"`
	Receiver            PartyDTO          `gorm:"embedded;embeddedPrefix:receiver_"`
	SenderBranchID      string            `gorm:"type:varchar(64);not null;index"`
	DestinationBranchID string            `gorm:"type:varchar(64);not null;index"`
	Description         string            `gorm:"type:text"`
	Weight              float64           `gorm:"type:double precision"`
	PaymentMethod       string            `gorm:"type:varchar(32);not null"`
	IsPaid              bool              `gorm:"not null;default:false"`
	PaidAt              *time.Time        `gorm:"type:timestamptz"`
	PaidBy              string            `gorm:"type:varchar(64)"`
	Amount              decimal.Decimal   `gorm:"type:numeric(14,2);not null"`
	FloatAmount         decimal.Decimal   `gorm:"type:numeric(14,2);not null"`
	TotalAmount         decimal.Decimal   `gorm:"type:numeric(14,2);not null"`
	Status              string            `gorm:"type:varchar(32);not null;index"`
	CreatedAt           time.Time         `gorm:"type:timestamptz;not null;index;autoCreateTime:false"`
	UpdatedAt           time.Time         `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
	Version             int64             `gorm:"not null"`
	StatusUpdates       []StatusUpdateDTO `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

type PartyDTO struct {
	Name  string `gorm:"type:varchar(255);not null"`
	Email string `gorm:"type:varchar(255)"`
	Phone string `gorm:"type:varchar(64)"`
}

// StatusUpdateDTO is one append-only history row.
type StatusUpdateDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"type:varchar(32);not null"`
	Timestamp time.Time `gorm:"type:timestamptz;not null"`
	ActorID   string    `gorm:"type:varchar(64);not null"`
	BranchID  string    `gorm:"type:varchar(64)"`
	Note      string    `gorm:"type:text"`
}

func (StatusUpdateDTO) TableName() string {
	return "status_updates"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	parcelID := p.ID().Bytes()

	var paidAt *time.Time
	if p.IsPaid() {
		at := p.Payment().PaidAt()
		paidAt = &at
	}

	history := p.StatusUpdates()
	updates := make([]StatusUpdateDTO, 0, len(history))
	for _, u := range history {
		updates = append(updates, StatusUpdateDTO{
			ID:        u.ID().Bytes(),
			ParcelID:  parcelID,
			Status:    u.Status().String(),
			Timestamp: u.Timestamp(),
			ActorID:   u.ActorID(),
			BranchID:  u.BranchID(),
			Note:      u.Note(),
		})
	}

	return ParcelDTO{
		ID:                  parcelID,
		TrackingNumber:      p.TrackingNumber().String(),
		Sender:              partyDTO(p.Sender()),
		Receiver:            partyDTO(p.Receiver()),
		SenderBranchID:      p.SenderBranchID(),
		DestinationBranchID: p.DestinationBranchID(),
		Description:         p.Description(),
		Weight:              p.Weight(),
		PaymentMethod:       p.PaymentMethod().String(),
		IsPaid:              p.IsPaid(),
		PaidAt:              paidAt,
		PaidBy:              p.Payment().PaidBy(),
		Amount:              p.Amount().Decimal(),
		FloatAmount:         p.FloatAmount().Decimal(),
		TotalAmount:         p.TotalAmount().Decimal(),
		Status:              p.Status().String(),
		CreatedAt:           p.CreatedAt(),
		UpdatedAt:           p.UpdatedAt(),
		Version:             p.Version(),
		StatusUpdates:       updates,
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, idErr := kernel.UUIDFromBytes(dto.ID[:])
	tn, tnErr := kernel.TrackingNumberFromString(dto.TrackingNumber)
	method, methodErr := parcel.PaymentMethodFromString(dto.PaymentMethod)
	status, statusErr := parcel.StatusFromString(dto.Status)
	amount, amountErr := kernel.NewMoney(dto.Amount)
	floatAmount, floatErr := kernel.NewMoney(dto.FloatAmount)
	if err := errors.Join(idErr, tnErr, methodErr, statusErr, amountErr, floatErr); err != nil {
		return nil, err
	}

	history := make([]parcel.StatusUpdate, 0, len(dto.StatusUpdates))
	for _, u := range dto.StatusUpdates {
		updateID, err := kernel.UUIDFromBytes(u.ID[:])
		if err != nil {
			return nil, err
		}
		st, err := parcel.StatusFromString(u.Status)
		if err != nil {
			return nil, err
		}
		entry, err := parcel.RestoreStatusUpdate(updateID, st, u.Timestamp, u.ActorID, u.BranchID, u.Note)
		if err != nil {
			return nil, err
		}
		history = append(history, entry)
	}

	payment := parcel.Unpaid()
	if dto.IsPaid {
		paidAt := dto.UpdatedAt
		if dto.PaidAt != nil {
			paidAt = *dto.PaidAt
		}
		payment = parcel.Paid(paidAt, dto.PaidBy)
	}

	return parcel.RestoreParcel(parcel.RestoreParams{
		NewParcelParams: parcel.NewParcelParams{
			ID:                  id,
			TrackingNumber:      tn,
			Sender:              dto.Sender.toDomain(),
			Receiver:            dto.Receiver.toDomain(),
			SenderBranchID:      dto.SenderBranchID,
			DestinationBranchID: dto.DestinationBranchID,
			Description:         dto.Description,
			Weight:              dto.Weight,
			PaymentMethod:       method,
			Amount:              amount,
			FloatAmount:         floatAmount,
			CreatedAt:           dto.CreatedAt,
		},
		Status:    status,
		Payment:   payment,
		History:   history,
		UpdatedAt: dto.UpdatedAt,
		Version:   dto.Version,
	})
}

func partyDTO(p parcel.Party) PartyDTO {
	return PartyDTO{Name: p.Name, Email: p.Email, Phone: p.Phone}
}

func (p PartyDTO) toDomain() parcel.Party {
	return parcel.Party{Name: p.Name, Email: p.Email, Phone: p.Phone}
}
