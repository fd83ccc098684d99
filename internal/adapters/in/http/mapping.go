package http

import (
	"encoding/json"
	"fmt"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/broadcast"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/generated/servers"

	"github.com/google/uuid"
)

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func optional[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

func partyToDomain(p servers.Party) parcel.Party {
	return parcel.Party{Name: p.Name, Email: deref(p.Email), Phone: deref(p.Phone)}
}

func partyFromDomain(p parcel.Party) servers.Party {
	return servers.Party{Name: p.Name, Email: optional(p.Email), Phone: optional(p.Phone)}
}

func actorToDomain(a servers.Actor) parcel.Actor {
	return parcel.Actor{ID: a.Id, BranchID: deref(a.BranchId)}
}

func weight(w float64) *float32 {
	return optional(float32(w))
}

func parcelFromView(v queries.ParcelView) servers.Parcel {
	out := servers.Parcel{
		Id:                  v.ID.Bytes(),
		TrackingNumber:      v.TrackingNumber,
		Sender:              partyFromDomain(v.Sender),
		Receiver:            partyFromDomain(v.Receiver),
		SenderBranchId:      v.SenderBranchID,
		DestinationBranchId: v.DestinationBranchID,
		Description:         optional(v.Description),
		Weight:              weight(v.Weight),
		PaymentMethod:       servers.PaymentMethod(v.PaymentMethod.String()),
		IsPaid:              v.IsPaid,
		PaidAt:              v.PaidAt,
		PaidBy:              optional(v.PaidBy),
		Amount:              v.Amount.String(),
		FloatAmount:         v.FloatAmount.String(),
		TotalAmount:         v.TotalAmount.String(),
		Status:              servers.ParcelStatus(v.Status.String()),
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
		Version:             v.Version,
	}
	if v.StatusUpdates != nil {
		updates := make([]servers.StatusUpdate, len(v.StatusUpdates))
		for i, u := range v.StatusUpdates {
			updates[i] = servers.StatusUpdate{
				Id:        u.ID.Bytes(),
				Status:    servers.ParcelStatus(u.Status.String()),
				Timestamp: u.Timestamp,
				ActorId:   u.ActorID,
				BranchId:  optional(u.BranchID),
				Note:      optional(u.Note),
			}
		}
		out.StatusUpdates = &updates
	}
	return out
}

func parcelFromSnapshot(s broadcast.ParcelSnapshot) (servers.Parcel, error) {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return servers.Parcel{}, fmt.Errorf("parcel id %q: %w", s.ID, err)
	}

	out := servers.Parcel{
		Id:                  id,
		TrackingNumber:      s.TrackingNumber,
		Sender:              servers.Party{Name: s.Sender.Name, Email: optional(s.Sender.Email), Phone: optional(s.Sender.Phone)},
		Receiver:            servers.Party{Name: s.Receiver.Name, Email: optional(s.Receiver.Email), Phone: optional(s.Receiver.Phone)},
		SenderBranchId:      s.SenderBranchID,
		DestinationBranchId: s.DestinationBranchID,
		Description:         optional(s.Description),
		Weight:              weight(s.Weight),
		PaymentMethod:       servers.PaymentMethod(s.PaymentMethod),
		IsPaid:              s.IsPaid,
		PaidAt:              s.PaidAt,
		PaidBy:              optional(s.PaidBy),
		Amount:              s.Amount.String(),
		FloatAmount:         s.FloatAmount.String(),
		TotalAmount:         s.TotalAmount.String(),
		Status:              servers.ParcelStatus(s.Status),
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
		Version:             s.Version,
	}

	updates := make([]servers.StatusUpdate, 0, len(s.StatusUpdates))
	for _, u := range s.StatusUpdates {
		updateID, err := uuid.Parse(u.ID)
		if err != nil {
			return servers.Parcel{}, fmt.Errorf("status update id %q: %w", u.ID, err)
		}
		updates = append(updates, servers.StatusUpdate{
			Id:        updateID,
			Status:    servers.ParcelStatus(u.Status),
			Timestamp: u.Timestamp,
			ActorId:   u.ActorID,
			BranchId:  optional(u.BranchID),
			Note:      optional(u.Note),
		})
	}
	out.StatusUpdates = &updates
	return out, nil
}

// changeFromResult renders the committed parcel. Snapshots of a parcel that
// was just validated by the domain always carry well-formed ids.
func changeFromResult(r commands.ChangeResult) servers.ParcelChange {
	p, _ := parcelFromSnapshot(broadcast.FromParcel(r.Parcel))
	return servers.ParcelChange{
		Parcel:    p,
		UpdateId:  r.UpdateID,
		Published: r.Published,
	}
}

func envelopeFromDomain(env broadcast.Envelope) (servers.Envelope, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return servers.Envelope{}, fmt.Errorf("envelope %s data: %w", env.UpdateID, err)
	}
	return servers.Envelope{
		UpdateId:  env.UpdateID,
		Type:      servers.EnvelopeType(env.Type),
		Data:      data,
		Timestamp: env.Timestamp,
	}, nil
}

func reportRow(r queries.BranchReportRow) servers.BranchReportRow {
	return servers.BranchReportRow{
		BranchId:  r.BranchID,
		Total:     r.Total,
		Delivered: r.Delivered,
		Open:      r.Open,
		Cancelled: r.Cancelled,
		Paid:      r.Paid,
		Unpaid:    r.Unpaid,
		Revenue:   r.Revenue.String(),
	}
}
