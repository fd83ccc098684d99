package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for EnvelopeType.
const (
	EnvelopeTypePARCELCREATED   EnvelopeType = "PARCEL_CREATED"
	EnvelopeTypePARCELUPDATED   EnvelopeType = "PARCEL_UPDATED"
	EnvelopeTypePAYMENTRECEIVED EnvelopeType = "PAYMENT_RECEIVED"
	EnvelopeTypeSTATUSUPDATED   EnvelopeType = "STATUS_UPDATED"
	EnvelopeTypeSYNC            EnvelopeType = "SYNC"
)

// Defines values for ParcelStatus.
const (
	ParcelStatusCancelled ParcelStatus = "cancelled"
	ParcelStatusDelivered ParcelStatus = "delivered"
	ParcelStatusInTransit ParcelStatus = "in_transit"
	ParcelStatusPending   ParcelStatus = "pending"
	ParcelStatusReceived  ParcelStatus = "received"
)

// Defines values for PaymentMethod.
const (
	PaymentMethodCashOnDelivery PaymentMethod = "cash-on-delivery"
	PaymentMethodPayForward     PaymentMethod = "pay-forward"
	PaymentMethodPrepaid        PaymentMethod = "prepaid"
)

// Defines values for ReportPeriod.
const (
	ReportPeriodAll   ReportPeriod = "all"
	ReportPeriodMonth ReportPeriod = "month"
)

// Actor defines model for Actor.
type Actor struct {
	BranchId *string `json:"branchId,omitempty"`
	Id       string  `json:"id"`
}

// BranchReport defines model for BranchReport.
type BranchReport struct {
	Branches []BranchReportRow `json:"branches"`
	From     *time.Time        `json:"from,omitempty"`
	Period   ReportPeriod      `json:"period"`
	Totals   BranchReportRow   `json:"totals"`
}

// BranchReportRow defines model for BranchReportRow.
type BranchReportRow struct {
	BranchId  string `json:"branchId"`
	Cancelled int64  `json:"cancelled"`
	Delivered int64  `json:"delivered"`
	Open      int64  `json:"open"`
	Paid      int64  `json:"paid"`
	Revenue   Money  `json:"revenue"`
	Total     int64  `json:"total"`
	Unpaid    int64  `json:"unpaid"`
}

// Envelope defines model for Envelope.
type Envelope struct {
	Data      map[string]interface{} `json:"data"`
	Timestamp int64                  `json:"timestamp"`
	Type      EnvelopeType           `json:"type"`
	UpdateId  string                 `json:"updateId"`
}

// EnvelopeType defines model for EnvelopeType.
type EnvelopeType string

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// FloatRequest defines model for FloatRequest.
type FloatRequest struct {
	Actor  Actor `json:"actor"`
	Amount Money `json:"amount"`
}

// Money defines model for Money.
type Money = string

// NewParcel defines model for NewParcel.
type NewParcel struct {
	Actor               Actor         `json:"actor"`
	Amount              Money         `json:"amount"`
	Description         *string       `json:"description,omitempty"`
	DestinationBranchId string        `json:"destinationBranchId"`
	FloatAmount         *Money        `json:"floatAmount,omitempty"`
	PaymentMethod       PaymentMethod `json:"paymentMethod"`
	Receiver            Party         `json:"receiver"`
	Sender              Party         `json:"sender"`
	SenderBranchId      string        `json:"senderBranchId"`
	Weight              *float32      `json:"weight,omitempty"`
}

// Notification defines model for Notification.
type Notification struct {
	CreatedAt time.Time          `json:"createdAt"`
	Id        openapi_types.UUID `json:"id"`
	Message   string             `json:"message"`
	Recipient string             `json:"recipient"`
	Title     string             `json:"title"`
}

// Parcel defines model for Parcel.
type Parcel struct {
	Amount              Money              `json:"amount"`
	CreatedAt           time.Time          `json:"createdAt"`
	Description         *string            `json:"description,omitempty"`
	DestinationBranchId string             `json:"destinationBranchId"`
	FloatAmount         Money              `json:"floatAmount"`
	Id                  openapi_types.UUID `json:"id"`
	IsPaid              bool               `json:"isPaid"`
	PaidAt              *time.Time         `json:"paidAt,omitempty"`
	PaidBy              *string            `json:"paidBy,omitempty"`
	PaymentMethod       PaymentMethod      `json:"paymentMethod"`
	Receiver            Party              `json:"receiver"`
	Sender              Party              `json:"sender"`
	SenderBranchId      string             `json:"senderBranchId"`
	Status              ParcelStatus       `json:"status"`
	StatusUpdates       *[]StatusUpdate    `json:"statusUpdates,omitempty"`
	TotalAmount         Money              `json:"totalAmount"`
	TrackingNumber      string             `json:"trackingNumber"`
	UpdatedAt           time.Time          `json:"updatedAt"`
	Version             int64              `json:"version"`
	Weight              *float32           `json:"weight,omitempty"`
}

// ParcelChange defines model for ParcelChange.
type ParcelChange struct {
	Parcel Parcel `json:"parcel"`

	// Published false when the broadcast log was unreachable; the envelope is retried on the next poll.
	Published bool   `json:"published"`
	UpdateId  string `json:"updateId"`
}

// ParcelStatus defines model for ParcelStatus.
type ParcelStatus string

// Party defines model for Party.
type Party struct {
	Email *string `json:"email,omitempty"`
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
}

// PaymentMethod defines model for PaymentMethod.
type PaymentMethod string

// PaymentRequest defines model for PaymentRequest.
type PaymentRequest struct {
	Actor Actor `json:"actor"`
}

// ReportPeriod defines model for ReportPeriod.
type ReportPeriod string

// Revenue defines model for Revenue.
type Revenue struct {
	Total     Money      `json:"total"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// StatusUpdate defines model for StatusUpdate.
type StatusUpdate struct {
	ActorId   string             `json:"actorId"`
	BranchId  *string            `json:"branchId,omitempty"`
	Id        openapi_types.UUID `json:"id"`
	Note      *string            `json:"note,omitempty"`
	Status    ParcelStatus       `json:"status"`
	Timestamp time.Time          `json:"timestamp"`
}

// SyncAck defines model for SyncAck.
type SyncAck struct {
	Success bool `json:"success"`
}

// SyncLog defines model for SyncLog.
type SyncLog struct {
	Parcels   *[]Parcel  `json:"parcels,omitempty"`
	Timestamp int64      `json:"timestamp"`
	Updates   []Envelope `json:"updates"`
}

// TransitionRequest defines model for TransitionRequest.
type TransitionRequest struct {
	Actor  Actor        `json:"actor"`
	Note   *string      `json:"note,omitempty"`
	Status ParcelStatus `json:"status"`
}

// ParcelId defines model for ParcelId.
type ParcelId = openapi_types.UUID

// GetNotificationsParams defines parameters for GetNotifications.
type GetNotificationsParams struct {
	Recipient string `form:"recipient" json:"recipient"`
	Limit     *int   `form:"limit,omitempty" json:"limit,omitempty"`
}

// ListParcelsParams defines parameters for ListParcels.
type ListParcelsParams struct {
	BranchId *string         `form:"branchId,omitempty" json:"branchId,omitempty"`
	Status   *[]ParcelStatus `form:"status,omitempty" json:"status,omitempty"`
	Limit    *int            `form:"limit,omitempty" json:"limit,omitempty"`
}

// GetBranchReportParams defines parameters for GetBranchReport.
type GetBranchReportParams struct {
	Period *ReportPeriod `form:"period,omitempty" json:"period,omitempty"`
}

// GetSyncParams defines parameters for GetSync.
type GetSyncParams struct {
	// Since Return envelopes newer than this many milliseconds since the epoch. 0 or absent returns a full sync with parcel snapshots.
	Since *int64 `form:"since,omitempty" json:"since,omitempty"`
}

// CreateParcelJSONRequestBody defines body for CreateParcel for application/json ContentType.
type CreateParcelJSONRequestBody = NewParcel

// AddFloatAmountJSONRequestBody defines body for AddFloatAmount for application/json ContentType.
type AddFloatAmountJSONRequestBody = FloatRequest

// ConfirmPaymentJSONRequestBody defines body for ConfirmPayment for application/json ContentType.
type ConfirmPaymentJSONRequestBody = PaymentRequest

// TransitionParcelJSONRequestBody defines body for TransitionParcel for application/json ContentType.
type TransitionParcelJSONRequestBody = TransitionRequest

// PushSyncJSONRequestBody defines body for PushSync for application/json ContentType.
type PushSyncJSONRequestBody = Envelope
