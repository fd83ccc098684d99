package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/broadcast"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	// ChangeHandler runs a parcel command.
	ChangeHandler[C any] interface {
		Handle(ctx context.Context, cmd C) (commands.ChangeResult, error)
	}

	// CommandHandler runs a command without a result.
	CommandHandler[C any] interface {
		Handle(ctx context.Context, cmd C) error
	}

	// QueryHandler runs a read.
	QueryHandler[Q, R any] interface {
		Handle(ctx context.Context, query Q) (R, error)
	}
)

// Handlers are the use cases the server dispatches to.
type Handlers struct {
	CreateParcel        ChangeHandler[commands.CreateParcelCommand]
	TransitionParcel    ChangeHandler[commands.TransitionParcelCommand]
	ConfirmPayment      ChangeHandler[commands.ConfirmPaymentCommand]
	AddFloatAmount      ChangeHandler[commands.AddFloatAmountCommand]
	DismissNotification CommandHandler[commands.DismissNotificationCommand]
	PushEnvelope        CommandHandler[commands.PushEnvelopeCommand]

	GetParcel        QueryHandler[queries.GetParcelQuery, queries.ParcelView]
	TrackParcel      QueryHandler[queries.TrackParcelQuery, queries.ParcelView]
	ListParcels      QueryHandler[queries.ListParcelsQuery, []queries.ParcelView]
	GetNotifications QueryHandler[queries.GetNotificationsQuery, []queries.NotificationView]
	GetRevenue       QueryHandler[queries.GetRevenueQuery, queries.RevenueView]
	GetBranchReport  QueryHandler[queries.GetBranchReportQuery, queries.BranchReport]
	GetSyncLog       QueryHandler[queries.GetSyncLogQuery, queries.SyncLog]
}

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{h: handlers, logger: logger.With("component", "http")}
}

// CreateParcel handles POST /api/v1/parcels.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var body servers.CreateParcelJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	method, methodErr := parcel.PaymentMethodFromString(string(body.PaymentMethod))
	amount, amountErr := kernel.MoneyFromString(body.Amount)
	floatAmount := kernel.Zero()
	var floatErr error
	if body.FloatAmount != nil {
		floatAmount, floatErr = kernel.MoneyFromString(*body.FloatAmount)
	}
	if err := errors.Join(methodErr, amountErr, floatErr); err != nil {
		return badRequest(ctx, "Invalid parcel data: "+err.Error())
	}

	cmd, err := commands.NewCreateParcelCommand(commands.CreateParcelParams{
		Sender:              partyToDomain(body.Sender),
		Receiver:            partyToDomain(body.Receiver),
		SenderBranchID:      body.SenderBranchId,
		DestinationBranchID: body.DestinationBranchId,
		Description:         deref(body.Description),
		Weight:              float64(deref(body.Weight)),
		PaymentMethod:       method,
		Amount:              amount,
		FloatAmount:         floatAmount,
		Actor:               actorToDomain(body.Actor),
	})
	if err != nil {
		return badRequest(ctx, "Invalid parcel data: "+err.Error())
	}

	result, err := s.h.CreateParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to create parcel")
	}
	return ctx.JSON(http.StatusCreated, changeFromResult(result))
}

// ListParcels handles GET /api/v1/parcels.
func (s *Server) ListParcels(ctx echo.Context, params servers.ListParcelsParams) error {
	var statuses []parcel.Status
	if params.Status != nil {
		for _, raw := range *params.Status {
			status, err := parcel.StatusFromString(string(raw))
			if err != nil {
				return badRequest(ctx, err.Error())
			}
			statuses = append(statuses, status)
		}
	}

	query, err := queries.NewListParcelsQuery(deref(params.BranchId), statuses, deref(params.Limit))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	views, err := s.h.ListParcels.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve parcels")
	}

	response := make([]servers.Parcel, len(views))
	for i, v := range views {
		response[i] = parcelFromView(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetParcel handles GET /api/v1/parcels/{parcelId}.
func (s *Server) GetParcel(ctx echo.Context, parcelId servers.ParcelId) error {
	id, err := kernel.UUIDFromBytes(parcelId[:])
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	query, err := queries.NewGetParcelQuery(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.h.GetParcel.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve parcel")
	}
	return ctx.JSON(http.StatusOK, parcelFromView(view))
}

// TrackParcel handles GET /api/v1/tracking/{trackingNumber}.
func (s *Server) TrackParcel(ctx echo.Context, trackingNumber string) error {
	query, err := queries.NewTrackParcelQuery(trackingNumber)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.h.TrackParcel.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve parcel")
	}
	return ctx.JSON(http.StatusOK, parcelFromView(view))
}

// TransitionParcel handles POST /api/v1/parcels/{parcelId}/transitions.
func (s *Server) TransitionParcel(ctx echo.Context, parcelId servers.ParcelId) error {
	var body servers.TransitionParcelJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, idErr := kernel.UUIDFromBytes(parcelId[:])
	target, statusErr := parcel.StatusFromString(string(body.Status))
	if err := errors.Join(idErr, statusErr); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewTransitionParcelCommand(id, target, actorToDomain(body.Actor), deref(body.Note))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.h.TransitionParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to update parcel status")
	}
	return ctx.JSON(http.StatusOK, changeFromResult(result))
}

// ConfirmPayment handles POST /api/v1/parcels/{parcelId}/payment.
func (s *Server) ConfirmPayment(ctx echo.Context, parcelId servers.ParcelId) error {
	var body servers.ConfirmPaymentJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(parcelId[:])
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	cmd, err := commands.NewConfirmPaymentCommand(id, actorToDomain(body.Actor))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.h.ConfirmPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to confirm payment")
	}
	return ctx.JSON(http.StatusOK, changeFromResult(result))
}

// AddFloatAmount handles POST /api/v1/parcels/{parcelId}/float.
func (s *Server) AddFloatAmount(ctx echo.Context, parcelId servers.ParcelId) error {
	var body servers.AddFloatAmountJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, idErr := kernel.UUIDFromBytes(parcelId[:])
	delta, amountErr := kernel.MoneyFromString(body.Amount)
	if err := errors.Join(idErr, amountErr); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAddFloatAmountCommand(id, delta, actorToDomain(body.Actor))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.h.AddFloatAmount.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to add float amount")
	}
	return ctx.JSON(http.StatusOK, changeFromResult(result))
}

// GetNotifications handles GET /api/v1/notifications.
func (s *Server) GetNotifications(ctx echo.Context, params servers.GetNotificationsParams) error {
	query, err := queries.NewGetNotificationsQuery(params.Recipient, deref(params.Limit))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	views, err := s.h.GetNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve notifications")
	}

	response := make([]servers.Notification, len(views))
	for i, v := range views {
		response[i] = servers.Notification{
			Id:        v.ID.Bytes(),
			Recipient: v.Recipient,
			Title:     v.Title,
			Message:   v.Message,
			CreatedAt: v.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// DismissNotification handles DELETE /api/v1/notifications/{notificationId}.
func (s *Server) DismissNotification(ctx echo.Context, notificationId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(notificationId[:])
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	cmd, err := commands.NewDismissNotificationCommand(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.h.DismissNotification.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to dismiss notification")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetRevenue handles GET /api/v1/revenue.
func (s *Server) GetRevenue(ctx echo.Context) error {
	view, err := s.h.GetRevenue.Handle(ctx.Request().Context(), queries.NewGetRevenueQuery())
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve revenue")
	}

	response := servers.Revenue{Total: view.Total.String()}
	if !view.UpdatedAt.IsZero() {
		response.UpdatedAt = &view.UpdatedAt
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetBranchReport handles GET /api/v1/reports/branches.
func (s *Server) GetBranchReport(ctx echo.Context, params servers.GetBranchReportParams) error {
	period, err := queries.ReportPeriodFromString(string(deref(params.Period)))
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	query, err := queries.NewGetBranchReportQuery(period)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	report, err := s.h.GetBranchReport.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to build branch report")
	}

	response := servers.BranchReport{
		Period:   servers.ReportPeriod(report.Period),
		Branches: make([]servers.BranchReportRow, len(report.Branches)),
		Totals:   reportRow(report.Totals),
	}
	if !report.From.IsZero() {
		response.From = &report.From
	}
	for i, row := range report.Branches {
		response.Branches[i] = reportRow(row)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetSync handles GET /sync.
func (s *Server) GetSync(ctx echo.Context, params servers.GetSyncParams) error {
	query, err := queries.NewGetSyncLogQuery(deref(params.Since))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	log, err := s.h.GetSyncLog.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to read sync log")
	}

	response := servers.SyncLog{
		Timestamp: log.Timestamp,
		Updates:   make([]servers.Envelope, 0, len(log.Updates)),
	}
	for _, env := range log.Updates {
		out, err := envelopeFromDomain(env)
		if err != nil {
			return s.fail(ctx, err, "Failed to read sync log")
		}
		response.Updates = append(response.Updates, out)
	}
	if log.Parcels != nil {
		snapshots := make([]servers.Parcel, 0, len(log.Parcels))
		for _, snap := range log.Parcels {
			out, err := parcelFromSnapshot(snap)
			if err != nil {
				return s.fail(ctx, err, "Failed to read sync log")
			}
			snapshots = append(snapshots, out)
		}
		response.Parcels = &snapshots
	}
	return ctx.JSON(http.StatusOK, response)
}

// PushSync handles POST /sync.
func (s *Server) PushSync(ctx echo.Context) error {
	var body servers.PushSyncJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	data, err := json.Marshal(body.Data)
	if err != nil {
		return badRequest(ctx, "Invalid envelope data")
	}
	cmd, err := commands.NewPushEnvelopeCommand(broadcast.Envelope{
		UpdateID:  strings.TrimSpace(body.UpdateId),
		Type:      broadcast.Type(body.Type),
		Data:      data,
		Timestamp: body.Timestamp,
	})
	if err != nil {
		return badRequest(ctx, "Invalid envelope: "+err.Error())
	}

	if err := s.h.PushEnvelope.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to publish envelope")
	}
	return ctx.JSON(http.StatusOK, servers.SyncAck{Success: true})
}
