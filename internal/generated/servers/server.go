// Package servers holds the HTTP contract of openapi.yml: request and
// response models, the echo ServerInterface with its parameter-binding
// wrappers, and the parsed document for request validation.
package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Register a parcel
	// (POST /api/v1/parcels)
	CreateParcel(ctx echo.Context) error
	// List parcels newest first
	// (GET /api/v1/parcels)
	ListParcels(ctx echo.Context, params ListParcelsParams) error

	// (GET /api/v1/parcels/{parcelId})
	GetParcel(ctx echo.Context, parcelId ParcelId) error
	// Add a charge on top of the base amount
	// (POST /api/v1/parcels/{parcelId}/float)
	AddFloatAmount(ctx echo.Context, parcelId ParcelId) error
	// Record payment of a parcel
	// (POST /api/v1/parcels/{parcelId}/payment)
	ConfirmPayment(ctx echo.Context, parcelId ParcelId) error
	// Move a parcel to its next status
	// (POST /api/v1/parcels/{parcelId}/transitions)
	TransitionParcel(ctx echo.Context, parcelId ParcelId) error

	// (GET /api/v1/tracking/{trackingNumber})
	TrackParcel(ctx echo.Context, trackingNumber string) error

	// (GET /api/v1/notifications)
	GetNotifications(ctx echo.Context, params GetNotificationsParams) error

	// (DELETE /api/v1/notifications/{notificationId})
	DismissNotification(ctx echo.Context, notificationId openapi_types.UUID) error

	// (GET /api/v1/revenue)
	GetRevenue(ctx echo.Context) error

	// (GET /api/v1/reports/branches)
	GetBranchReport(ctx echo.Context, params GetBranchReportParams) error
	// Pull the broadcast log tail
	// (GET /sync)
	GetSync(ctx echo.Context, params GetSyncParams) error
	// Push an envelope to every subscriber
	// (POST /sync)
	PushSync(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateParcel converts echo context to params.
func (w *ServerInterfaceWrapper) CreateParcel(ctx echo.Context) error {
	return w.Handler.CreateParcel(ctx)
}

// ListParcels converts echo context to params.
func (w *ServerInterfaceWrapper) ListParcels(ctx echo.Context) error {
	var err error

	var params ListParcelsParams
	// ------------- Optional query parameter "branchId" -------------

	err = runtime.BindQueryParameter("form", true, false, "branchId", ctx.QueryParams(), &params.BranchId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter branchId: %s", err))
	}

	// ------------- Optional query parameter "status" -------------

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	// ------------- Optional query parameter "limit" -------------

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.ListParcels(ctx, params)
}

// GetParcel converts echo context to params.
func (w *ServerInterfaceWrapper) GetParcel(ctx echo.Context) error {
	parcelId, err := bindParcelID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetParcel(ctx, parcelId)
}

// AddFloatAmount converts echo context to params.
func (w *ServerInterfaceWrapper) AddFloatAmount(ctx echo.Context) error {
	parcelId, err := bindParcelID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AddFloatAmount(ctx, parcelId)
}

// ConfirmPayment converts echo context to params.
func (w *ServerInterfaceWrapper) ConfirmPayment(ctx echo.Context) error {
	parcelId, err := bindParcelID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ConfirmPayment(ctx, parcelId)
}

// TransitionParcel converts echo context to params.
func (w *ServerInterfaceWrapper) TransitionParcel(ctx echo.Context) error {
	parcelId, err := bindParcelID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.TransitionParcel(ctx, parcelId)
}

// TrackParcel converts echo context to params.
func (w *ServerInterfaceWrapper) TrackParcel(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "trackingNumber" -------------
	var trackingNumber string

	err = runtime.BindStyledParameterWithOptions("simple", "trackingNumber", ctx.Param("trackingNumber"), &trackingNumber, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter trackingNumber: %s", err))
	}

	return w.Handler.TrackParcel(ctx, trackingNumber)
}

// GetNotifications converts echo context to params.
func (w *ServerInterfaceWrapper) GetNotifications(ctx echo.Context) error {
	var err error

	var params GetNotificationsParams
	// ------------- Required query parameter "recipient" -------------

	err = runtime.BindQueryParameter("form", true, true, "recipient", ctx.QueryParams(), &params.Recipient)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter recipient: %s", err))
	}

	// ------------- Optional query parameter "limit" -------------

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.GetNotifications(ctx, params)
}

// DismissNotification converts echo context to params.
func (w *ServerInterfaceWrapper) DismissNotification(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "notificationId" -------------
	var notificationId openapi_types.UUID

	err = runtime.BindStyledParameterWithOptions("simple", "notificationId", ctx.Param("notificationId"), &notificationId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter notificationId: %s", err))
	}

	return w.Handler.DismissNotification(ctx, notificationId)
}

// GetRevenue converts echo context to params.
func (w *ServerInterfaceWrapper) GetRevenue(ctx echo.Context) error {
	return w.Handler.GetRevenue(ctx)
}

// GetBranchReport converts echo context to params.
func (w *ServerInterfaceWrapper) GetBranchReport(ctx echo.Context) error {
	var err error

	var params GetBranchReportParams
	// ------------- Optional query parameter "period" -------------

	err = runtime.BindQueryParameter("form", true, false, "period", ctx.QueryParams(), &params.Period)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter period: %s", err))
	}

	return w.Handler.GetBranchReport(ctx, params)
}

// GetSync converts echo context to params.
func (w *ServerInterfaceWrapper) GetSync(ctx echo.Context) error {
	var err error

	var params GetSyncParams
	// ------------- Optional query parameter "since" -------------

	err = runtime.BindQueryParameter("form", true, false, "since", ctx.QueryParams(), &params.Since)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter since: %s", err))
	}

	return w.Handler.GetSync(ctx, params)
}

// PushSync converts echo context to params.
func (w *ServerInterfaceWrapper) PushSync(ctx echo.Context) error {
	return w.Handler.PushSync(ctx)
}

func bindParcelID(ctx echo.Context) (ParcelId, error) {
	// ------------- Path parameter "parcelId" -------------
	var parcelId ParcelId

	err := runtime.BindStyledParameterWithOptions("simple", "parcelId", ctx.Param("parcelId"), &parcelId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return parcelId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter parcelId: %s", err))
	}
	return parcelId, nil
}

// EchoRouter is an interface that wraps the methods of echo.Echo and echo.Group
// so that handlers can be registered on either.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/notifications", wrapper.GetNotifications)
	router.DELETE(baseURL+"/api/v1/notifications/:notificationId", wrapper.DismissNotification)
	router.GET(baseURL+"/api/v1/parcels", wrapper.ListParcels)
	router.POST(baseURL+"/api/v1/parcels", wrapper.CreateParcel)
	router.GET(baseURL+"/api/v1/parcels/:parcelId", wrapper.GetParcel)
	router.POST(baseURL+"/api/v1/parcels/:parcelId/float", wrapper.AddFloatAmount)
	router.POST(baseURL+"/api/v1/parcels/:parcelId/payment", wrapper.ConfirmPayment)
	router.POST(baseURL+"/api/v1/parcels/:parcelId/transitions", wrapper.TransitionParcel)
	router.GET(baseURL+"/api/v1/reports/branches", wrapper.GetBranchReport)
	router.GET(baseURL+"/api/v1/revenue", wrapper.GetRevenue)
	router.GET(baseURL+"/api/v1/tracking/:trackingNumber", wrapper.TrackParcel)
	router.GET(baseURL+"/sync", wrapper.GetSync)
	router.POST(baseURL+"/sync", wrapper.PushSync)
}
