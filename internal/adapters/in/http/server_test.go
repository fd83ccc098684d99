package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/core/application/syncengine"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/broadcast"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/generated/servers"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChangeHandler[C any] struct {
	mock.Mock
}

func (m *mockChangeHandler[C]) Handle(ctx context.Context, cmd C) (commands.ChangeResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ChangeResult), args.Error(1)
}

type mockCommandHandler[C any] struct {
	mock.Mock
}

func (m *mockCommandHandler[C]) Handle(ctx context.Context, cmd C) error {
	return m.Called(ctx, cmd).Error(0)
}

type mockQueryHandler[Q, R any] struct {
	mock.Mock
}

func (m *mockQueryHandler[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(R), args.Error(1)
}

type fixture struct {
	e *echo.Echo

	create     *mockChangeHandler[commands.CreateParcelCommand]
	transition *mockChangeHandler[commands.TransitionParcelCommand]
	confirm    *mockChangeHandler[commands.ConfirmPaymentCommand]
	addFloat   *mockChangeHandler[commands.AddFloatAmountCommand]
	dismiss    *mockCommandHandler[commands.DismissNotificationCommand]
	push       *mockCommandHandler[commands.PushEnvelopeCommand]

	getParcel     *mockQueryHandler[queries.GetParcelQuery, queries.ParcelView]
	trackParcel   *mockQueryHandler[queries.TrackParcelQuery, queries.ParcelView]
	listParcels   *mockQueryHandler[queries.ListParcelsQuery, []queries.ParcelView]
	notifications *mockQueryHandler[queries.GetNotificationsQuery, []queries.NotificationView]
	revenue       *mockQueryHandler[queries.GetRevenueQuery, queries.RevenueView]
	report        *mockQueryHandler[queries.GetBranchReportQuery, queries.BranchReport]
	syncLog       *mockQueryHandler[queries.GetSyncLogQuery, queries.SyncLog]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		create:        new(mockChangeHandler[commands.CreateParcelCommand]),
		transition:    new(mockChangeHandler[commands.TransitionParcelCommand]),
		confirm:       new(mockChangeHandler[commands.ConfirmPaymentCommand]),
		addFloat:      new(mockChangeHandler[commands.AddFloatAmountCommand]),
		dismiss:       new(mockCommandHandler[commands.DismissNotificationCommand]),
		push:          new(mockCommandHandler[commands.PushEnvelopeCommand]),
		getParcel:     new(mockQueryHandler[queries.GetParcelQuery, queries.ParcelView]),
		trackParcel:   new(mockQueryHandler[queries.TrackParcelQuery, queries.ParcelView]),
		listParcels:   new(mockQueryHandler[queries.ListParcelsQuery, []queries.ParcelView]),
		notifications: new(mockQueryHandler[queries.GetNotificationsQuery, []queries.NotificationView]),
		revenue:       new(mockQueryHandler[queries.GetRevenueQuery, queries.RevenueView]),
		report:        new(mockQueryHandler[queries.GetBranchReportQuery, queries.BranchReport]),
		syncLog:       new(mockQueryHandler[queries.GetSyncLogQuery, queries.SyncLog]),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateParcel:        f.create,
		TransitionParcel:    f.transition,
		ConfirmPayment:      f.confirm,
		AddFloatAmount:      f.addFloat,
		DismissNotification: f.dismiss,
		PushEnvelope:        f.push,
		GetParcel:           f.getParcel,
		TrackParcel:         f.trackParcel,
		ListParcels:         f.listParcels,
		GetNotifications:    f.notifications,
		GetRevenue:          f.revenue,
		GetBranchReport:     f.report,
		GetSyncLog:          f.syncLog,
	}, logger)

	e, err := httpadapter.NewEcho(server, logger)
	require.NoError(t, err)
	f.e = e
	return f
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

var createdAt = time.Date(2026, 4, 6, 9, 30, 0, 0, time.UTC)

func newParcel(t *testing.T, method parcel.PaymentMethod) *parcel.Parcel {
	t.Helper()
	machine := services.NewParcelStateMachine(kernel.ClockFunc(func() time.Time { return createdAt }), "admin")
	tn, err := kernel.TrackingNumberFromString("PCL0000012345")
	require.NoError(t, err)
	p, _, err := machine.Create(services.CreateParcelInput{
		TrackingNumber:      tn,
		Sender:              parcel.Party{Name: "Tendai", Email: "tendai@example.com"},
		Receiver:            parcel.Party{Name: "Rudo", Phone: "+263771234567"},
		SenderBranchID:      "harare",
		DestinationBranchID: "bulawayo",
		Description:         "books",
		Weight:              2,
		PaymentMethod:       method,
		Amount:              kernel.MustMoney("30"),
		FloatAmount:         kernel.Zero(),
		Actor:               parcel.Actor{ID: "op-harare", BranchID: "harare"},
	})
	require.NoError(t, err)
	return p
}

const newParcelBody = `{
	"sender": {"name": "Tendai", "email": "tendai@example.com"},
	"receiver": {"name": "Rudo", "phone": "+263771234567"},
	"senderBranchId": "harare",
	"destinationBranchId": "bulawayo",
	"description": "books",
	"weight": 2,
	"paymentMethod": "prepaid",
	"amount": "30",
	"actor": {"id": "op-harare", "branchId": "harare"}
}`

func TestServer_CreateParcel(t *testing.T) {
	t.Run("should register the parcel and return the change", func(t *testing.T) {
		f := newFixture(t)
		p := newParcel(t, parcel.PaymentMethodPrepaid)
		f.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateParcelCommand) bool {
			params := cmd.Params()
			return params.PaymentMethod == parcel.PaymentMethodPrepaid &&
				params.Amount.String() == "30.00" &&
				params.FloatAmount.IsZero() &&
				params.Receiver.Phone == "+263771234567" &&
				params.Actor.ID == "op-harare"
		})).Return(commands.ChangeResult{Parcel: p, UpdateID: "u-1", Published: true}, nil).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/parcels", newParcelBody)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		change := decode[servers.ParcelChange](t, rec)
		assert.Equal(t, "u-1", change.UpdateId)
		assert.True(t, change.Published)
		assert.Equal(t, "PCL0000012345", change.Parcel.TrackingNumber)
		assert.Equal(t, servers.ParcelStatusPending, change.Parcel.Status)
		assert.True(t, change.Parcel.IsPaid)
		require.NotNil(t, change.Parcel.StatusUpdates)
		assert.Len(t, *change.Parcel.StatusUpdates, 1)
		f.create.AssertExpectations(t)
	})

	t.Run("should reject bodies that do not match the schema", func(t *testing.T) {
		f := newFixture(t)
		body := strings.Replace(newParcelBody, `"paymentMethod": "prepaid"`, `"paymentMethod": "barter"`, 1)

		rec := f.do(t, http.MethodPost, "/api/v1/parcels", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, http.StatusBadRequest, decode[servers.Error](t, rec).Code)
		f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should reject a missing receiver", func(t *testing.T) {
		f := newFixture(t)
		body := `{"sender":{"name":"Tendai"},"senderBranchId":"harare","destinationBranchId":"bulawayo",
			"paymentMethod":"prepaid","amount":"30","actor":{"id":"op-harare"}}`

		rec := f.do(t, http.MethodPost, "/api/v1/parcels", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestServer_TransitionParcel_MapsDomainErrors(t *testing.T) {
	id := kernel.NewUUID()
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"payment required", &parcel.PaymentRequiredError{ParcelID: id, Outstanding: kernel.MustMoney("40")}, http.StatusPaymentRequired},
		{"invalid transition", &parcel.InvalidTransitionError{From: parcel.StatusPending, To: parcel.StatusReceived}, http.StatusUnprocessableEntity},
		{"version conflict", errs.NewVersionIsInvalidError("parcel"), http.StatusConflict},
		{"not found", errs.NewObjectNotFoundError("parcelId", id), http.StatusNotFound},
		{"finalized", fmt.Errorf("add charge: %w", parcel.ErrParcelIsFinalized), http.StatusUnprocessableEntity},
		{"unexpected", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run("should answer "+tc.name+" with its status", func(t *testing.T) {
			f := newFixture(t)
			f.transition.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.TransitionParcelCommand) bool {
				return cmd.ParcelID().IsEqual(id) && cmd.Target() == parcel.StatusReceived && cmd.Note() == "at counter"
			})).Return(commands.ChangeResult{}, tc.err).Once()

			rec := f.do(t, http.MethodPost, "/api/v1/parcels/"+id.String()+"/transitions",
				`{"status":"received","actor":{"id":"op-bulawayo","branchId":"bulawayo"},"note":"at counter"}`)

			assert.Equal(t, tc.code, rec.Code)
			apiErr := decode[servers.Error](t, rec)
			assert.Equal(t, tc.code, apiErr.Code)
			if tc.code == http.StatusPaymentRequired {
				assert.Contains(t, apiErr.Message, "40.00")
			}
			if tc.code == http.StatusInternalServerError {
				assert.NotContains(t, apiErr.Message, "connection reset")
			}
			f.transition.AssertExpectations(t)
		})
	}

	t.Run("should reject an unknown target status", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/api/v1/parcels/"+id.String()+"/transitions",
			`{"status":"lost","actor":{"id":"op-bulawayo"}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject a malformed parcel id", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/api/v1/parcels/not-a-uuid/transitions",
			`{"status":"received","actor":{"id":"op-bulawayo"}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_ConfirmPayment(t *testing.T) {
	t.Run("should answer a repeated payment with conflict", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		f.confirm.On("Handle", mock.Anything, mock.Anything).Return(commands.ChangeResult{}, parcel.ErrAlreadyPaid).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/parcels/"+id.String()+"/payment", `{"actor":{"id":"op-bulawayo"}}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("should return the paid parcel", func(t *testing.T) {
		f := newFixture(t)
		p := newParcel(t, parcel.PaymentMethodPrepaid)
		f.confirm.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ConfirmPaymentCommand) bool {
			return cmd.ParcelID().IsEqual(p.ID()) && cmd.Actor().ID == "op-bulawayo"
		})).Return(commands.ChangeResult{Parcel: p, UpdateID: "u-2"}, nil).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/parcels/"+p.ID().String()+"/payment", `{"actor":{"id":"op-bulawayo"}}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		change := decode[servers.ParcelChange](t, rec)
		assert.False(t, change.Published)
		assert.Equal(t, "30.00", change.Parcel.TotalAmount)
	})
}

func TestServer_AddFloatAmount(t *testing.T) {
	f := newFixture(t)
	p := newParcel(t, parcel.PaymentMethodCashOnDelivery)
	f.addFloat.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AddFloatAmountCommand) bool {
		return cmd.Delta().String() == "12.50"
	})).Return(commands.ChangeResult{Parcel: p, UpdateID: "u-3", Published: true}, nil).Once()

	rec := f.do(t, http.MethodPost, "/api/v1/parcels/"+p.ID().String()+"/float", `{"amount":"12.5","actor":{"id":"op-harare"}}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	f.addFloat.AssertExpectations(t)
}

func TestServer_Reads(t *testing.T) {
	view := queries.ParcelView{
		ID:                  kernel.NewUUID(),
		TrackingNumber:      "PCL0000012345",
		Sender:              parcel.Party{Name: "Tendai"},
		Receiver:            parcel.Party{Name: "Rudo"},
		SenderBranchID:      "harare",
		DestinationBranchID: "bulawayo",
		PaymentMethod:       parcel.PaymentMethodPayForward,
		Amount:              kernel.MustMoney("30"),
		FloatAmount:         kernel.Zero(),
		TotalAmount:         kernel.MustMoney("30"),
		Status:              parcel.StatusInTransit,
		CreatedAt:           createdAt,
		UpdatedAt:           createdAt,
		Version:             2,
	}

	t.Run("should list parcels with the status filter", func(t *testing.T) {
		f := newFixture(t)
		f.listParcels.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListParcelsQuery) bool {
			return q.BranchID() == "harare" &&
				assert.ObjectsAreEqual([]parcel.Status{parcel.StatusPending, parcel.StatusInTransit}, q.Statuses())
		})).Return([]queries.ParcelView{view}, nil).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/parcels?branchId=harare&status=pending&status=in_transit", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		list := decode[[]servers.Parcel](t, rec)
		require.Len(t, list, 1)
		assert.Equal(t, servers.ParcelStatusInTransit, list[0].Status)
		assert.Nil(t, list[0].StatusUpdates)
		f.listParcels.AssertExpectations(t)
	})

	t.Run("should reject unknown statuses in the filter", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodGet, "/api/v1/parcels?status=lost", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should track by number", func(t *testing.T) {
		f := newFixture(t)
		f.trackParcel.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.TrackParcelQuery) bool {
			return q.TrackingNumber().String() == "PCL0000012345"
		})).Return(view, nil).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/tracking/pcl0000012345", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "PCL0000012345", decode[servers.Parcel](t, rec).TrackingNumber)
	})

	t.Run("should answer unknown parcels with not found", func(t *testing.T) {
		f := newFixture(t)
		f.getParcel.On("Handle", mock.Anything, mock.Anything).
			Return(queries.ParcelView{}, errs.NewObjectNotFoundError("parcelId", view.ID)).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/parcels/"+view.ID.String(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should require a recipient for the inbox", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodGet, "/api/v1/notifications", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.notifications.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should return the inbox", func(t *testing.T) {
		f := newFixture(t)
		f.notifications.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetNotificationsQuery) bool {
			return q.Recipient() == "admin" && q.Limit() == queries.DefaultInboxLimit
		})).Return([]queries.NotificationView{{
			ID: kernel.NewUUID(), Recipient: "admin", Title: "New Parcel", Message: "PCL0000012345", CreatedAt: createdAt,
		}}, nil).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/notifications?recipient=admin", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		inbox := decode[[]servers.Notification](t, rec)
		require.Len(t, inbox, 1)
		assert.Equal(t, "New Parcel", inbox[0].Title)
	})

	t.Run("should return revenue", func(t *testing.T) {
		f := newFixture(t)
		f.revenue.On("Handle", mock.Anything, mock.Anything).
			Return(queries.RevenueView{Total: kernel.MustMoney("182.5"), UpdatedAt: createdAt}, nil).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/revenue", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "182.50", decode[servers.Revenue](t, rec).Total)
	})

	t.Run("should build the monthly report", func(t *testing.T) {
		f := newFixture(t)
		row := queries.BranchReportRow{BranchID: "bulawayo", Total: 3, Paid: 2, Unpaid: 1, Revenue: kernel.MustMoney("27.5")}
		f.report.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetBranchReportQuery) bool {
			return q.Period() == queries.ReportPeriodMonth
		})).Return(queries.BranchReport{
			Period:   queries.ReportPeriodMonth,
			From:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			Branches: []queries.BranchReportRow{row},
			Totals:   row,
		}, nil).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/reports/branches?period=month", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		report := decode[servers.BranchReport](t, rec)
		require.Len(t, report.Branches, 1)
		assert.Equal(t, "27.50", report.Branches[0].Revenue)
		require.NotNil(t, report.From)
	})
}

func TestServer_DismissNotification(t *testing.T) {
	f := newFixture(t)
	id := kernel.NewUUID()
	f.dismiss.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DismissNotificationCommand) bool {
		return cmd.NotificationID().IsEqual(id)
	})).Return(nil).Once()

	rec := f.do(t, http.MethodDelete, "/api/v1/notifications/"+id.String(), "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.dismiss.AssertExpectations(t)
}

func TestServer_Sync(t *testing.T) {
	t.Run("should accept a pushed envelope", func(t *testing.T) {
		f := newFixture(t)
		f.push.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PushEnvelopeCommand) bool {
			env := cmd.Envelope()
			return env.UpdateID == "u-9" && env.Type == broadcast.TypeSync && env.Timestamp == 1775467800000
		})).Return(nil).Once()

		rec := f.do(t, http.MethodPost, "/sync", `{"updateId":"u-9","type":"SYNC","data":{},"timestamp":1775467800000}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.True(t, decode[servers.SyncAck](t, rec).Success)
	})

	t.Run("should answer an unreachable log with service unavailable", func(t *testing.T) {
		f := newFixture(t)
		f.push.On("Handle", mock.Anything, mock.Anything).
			Return(fmt.Errorf("%w: append: dial tcp: refused", syncengine.ErrSyncUnavailable)).Once()

		rec := f.do(t, http.MethodPost, "/sync", `{"updateId":"u-9","type":"SYNC","data":{},"timestamp":1775467800000}`)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("should reject unknown envelope types", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/sync", `{"updateId":"u-9","type":"DELETED","data":{},"timestamp":1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.push.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should return updates and snapshots on a full pull", func(t *testing.T) {
		f := newFixture(t)
		p := newParcel(t, parcel.PaymentMethodCashOnDelivery)
		env, err := broadcast.NewEnvelopeWithID("u-1", broadcast.TypeParcelCreated, broadcast.Change{Parcel: broadcast.FromParcel(p)}, createdAt)
		require.NoError(t, err)

		f.syncLog.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetSyncLogQuery) bool {
			return q.IsFull()
		})).Return(queries.SyncLog{
			Updates:   []broadcast.Envelope{env},
			Parcels:   []broadcast.ParcelSnapshot{broadcast.FromParcel(p)},
			Timestamp: createdAt.UnixMilli(),
		}, nil).Once()

		rec := f.do(t, http.MethodGet, "/sync", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		log := decode[servers.SyncLog](t, rec)
		require.Len(t, log.Updates, 1)
		assert.Equal(t, servers.EnvelopeTypePARCELCREATED, log.Updates[0].Type)
		require.NotNil(t, log.Parcels)
		require.Len(t, *log.Parcels, 1)
		assert.Equal(t, p.ID().String(), (*log.Parcels)[0].Id.String())
		assert.Equal(t, createdAt.UnixMilli(), log.Timestamp)
	})

	t.Run("should omit snapshots on an incremental pull", func(t *testing.T) {
		f := newFixture(t)
		f.syncLog.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetSyncLogQuery) bool {
			return q.Since() == 1775467800000
		})).Return(queries.SyncLog{Updates: []broadcast.Envelope{}, Timestamp: 1775467900000}, nil).Once()

		rec := f.do(t, http.MethodGet, "/sync?since=1775467800000", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), `"parcels"`)
	})
}

func TestServer_Health(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}
