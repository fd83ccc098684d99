package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/broadcast"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/notification"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/revenue"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByTrackingNumber(ctx context.Context, tn kernel.TrackingNumber) (*parcel.Parcel, error) {
	args := m.Called(ctx, tn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) List(ctx context.Context, filter ports.ParcelFilter) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

type MockRevenueRepository struct{ mock.Mock }

func (m *MockRevenueRepository) Get(ctx context.Context) (revenue.Ledger, error) {
	args := m.Called(ctx)
	return args.Get(0).(revenue.Ledger), args.Error(1)
}

func (m *MockRevenueRepository) GetForUpdate(ctx context.Context) (revenue.Ledger, error) {
	args := m.Called(ctx)
	return args.Get(0).(revenue.Ledger), args.Error(1)
}

func (m *MockRevenueRepository) Save(ctx context.Context, ledger revenue.Ledger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) AddMany(ctx context.Context, records []*notification.Notification) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByRecipient(
	ctx context.Context,
	recipient string,
	limit int,
) ([]*notification.Notification, error) {
	args := m.Called(ctx, recipient, limit)
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockParcelUoW struct{ mock.Mock }

func (m *MockParcelUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockParcelUoW) RevenueRepository() ports.RevenueRepository {
	args := m.Called()
	return args.Get(0).(ports.RevenueRepository)
}

func (m *MockParcelUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

type MockNotificationUoW struct{ mock.Mock }

func (m *MockNotificationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, env broadcast.Envelope) error {
	args := m.Called(ctx, env)
	return args.Error(0)
}

// parcelMocks wires a MockParcelUoW to its three repositories.
type parcelMocks struct {
	factory       *MockParcelUoWFactory
	uow           *MockParcelUoW
	parcels       *MockParcelRepository
	revenue       *MockRevenueRepository
	notifications *MockNotificationRepository
	publisher     *MockPublisher
}

func newParcelMocks() *parcelMocks {
	m := &parcelMocks{
		factory:       new(MockParcelUoWFactory),
		uow:           new(MockParcelUoW),
		parcels:       new(MockParcelRepository),
		revenue:       new(MockRevenueRepository),
		notifications: new(MockNotificationRepository),
		publisher:     new(MockPublisher),
	}
	m.factory.On("Create").Return(m.uow).Once()
	m.uow.On("ParcelRepository").Return(m.parcels).Maybe()
	m.uow.On("RevenueRepository").Return(m.revenue).Maybe()
	m.uow.On("NotificationRepository").Return(m.notifications).Maybe()
	return m
}

func (m *parcelMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.factory.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.parcels.AssertExpectations(t)
	m.revenue.AssertExpectations(t)
	m.notifications.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(time.Minute)
	return c.now
}

var (
	operator   = parcel.Actor{ID: "op-harare", BranchID: "harare"}
	receiving  = parcel.Actor{ID: "op-bulawayo", BranchID: "bulawayo"}
	registered = time.Date(2026, 3, 30, 12, 0, 0, 0, time.UTC)
	discard    = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func newMachine() *services.ParcelStateMachine {
	return services.NewParcelStateMachine(&stepClock{now: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)}, "admin")
}

// storedParcel returns a parcel as the record store would load it: created
// with method and moved through path, with no unsaved changes.
func storedParcel(t *testing.T, method parcel.PaymentMethod, path ...parcel.Status) *parcel.Parcel {
	t.Helper()

	machine := newMachine()
	tn, err := kernel.NewTrackingNumber("PCL")
	require.NoError(t, err)

	p, _, err := machine.Create(services.CreateParcelInput{
		TrackingNumber:      tn,
		Sender:              parcel.Party{Name: "Tendai", Email: "tendai@example.com"},
		Receiver:            parcel.Party{Name: "Rudo", Phone: "+263771234567"},
		SenderBranchID:      "harare",
		DestinationBranchID: "bulawayo",
		PaymentMethod:       method,
		Amount:              kernel.MustMoney("30"),
		FloatAmount:         kernel.MustMoney("10"),
		Actor:               operator,
	})
	require.NoError(t, err)

	for _, status := range path {
		p, _, err = machine.RequestTransition(p, status, receiving, "")
		require.NoError(t, err)
	}

	loaded, err := broadcast.FromParcel(p).ToParcel()
	require.NoError(t, err)
	require.False(t, loaded.IsDirty())
	return loaded
}

func titles(records []*notification.Notification) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Recipient()+"/"+r.Title())
	}
	return out
}
