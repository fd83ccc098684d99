package queries_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/postgres/notificationrepo"
	"parceltrack/internal/adapters/out/postgres/revenuerepo"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/notification"
	"parceltrack/internal/core/domain/model/revenue"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type InboxQueryHandlersTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *InboxQueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&notificationrepo.NotificationDTO{}, &revenuerepo.RevenueDTO{}))
}

func (suite *InboxQueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *InboxQueryHandlersTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE notifications, revenue").Error
	suite.Require().NoError(err)
}

func (suite *InboxQueryHandlersTestSuite) notify(recipient, title string, at time.Time) *notification.Notification {
	n, err := notification.NewNotification(kernel.NewUUID(), recipient, title, title+" message", at)
	suite.Require().NoError(err)
	repo := notificationrepo.NewGormNotificationRepository(suite.db)
	suite.Require().NoError(repo.AddMany(context.Background(), []*notification.Notification{n}))
	return n
}

func (suite *InboxQueryHandlersTestSuite) TestGetNotifications_NewestFirstForOneRecipient() {
	base := time.Date(2026, 4, 3, 10, 0, 0, 0, time.UTC)
	older := suite.notify("+263771234567", "Parcel Registered", base)
	newer := suite.notify("+263771234567", "Parcel In Transit", base.Add(time.Hour))
	suite.notify("admin", "New Parcel", base)

	query, err := queries.NewGetNotificationsQuery("+263771234567", 0)
	suite.Require().NoError(err)

	views, err := queries.NewGetNotificationsQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.True(views[0].ID.IsEqual(newer.ID()))
	suite.True(views[1].ID.IsEqual(older.ID()))
	suite.Equal("Parcel In Transit message", views[0].Message)
	suite.True(views[1].CreatedAt.Equal(base))
}

func (suite *InboxQueryHandlersTestSuite) TestGetNotifications_RespectsLimit() {
	base := time.Date(2026, 4, 3, 10, 0, 0, 0, time.UTC)
	for i := range 3 {
		suite.notify("admin", "New Parcel", base.Add(time.Duration(i)*time.Minute))
	}

	query, err := queries.NewGetNotificationsQuery("admin", 2)
	suite.Require().NoError(err)

	views, err := queries.NewGetNotificationsQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Len(views, 2)
}

func (suite *InboxQueryHandlersTestSuite) TestGetNotifications_UnknownRecipient_ReturnsEmptySlice() {
	query, err := queries.NewGetNotificationsQuery("nobody", 0)
	suite.Require().NoError(err)

	views, err := queries.NewGetNotificationsQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(views)
	suite.Empty(views)
}

func (suite *InboxQueryHandlersTestSuite) TestGetRevenue_BeforeFirstCredit_ReturnsZero() {
	view, err := queries.NewGetRevenueQueryHandler(suite.db).Handle(context.Background(), queries.NewGetRevenueQuery())
	suite.Require().NoError(err)
	suite.True(view.Total.IsZero())
	suite.True(view.UpdatedAt.IsZero())
}

func (suite *InboxQueryHandlersTestSuite) TestGetRevenue_ReturnsStoredLedger() {
	at := time.Date(2026, 4, 3, 11, 30, 0, 0, time.UTC)
	repo := revenuerepo.NewGormRevenueRepository(suite.db)
	suite.Require().NoError(repo.Save(context.Background(), revenue.NewLedger(kernel.MustMoney("182.5"), at)))

	view, err := queries.NewGetRevenueQueryHandler(suite.db).Handle(context.Background(), queries.NewGetRevenueQuery())
	suite.Require().NoError(err)
	suite.Equal("182.50", view.Total.String())
	suite.True(view.UpdatedAt.Equal(at))
}

func (suite *InboxQueryHandlersTestSuite) TestHandle_InvalidQueries_ReturnErrors() {
	ctx := context.Background()

	views, err := queries.NewGetNotificationsQueryHandler(suite.db).Handle(ctx, queries.GetNotificationsQuery{})
	suite.Require().Error(err)
	suite.Nil(views)
	suite.Contains(err.Error(), "must be created via NewGetNotificationsQuery constructor")

	_, err = queries.NewGetRevenueQueryHandler(suite.db).Handle(ctx, queries.GetRevenueQuery{})
	suite.ErrorIs(err, queries.ErrGetRevenueQueryIsNotConstructed)
}

func TestInboxQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(InboxQueryHandlersTestSuite))
}
