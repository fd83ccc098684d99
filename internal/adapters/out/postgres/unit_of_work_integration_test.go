package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	postgres_adapter "parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/core/domain/model/effect"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/notification"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work and the repositories
// it hands out against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
	seq       int
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE parcels, status_updates, revenue, notifications").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "a second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitsAcrossRepositories() {
	ctx := context.Background()
	p := suite.createParcel()
	uow := suite.factory.CreateGorm()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	suite.Require().NoError(uow.NotificationRepository().AddMany(ctx, []*notification.Notification{
		suite.createNotification("rudo@example.com"),
	}))
	suite.creditRevenue(ctx, uow.RevenueRepository(), "30")
	suite.Equal([]kernel.UUID{p.ID()}, uow.TrackedIDs())
	suite.Require().NoError(uow.Commit(ctx))

	fresh := suite.factory.Create()
	_, err := fresh.ParcelRepository().Get(ctx, p.ID())
	suite.Require().NoError(err)
	inbox, err := fresh.NotificationRepository().ListByRecipient(ctx, "rudo@example.com", 0)
	suite.Require().NoError(err)
	suite.Len(inbox, 1)
	ledger, err := fresh.RevenueRepository().Get(ctx)
	suite.Require().NoError(err)
	suite.Equal("30.00", ledger.Total().String())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEverything() {
	ctx := context.Background()
	p := suite.createParcel()
	uow := suite.factory.CreateGorm()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	suite.creditRevenue(ctx, uow.RevenueRepository(), "30")
	suite.Require().NoError(uow.Rollback(ctx))
	suite.Empty(uow.TrackedIDs())

	fresh := suite.factory.Create()
	_, err := fresh.ParcelRepository().Get(ctx, p.ID())
	suite.Require().Error(err, "parcel should not exist after rollback")
	ledger, err := fresh.RevenueRepository().Get(ctx)
	suite.Require().NoError(err)
	suite.True(ledger.Total().IsZero())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_Isolation() {
	ctx := context.Background()
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	p1 := suite.createParcel()
	p2 := suite.createParcel()

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))
	suite.Require().NoError(uow1.ParcelRepository().Add(ctx, p1))
	suite.Require().NoError(uow2.ParcelRepository().Add(ctx, p2))

	_, err := uow1.ParcelRepository().Get(ctx, p2.ID())
	suite.Require().Error(err, "uow1 should not see p2")
	_, err = uow2.ParcelRepository().Get(ctx, p1.ID())
	suite.Require().Error(err, "uow2 should not see p1")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.ParcelRepository().Get(ctx, p1.ID())
	suite.Require().NoError(err)
	_, err = fresh.ParcelRepository().Get(ctx, p2.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	p := suite.createParcel()

	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))

	_, err := suite.factory.Create().ParcelRepository().Get(ctx, p.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRevenue_ConcurrentCreditsSerialize() {
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uow := suite.factory.Create()
			suite.NoError(uow.Begin(ctx))
			defer func() {
				_ = uow.Rollback(ctx)
			}()
			suite.creditRevenue(ctx, uow.RevenueRepository(), "10")
			suite.NoError(uow.Commit(ctx))
		}()
	}
	wg.Wait()

	ledger, err := suite.factory.Create().RevenueRepository().Get(ctx)
	suite.Require().NoError(err)
	suite.Equal("50.00", ledger.Total().String())
}

// creditRevenue avoids Require so it can run on other goroutines.
func (suite *UnitOfWorkIntegrationTestSuite) creditRevenue(ctx context.Context, repo ports.RevenueRepository, amount string) {
	ledger, err := repo.GetForUpdate(ctx)
	if !suite.NoError(err) {
		return
	}
	next, err := ledger.Apply([]effect.Effect{effect.Revenue{Delta: kernel.MustMoney(amount)}}, time.Now())
	if !suite.NoError(err) {
		return
	}
	suite.NoError(repo.Save(ctx, next))
}

func (suite *UnitOfWorkIntegrationTestSuite) createParcel() *parcel.Parcel {
	suite.seq++
	tn, err := kernel.TrackingNumberFromString(fmt.Sprintf("PCL%010d", suite.seq))
	suite.Require().NoError(err)

	p, err := parcel.NewParcel(parcel.NewParcelParams{
		ID:                  kernel.NewUUID(),
		TrackingNumber:      tn,
		Sender:              parcel.Party{Name: "Tendai", Email: "tendai@example.com"},
		Receiver:            parcel.Party{Name: "Rudo", Email: "rudo@example.com"},
		SenderBranchID:      "harare",
		DestinationBranchID: "bulawayo",
		PaymentMethod:       parcel.PaymentMethodPrepaid,
		Amount:              kernel.MustMoney("30"),
		FloatAmount:         kernel.Zero(),
		Actor:               parcel.Actor{ID: "op-1", BranchID: "harare"},
		CreatedAt:           time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) createNotification(recipient string) *notification.Notification {
	n, err := notification.NewNotification(kernel.NewUUID(), recipient, "Parcel Registered", "", time.Now())
	suite.Require().NoError(err)
	return n
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
