package cmd

import (
	"context"
	"log/slog"

	httpin "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/out/memory"
	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/adapters/out/postgres/notificationrepo"
	"parceltrack/internal/adapters/out/redis/broadcastlog"
	"parceltrack/internal/core/application/syncengine"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
	machine    *services.ParcelStateMachine
	redis      *redis.Client
	engine     *syncengine.Engine
	replica    *syncengine.Replica
	logger     *slog.Logger

	unsubscribe []func()
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      kernel.SystemClock{},
		logger:     logger,
	}
	c.machine = services.NewParcelStateMachine(c.clock, cfg.AdminRecipient)

	var (
		log  ports.BroadcastLog
		wake ports.WakeSignal
	)
	if cfg.UsesRedis() {
		c.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		log = broadcastlog.NewLog(c.redis, cfg.SyncLogKey, cfg.SyncLogCapacity, logger)
		wake = broadcastlog.NewWakeSignal(c.redis, cfg.SyncChannel)
	} else {
		log = memory.NewBroadcastLog(cfg.SyncLogCapacity)
		wake = memory.NewWakeSignal()
	}
	c.engine = syncengine.NewEngine(log, wake, logger)

	var replicaUoW syncengine.ReplicaUoWFactory = FuncReplicaUoWFactory(func() syncengine.ReplicaUoW {
		return c.uowFactory.Create()
	})
	c.replica = syncengine.NewReplica(replicaUoW, c.clock, logger)
	return c
}

// StartSync subscribes the replica and the notification fan-out, then
// starts the engine's wake loop.
func (c *CompositionRoot) StartSync(ctx context.Context) error {
	fanout := syncengine.NewNotificationFanout(notificationrepo.NewGormNotificationRepository(c.gormDB), c.logger)
	c.unsubscribe = append(c.unsubscribe,
		c.engine.Subscribe("replica", c.replica.Apply),
		c.engine.Subscribe("notifications", fanout.Apply),
	)
	return c.engine.Start(ctx)
}

// StopSync stops the engine and releases the Redis connection, if any.
func (c *CompositionRoot) StopSync() {
	c.engine.Stop()
	for _, unsubscribe := range c.unsubscribe {
		unsubscribe()
	}
	c.unsubscribe = nil

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.logger.Error("Failed to close redis client", "error", err)
		}
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.engine, c.cfg.SyncPollInterval, c.logger)
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.parcelUoWFactory(), c.machine, c.engine, c.cfg.TrackingPrefix, c.logger)
}

func (c *CompositionRoot) CreateTransitionParcelCommandHandler() commands.TransitionParcelCommandHandler {
	return commands.NewTransitionParcelCommandHandler(c.parcelUoWFactory(), c.machine, c.engine, c.logger)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.parcelUoWFactory(), c.machine, c.engine, c.logger)
}

func (c *CompositionRoot) CreateAddFloatAmountCommandHandler() commands.AddFloatAmountCommandHandler {
	return commands.NewAddFloatAmountCommandHandler(c.parcelUoWFactory(), c.machine, c.engine, c.logger)
}

func (c *CompositionRoot) CreateDismissNotificationCommandHandler() commands.DismissNotificationCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDismissNotificationCommandHandler(f)
}

func (c *CompositionRoot) CreatePushEnvelopeCommandHandler() commands.PushEnvelopeCommandHandler {
	return commands.NewPushEnvelopeCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackParcelQueryHandler() queries.TrackParcelQueryHandler {
	return queries.NewTrackParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRevenueQueryHandler() queries.GetRevenueQueryHandler {
	return queries.NewGetRevenueQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBranchReportQueryHandler() queries.GetBranchReportQueryHandler {
	return queries.NewGetBranchReportQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateGetSyncLogQueryHandler() queries.GetSyncLogQueryHandler {
	return queries.NewGetSyncLogQueryHandler(c.engine, c.replica, c.clock)
}

// CreateHTTPHandlers collects every use case the HTTP server dispatches to.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	createParcel := c.CreateCreateParcelCommandHandler()
	transitionParcel := c.CreateTransitionParcelCommandHandler()
	confirmPayment := c.CreateConfirmPaymentCommandHandler()
	addFloatAmount := c.CreateAddFloatAmountCommandHandler()
	dismissNotification := c.CreateDismissNotificationCommandHandler()
	pushEnvelope := c.CreatePushEnvelopeCommandHandler()

	return httpin.Handlers{
		CreateParcel:        &createParcel,
		TransitionParcel:    &transitionParcel,
		ConfirmPayment:      &confirmPayment,
		AddFloatAmount:      &addFloatAmount,
		DismissNotification: &dismissNotification,
		PushEnvelope:        &pushEnvelope,

		GetParcel:        c.CreateGetParcelQueryHandler(),
		TrackParcel:      c.CreateTrackParcelQueryHandler(),
		ListParcels:      c.CreateListParcelsQueryHandler(),
		GetNotifications: c.CreateGetNotificationsQueryHandler(),
		GetRevenue:       c.CreateGetRevenueQueryHandler(),
		GetBranchReport:  c.CreateGetBranchReportQueryHandler(),
		GetSyncLog:       c.CreateGetSyncLogQueryHandler(),
	}
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncReplicaUoWFactory func() syncengine.ReplicaUoW

func (f FuncReplicaUoWFactory) Create() syncengine.ReplicaUoW {
	return f()
}
