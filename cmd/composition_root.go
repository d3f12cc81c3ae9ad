package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/in/ws"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/pgnotify"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/communicationrepo"
	"fulfillment/internal/adapters/out/postgres/printjobrepo"
	"fulfillment/internal/adapters/out/postgres/settingsrepo"
	"fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/adapters/out/redisblob"
	"fulfillment/internal/adapters/out/render"
	"fulfillment/internal/core/application/services"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	domainservices "fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/background"
	"fulfillment/internal/pkg/clock"
)

// Infrastructure holds the connections opened by main.
type Infrastructure struct {
	DB            *gorm.DB
	Redis         redis.Cmdable
	Notifications rabbitmq.Publisher
	Events        kafka.Producer
}

// CompositionRoot owns the long-lived components and builds the handlers
// around them.
type CompositionRoot struct {
	cfg    Config
	infra  Infrastructure
	logger *slog.Logger
	clock  clock.Clock

	uowFactory *postgres.GormUnitOfWorkFactory
	pool       *background.Pool
	hub        *ws.Hub
	relay      *pgnotify.Relay
	blobs      ports.BlobStore

	printSettings        *services.PrintSettingsProvider
	notificationSettings *services.NotificationSettingsProvider
	engine               *services.PrintRoutingEngine
	dispatcher           *services.NotificationDispatcher
}

func NewCompositionRoot(cfg Config, infra Infrastructure, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		cfg:        cfg,
		infra:      infra,
		logger:     logger,
		clock:      clock.System{},
		uowFactory: postgres.NewGormUnitOfWorkFactory(infra.DB),
		pool:       background.NewPool(cfg.WorkerPoolSize, cfg.WorkerQueueSize, logger),
		blobs:      redisblob.NewStore(infra.Redis, cfg.DocumentKeyPrefix, cfg.DocumentTTL),
	}

	c.hub = ws.NewHub(c.CreateUpdatePrintJobStatusCommandHandler(), logger)

	var broadcaster ports.JobBroadcaster = c.hub
	if cfg.PgNotifyEnabled {
		c.relay = pgnotify.NewRelay(
			cfg.DSN(),
			cfg.PgNotifyChannel,
			pgnotify.NewGormNotifier(infra.DB),
			printjobrepo.NewGormPrintJobRepository(infra.DB),
			c.hub,
			logger,
		)
		broadcaster = c.relay
	}

	c.printSettings = services.NewPrintSettingsProvider(
		settingsrepo.NewGormPrintSettingsRepository(infra.DB), c.clock, logger,
	)
	c.notificationSettings = services.NewNotificationSettingsProvider(
		settingsrepo.NewGormNotificationSettingsRepository(infra.DB), logger,
	)

	c.engine = services.NewPrintRoutingEngine(services.RoutingEngineDeps{
		Settings:    c.printSettings,
		Renderer:    render.NewRegistry(),
		Blobs:       c.blobs,
		UoWFactory:  c.printJobUoWFactory(),
		Broadcaster: broadcaster,
		DocumentURL: documentURL,
		Clock:       c.clock,
		Logger:      logger,
	})

	c.dispatcher = services.NewNotificationDispatcher(
		c.notificationSettings,
		rabbitmq.NewTransport(infra.Notifications, cfg.RabbitMQExchange),
		communicationrepo.NewGormCommunicationRepository(infra.DB),
		cfg.Store,
		c.clock,
		logger,
	)

	return c
}

func documentURL(key string) string {
	return httpin.BaseURL + "/print/documents/" + key
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(commands.ChangeOrderStatusDeps{
		UoWFactory: c.orderUoWFactory(),
		Policy:     domainservices.DefaultTransitionPolicy(),
		Tasks:      c.pool,
		Printer:    c.engine,
		Notifier:   c.dispatcher,
		Publisher:  kafka.NewOrderEventPublisher(c.infra.Events, c.cfg.KafkaOrderStatusTopic),
		Store:      c.cfg.Store,
		Clock:      c.clock,
		Logger:     c.logger,
	})
}

func (c *CompositionRoot) CreateQueuePrintJobCommandHandler() commands.QueuePrintJobCommandHandler {
	return commands.NewQueuePrintJobCommandHandler(c.orderUoWFactory(), c.engine, c.cfg.Store, c.clock)
}

func (c *CompositionRoot) CreateUpdatePrintJobStatusCommandHandler() commands.UpdatePrintJobStatusCommandHandler {
	return commands.NewUpdatePrintJobStatusCommandHandler(c.printJobUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateRetryPrintJobCommandHandler() commands.RetryPrintJobCommandHandler {
	return commands.NewRetryPrintJobCommandHandler(c.printJobUoWFactory(), c.broadcaster(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateDeletePrintJobCommandHandler() commands.DeletePrintJobCommandHandler {
	return commands.NewDeletePrintJobCommandHandler(c.printJobUoWFactory())
}

func (c *CompositionRoot) CreateRepushStuckPrintJobsCommandHandler() commands.RepushStuckPrintJobsCommandHandler {
	return commands.NewRepushStuckPrintJobsCommandHandler(c.printJobUoWFactory(), c.broadcaster(), c.clock, c.logger)
}

func (c *CompositionRoot) CreatePurgePrintJobsCommandHandler() commands.PurgePrintJobsCommandHandler {
	return commands.NewPurgePrintJobsCommandHandler(c.printJobUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateUpdatePrintSettingsCommandHandler() commands.UpdatePrintSettingsCommandHandler {
	return commands.NewUpdatePrintSettingsCommandHandler(c.printSettings)
}

func (c *CompositionRoot) CreateUpdateNotificationSettingsCommandHandler() commands.UpdateNotificationSettingsCommandHandler {
	return commands.NewUpdateNotificationSettingsCommandHandler(c.notificationSettings)
}

func (c *CompositionRoot) CreateGetNextStatusesQueryHandler() queries.GetNextStatusesQueryHandler {
	return queries.NewGetNextStatusesQueryHandler(c.infra.DB)
}

func (c *CompositionRoot) CreateGetPendingPrintJobsQueryHandler() queries.GetPendingPrintJobsQueryHandler {
	return queries.NewGetPendingPrintJobsQueryHandler(c.infra.DB, c.logger)
}

func (c *CompositionRoot) CreateGetPrintJobHistoryQueryHandler() queries.GetPrintJobHistoryQueryHandler {
	return queries.NewGetPrintJobHistoryQueryHandler(c.infra.DB)
}

func (c *CompositionRoot) CreateGetPrintJobStatsQueryHandler() queries.GetPrintJobStatsQueryHandler {
	return queries.NewGetPrintJobStatsQueryHandler(c.infra.DB, c.clock)
}

func (c *CompositionRoot) CreateGetPrintSettingsQueryHandler() queries.GetPrintSettingsQueryHandler {
	return queries.NewGetPrintSettingsQueryHandler(c.printSettings)
}

func (c *CompositionRoot) CreateGetNotificationSettingsQueryHandler() queries.GetNotificationSettingsQueryHandler {
	return queries.NewGetNotificationSettingsQueryHandler(c.notificationSettings)
}

// CreateRouter builds the HTTP surface, agent WebSocket included.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		ChangeOrderStatus:          c.CreateChangeOrderStatusCommandHandler(),
		GetNextStatuses:            c.CreateGetNextStatusesQueryHandler(),
		QueuePrintJob:              c.CreateQueuePrintJobCommandHandler(),
		GetPendingPrintJobs:        c.CreateGetPendingPrintJobsQueryHandler(),
		GetPrintJobHistory:         c.CreateGetPrintJobHistoryQueryHandler(),
		GetPrintJobStats:           c.CreateGetPrintJobStatsQueryHandler(),
		UpdatePrintJobStatus:       c.CreateUpdatePrintJobStatusCommandHandler(),
		RetryPrintJob:              c.CreateRetryPrintJobCommandHandler(),
		DeletePrintJob:             c.CreateDeletePrintJobCommandHandler(),
		GetPrintSettings:           c.CreateGetPrintSettingsQueryHandler(),
		UpdatePrintSettings:        c.CreateUpdatePrintSettingsCommandHandler(),
		GetNotificationSettings:    c.CreateGetNotificationSettingsQueryHandler(),
		UpdateNotificationSettings: c.CreateUpdateNotificationSettingsCommandHandler(),
		Documents:                  c.blobs,
	}, c.logger)

	return httpin.NewRouter(ctx, httpin.RouterConfig{
		Server:   server,
		AgentHub: c.hub,
		Logger:   c.logger,
	})
}

// CreateJobManager schedules the re-push, purge and settings refresh jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.Config{
			RepushSchedule:  c.cfg.RepushSchedule,
			StuckThreshold:  c.cfg.StuckThreshold,
			PurgeSchedule:   c.cfg.PurgeSchedule,
			Retention:       c.cfg.JobRetention,
			RefreshSchedule: c.cfg.RefreshSchedule,
		},
		c.CreateRepushStuckPrintJobsCommandHandler(),
		c.CreatePurgePrintJobsCommandHandler(),
		map[string]jobs.Refresher{
			"print":        c.printSettings,
			"notification": c.notificationSettings,
		},
		c.logger,
	)
}

// WarmUp loads both settings snapshots so the first request does not pay for it.
func (c *CompositionRoot) WarmUp(ctx context.Context) error {
	return errors.Join(
		c.printSettings.Refresh(ctx),
		c.notificationSettings.Refresh(ctx),
	)
}

// RunRelay listens for cross-replica pushes until ctx is done. It returns
// immediately when the relay is disabled.
func (c *CompositionRoot) RunRelay(ctx context.Context) error {
	if c.relay == nil {
		return nil
	}
	return c.relay.Run(ctx)
}

// Close disconnects the agents and waits for background tasks.
func (c *CompositionRoot) Close(ctx context.Context) error {
	c.hub.Close()
	return c.pool.Close(ctx)
}

func (c *CompositionRoot) broadcaster() ports.JobBroadcaster {
	if c.relay != nil {
		return c.relay
	}
	return c.hub
}

func (c *CompositionRoot) orderUoWFactory() ports.OrderUoWFactory {
	return FuncOrderUoWFactory(func() ports.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) printJobUoWFactory() ports.PrintJobUoWFactory {
	return FuncPrintJobUoWFactory(func() ports.PrintJobUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() ports.OrderUoW

func (f FuncOrderUoWFactory) Create() ports.OrderUoW {
	return f()
}

type FuncPrintJobUoWFactory func() ports.PrintJobUoW

func (f FuncPrintJobUoWFactory) Create() ports.PrintJobUoW {
	return f()
}
