package bootstrap

import (
	"context"
	"fmt"

	"ai-workspace-be/internal/config"
	"ai-workspace-be/internal/controller"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/pkg/metrics"
	"ai-workspace-be/internal/repository/contract"
	"ai-workspace-be/internal/repository/implementation"
	"ai-workspace-be/internal/repository/memory"
	"ai-workspace-be/internal/repository/redisstore"
	"ai-workspace-be/internal/scheduler"
	"ai-workspace-be/internal/service"
	"ai-workspace-be/pkg/database"
	"ai-workspace-be/pkg/filestore"
	"ai-workspace-be/pkg/llm"
	pktNats "ai-workspace-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const sweepTaskName = "upload-sweep"

type Container struct {
	// Controllers
	FileController   controller.IFileController
	ChatController   controller.IChatController
	HealthController controller.IHealthController

	// Services
	FileService     service.IFileService
	AnalysisService service.IAnalysisService
	ChatService     service.IChatService
	UserService     service.IUserService
	SweepService    service.ISweepService
	ConsumerService service.IConsumerService

	Store     contract.RecordStore
	Logger    logger.ILogger
	Scheduler *scheduler.Scheduler

	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
	audit   *logger.ZapLogger
}

// NewRecordStore opens the backend selected by cfg.Driver.
func NewRecordStore(ctx context.Context, cfg config.StoreConfig) (contract.RecordStore, error) {
	switch cfg.Driver {
	case "", memory.DriverName:
		return memory.NewRecordStore(), nil
	case database.DriverPostgres:
		db, err := database.NewGormDBFromDSN(cfg.Connection)
		if err != nil {
			return nil, err
		}
		return implementation.NewGormRecordStore(db, database.DriverPostgres), nil
	case database.DriverSQLite:
		db, err := database.NewSQLiteDB(cfg.Connection)
		if err != nil {
			return nil, err
		}
		// sqlite files are local and usually fresh, so the schema is applied on open
		if err := implementation.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate sqlite store: %w", err)
		}
		return implementation.NewGormRecordStore(db, database.DriverSQLite), nil
	case redisstore.DriverName:
		rdb := redisstore.NewClient(cfg.Connection)
		store := redisstore.NewRecordStore(rdb, cfg.KeyPrefix)
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func NewContainer(cfg *config.Config, store contract.RecordStore, provider llm.LLMProvider, sysLogger logger.ILogger) (*Container, error) {
	files, err := filestore.New(cfg.Upload.Dir)
	if err != nil {
		return nil, err
	}

	if cfg.Telemetry.MetricsEnabled {
		provider = metrics.InstrumentProvider(provider)
	}

	// 1. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	var forwarder service.EventForwarder
	var natsPub *pktNats.Publisher
	if cfg.Events.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "NATS unavailable, events stay in process", map[string]interface{}{
				"url":   cfg.Events.NatsURL,
				"error": err.Error(),
			})
		} else {
			forwarder = natsPub
		}
	}

	audit := logger.NewIsolatedLogger(cfg.Events.AuditLogPath)
	publisherService := service.NewPublisherService(cfg.Events.Topic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Events.Topic, audit, sysLogger, forwarder)

	// 2. Services
	analysisService := service.NewAnalysisService(store, files, provider, publisherService, sysLogger)
	fileService := service.NewFileService(store, files, analysisService, publisherService, sysLogger, cfg.Upload.MaxBytes)
	chatService := service.NewChatService(store, provider, publisherService, sysLogger)
	userService := service.NewUserService(store, publisherService, sysLogger)
	sweepService := service.NewSweepService(store, files, publisherService, sysLogger, cfg.Upload.SweepGrace)

	// 3. Scheduler
	sched := scheduler.New(sysLogger)
	err = sched.Register(scheduler.Task{
		Name:     sweepTaskName,
		Interval: cfg.Upload.SweepInterval,
		Handler: func(ctx context.Context) error {
			_, err := sweepService.RunOnce(ctx)
			return err
		},
	})
	if err != nil {
		return nil, err
	}

	return &Container{
		FileController:   controller.NewFileController(fileService, analysisService),
		ChatController:   controller.NewChatController(chatService),
		HealthController: controller.NewHealthController(store),

		FileService:     fileService,
		AnalysisService: analysisService,
		ChatService:     chatService,
		UserService:     userService,
		SweepService:    sweepService,
		ConsumerService: consumerService,

		Store:     store,
		Logger:    sysLogger,
		Scheduler: sched,

		pubSub:  pubSub,
		natsPub: natsPub,
		audit:   audit,
	}, nil
}

// Start runs the event consumer and the scheduler until ctx is cancelled or Close is called.
func (c *Container) Start(ctx context.Context) error {
	if err := c.ConsumerService.Consume(ctx); err != nil {
		return fmt.Errorf("start event consumer: %w", err)
	}
	c.Scheduler.Start()
	return nil
}

func (c *Container) Close() error {
	c.Scheduler.Stop()
	if err := c.pubSub.Close(); err != nil {
		c.Logger.Warn("BOOTSTRAP", "Failed to close event bus", map[string]interface{}{"error": err.Error()})
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	_ = c.audit.Sync()
	return c.Store.Close()
}
