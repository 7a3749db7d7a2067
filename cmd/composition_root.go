package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	httpin "ordersync/internal/adapters/in/http"
	"ordersync/internal/adapters/out/audit"
	"ordersync/internal/adapters/out/postgres"
	"ordersync/internal/adapters/out/remote"
	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/application/usecases/queries"
	"ordersync/internal/core/ports"
	"ordersync/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot builds the handlers, the HTTP router and the jobs from the
// configuration and the opened connections. gormDB is nil when the record
// store is not configured; auditDB is nil when audit rows go to the log.
type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	remote     *remote.Client
	syncRemote *remote.Client
	auditSink  ports.AuditSink
	clock      ports.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, auditDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	var uowFactory ports.UnitOfWorkFactory = postgres.NotConfiguredUnitOfWorkFactory{}
	if gormDB != nil {
		uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	}

	var auditSink ports.AuditSink = audit.NewLogSink(logger)
	if auditDB != nil {
		auditSink = audit.NewGormSink(auditDB, logger, configs.AuditWriteTimeout)
	}

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: uowFactory,
		remote:     remote.NewClient(configs.RemoteBaseURL, &http.Client{Timeout: configs.RemoteTimeout}, logger),
		syncRemote: remote.NewClient(configs.RemoteBaseURL, &http.Client{Timeout: configs.SyncRemoteTimeout}, logger),
		auditSink:  auditSink,
		clock:      systemClock{},
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(
		c.uowFactory, c.remote, c.auditSink, c.clock, c.logger, c.configs.DuplicateCheckEnabled,
	)
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() *commands.UpdateOrderCommandHandler {
	h := commands.NewUpdateOrderCommandHandler(c.uowFactory, c.clock)
	return &h
}

func (c *CompositionRoot) CreateStartOrderCommandHandler() *commands.StartOrderCommandHandler {
	h := commands.NewStartOrderCommandHandler(c.uowFactory, c.remote, c.auditSink, c.logger)
	return &h
}

func (c *CompositionRoot) CreateStopOrderCommandHandler() *commands.StopOrderCommandHandler {
	h := commands.NewStopOrderCommandHandler(c.uowFactory, c.remote, c.auditSink, c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() *commands.DeleteOrderCommandHandler {
	h := commands.NewDeleteOrderCommandHandler(c.uowFactory, c.remote, c.auditSink, c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateCreateReelEventCommandHandler() *commands.CreateReelEventCommandHandler {
	h := commands.NewCreateReelEventCommandHandler(c.uowFactory, c.remote, c.auditSink, c.clock, c.logger)
	return &h
}

// CreateSyncPendingOrdersCommandHandler uses the remote client with the
// longer synchronizer timeout.
func (c *CompositionRoot) CreateSyncPendingOrdersCommandHandler() *commands.SyncPendingOrdersCommandHandler {
	h := commands.NewSyncPendingOrdersCommandHandler(c.uowFactory, c.syncRemote, c.auditSink, c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateValidateOrderExistsQueryHandler() queries.ValidateOrderExistsQueryHandler {
	return queries.NewValidateOrderExistsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSlitterMachinesQueryHandler() queries.GetSlitterMachinesQueryHandler {
	return queries.NewGetSlitterMachinesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHealth() *httpin.Health {
	var db httpin.Pinger
	if c.gormDB != nil {
		gormDB := c.gormDB
		db = httpin.PingFunc(func(ctx context.Context) error {
			return postgres.Ping(ctx, gormDB)
		})
	}
	return httpin.NewHealth(db, c.remote, c.clock, c.logger)
}

// CreateRouter builds the echo instance serving the API.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		UpdateOrder:         c.CreateUpdateOrderCommandHandler(),
		StartOrder:          c.CreateStartOrderCommandHandler(),
		StopOrder:           c.CreateStopOrderCommandHandler(),
		DeleteOrder:         c.CreateDeleteOrderCommandHandler(),
		CreateReelEvent:     c.CreateCreateReelEventCommandHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		GetAllOrders:        c.CreateGetAllOrdersQueryHandler(),
		ValidateOrderExists: c.CreateValidateOrderExistsQueryHandler(),
		GetSlitterMachines:  c.CreateGetSlitterMachinesQueryHandler(),
	})
	return httpin.NewRouter(server, c.CreateHealth(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSyncPendingOrdersCommandHandler(),
		c.configs.SyncInterval,
		c.configs.SyncBatchSize,
		c.logger,
	)
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
