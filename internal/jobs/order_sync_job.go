package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// MinSyncInterval is the tightest interval the synchronizer accepts.
const MinSyncInterval = 5 * time.Second

// SyncHandler runs one synchronizer iteration.
type SyncHandler interface {
	Handle(ctx context.Context, cmd commands.SyncPendingOrdersCommand) (commands.SyncReport, error)
}

// OrderSyncJob pushes orders awaiting registration to the remote system on a
// fixed interval. Iterations never overlap: a tick that arrives while the
// previous iteration still runs is skipped, and a panic inside an iteration
// is recovered. Stop cancels the running iteration and waits for it to return.
type OrderSyncJob struct {
	handler   SyncHandler
	interval  time.Duration
	batchSize int
	cron      *cron.Cron
	job       cron.Job
	logger    *slog.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	initial sync.WaitGroup
}

// NewOrderSyncJob creates the job. An interval below MinSyncInterval is
// raised to it; a non-positive batch size falls back to the default.
func NewOrderSyncJob(handler SyncHandler, interval time.Duration, batchSize int, logger *slog.Logger) *OrderSyncJob {
	logger = logger.With("component", "order_sync_job")

	if interval < MinSyncInterval {
		logger.Warn("sync interval below the floor, using the floor", "requested", interval, "floor", MinSyncInterval)
		interval = MinSyncInterval
	}
	if batchSize <= 0 {
		batchSize = commands.DefaultSyncBatchSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	j := &OrderSyncJob{
		handler:   handler,
		interval:  interval,
		batchSize: batchSize,
		cron:      cron.New(),
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}

	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))
	j.job = cron.NewChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)).Then(cron.FuncJob(j.run))
	return j
}

// Interval returns the effective interval after the floor was applied.
func (j *OrderSyncJob) Interval() time.Duration {
	return j.interval
}

// Start schedules the job and runs the first iteration right away.
func (j *OrderSyncJob) Start() error {
	j.cron.Schedule(cron.Every(j.interval), j.job)
	j.cron.Start()

	j.initial.Add(1)
	go func() {
		defer j.initial.Done()
		j.job.Run()
	}()

	j.logger.InfoContext(j.ctx, "Order sync job started", "interval", j.interval, "batch_size", j.batchSize)
	return nil
}

// Stop cancels the running iteration and waits until it returns.
func (j *OrderSyncJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.initial.Wait()
	j.logger.InfoContext(context.Background(), "Order sync job stopped")
}

// RunOnce runs a single iteration with ctx.
func (j *OrderSyncJob) RunOnce(ctx context.Context) (commands.SyncReport, error) {
	cmd, err := commands.NewSyncPendingOrdersCommand(j.batchSize)
	if err != nil {
		return commands.SyncReport{}, err
	}
	return j.handler.Handle(ctx, cmd)
}

func (j *OrderSyncJob) run() {
	if j.ctx.Err() != nil {
		return
	}

	if _, err := j.RunOnce(j.ctx); err != nil {
		switch {
		case errors.Is(err, errs.ErrNotConfigured):
			j.logger.WarnContext(j.ctx, "Order sync skipped, record store is not configured")
		case errors.Is(err, context.Canceled):
			j.logger.InfoContext(j.ctx, "Order sync iteration cancelled")
		default:
			j.logger.ErrorContext(j.ctx, "Order sync iteration failed", "error", err)
		}
	}
}
