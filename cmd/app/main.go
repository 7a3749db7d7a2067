package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordersync/cmd"
	"ordersync/internal/adapters/out/audit"
	"ordersync/internal/adapters/out/postgres"
	"ordersync/internal/jobs"

	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := openRecordStore(ctx, configs, logger)
	auditDB := openAuditStore(ctx, configs, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, auditDB, logger)

	var jobManager *jobs.JobManager
	if configs.SyncEnabled {
		jobManager = app.CreateJobManager()
		if err = jobManager.StartAll(); err != nil {
			log.Fatalf("Failed to start jobs: %v", err)
		}
	} else {
		logger.Warn("order synchronizer is disabled")
	}

	startWebServer(ctx, app, configs.HTTPPort, logger)

	if jobManager != nil {
		jobManager.StopAll()
	}
	closeStores(gormDB, auditDB, logger)
}

// openRecordStore returns nil when the connection settings are missing; the
// service then answers configuration errors instead of refusing to start.
func openRecordStore(ctx context.Context, configs cmd.Config, logger *slog.Logger) *gorm.DB {
	if !configs.DBConfigured() {
		logger.Warn("record store is not configured, store backed operations will fail")
		return nil
	}

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to the record store: %v", err)
	}

	if err = postgres.Migrate(ctx, gormDB); err != nil {
		log.Fatalf("Error migrating the record store: %v", err)
	}

	logger.Info("record store connected", "host", configs.DBHost, "database", configs.DBName)
	return gormDB
}

// openAuditStore returns nil when audit rows should go to the log instead.
func openAuditStore(ctx context.Context, configs cmd.Config, logger *slog.Logger) *gorm.DB {
	if !configs.AuditEnabled || !configs.DBConfigured() {
		logger.Warn("audit log table disabled, audit entries are written to the log")
		return nil
	}

	auditDB, err := audit.Open(configs.DSN())
	if err == nil {
		err = audit.EnsureSchema(ctx, auditDB)
	}
	if err != nil {
		logger.Error("audit store unavailable, audit entries are written to the log", "error", err)
		closeStore(auditDB, "audit", logger)
		return nil
	}

	return auditDB
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, logger *slog.Logger) {
	e, err := app.CreateRouter()
	if err != nil {
		log.Fatalf("Error building the HTTP router: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()
	logger.Info("http server started", "port", port)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
}

func closeStores(gormDB, auditDB *gorm.DB, logger *slog.Logger) {
	closeStore(gormDB, "record", logger)
	closeStore(auditDB, "audit", logger)
}

func closeStore(db *gorm.DB, name string, logger *slog.Logger) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		if err = sqlDB.Close(); err != nil {
			logger.Error("closing store failed", "store", name, "error", err)
		}
	}
}
