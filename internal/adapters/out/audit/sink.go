// Package audit writes the operational log (bitacora) to its own database.
//
// The log lives on a separate connection pool from the record store so a
// failing audit database never blocks order handling. Writes are synchronous
// and bounded by a timeout; a failed write is logged and counted, never
// returned to the caller.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/metrics"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const DefaultWriteTimeout = 3 * time.Second

// EntryDTO is one row of the audit_log table.
type EntryDTO struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	UserID        int       `gorm:"not null"`
	Action        string    `gorm:"type:varchar(64);not null"`
	Params        string    `gorm:"not null;default:''"`
	CorrelationID *string   `gorm:"type:varchar(36)"`
	ErrorText     string    `gorm:"not null;default:''"`
	CreatedAt     time.Time `gorm:"not null"`
}

func (EntryDTO) TableName() string {
	return "audit_log"
}

// Open connects to the audit database on a pool of its own. Statement
// logging is off: failed writes are reported by the sink.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

// EnsureSchema creates the audit_log table when it does not exist.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&EntryDTO{}); err != nil {
		return fmt.Errorf("migrate audit_log: %w", err)
	}
	return nil
}

// GormSink implements ports.AuditSink on the audit_log table.
type GormSink struct {
	db      *gorm.DB
	logger  *slog.Logger
	timeout time.Duration
	now     func() time.Time
}

var _ ports.AuditSink = (*GormSink)(nil)

func NewGormSink(db *gorm.DB, logger *slog.Logger, timeout time.Duration) *GormSink {
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	return &GormSink{
		db:      db,
		logger:  logger.With("component", "audit"),
		timeout: timeout,
		now:     time.Now,
	}
}

// Append writes entry. The write survives cancellation of ctx, so an
// aborted request still leaves its trace.
func (s *GormSink) Append(ctx context.Context, entry ports.AuditEntry) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	row := EntryDTO{
		UserID:    entry.UserID,
		Action:    entry.Action,
		Params:    entry.Params,
		ErrorText: entry.ErrorText,
		CreatedAt: s.now().UTC(),
	}
	if !entry.CorrelationID.IsZero() {
		correlationID := entry.CorrelationID.String()
		row.CorrelationID = &correlationID
	}

	if err := s.db.WithContext(writeCtx).Create(&row).Error; err != nil {
		metrics.IncAuditFailure()
		s.logger.ErrorContext(ctx, "failed to write audit entry",
			"action", entry.Action,
			"params", entry.Params,
			"error", err,
		)
	}
}

// LogSink writes entries to the application log only. It is used when the
// audit database is disabled or not configured.
type LogSink struct {
	logger *slog.Logger
}

var _ ports.AuditSink = (*LogSink)(nil)

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger.With("component", "audit")}
}

func (s *LogSink) Append(ctx context.Context, entry ports.AuditEntry) {
	attrs := []any{
		"user_id", entry.UserID,
		"action", entry.Action,
		"params", entry.Params,
	}
	if !entry.CorrelationID.IsZero() {
		attrs = append(attrs, "correlation_id", entry.CorrelationID.String())
	}
	if entry.ErrorText != "" {
		attrs = append(attrs, "error_text", entry.ErrorText)
	}
	s.logger.InfoContext(ctx, "audit", attrs...)
}
