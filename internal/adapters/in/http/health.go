package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	dbCheckTimeout     = 2 * time.Second
	remoteCheckTimeout = 3 * time.Second
)

// Pinger checks that a dependency answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type CheckResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type HealthChecks struct {
	DB       CheckResult `json:"db"`
	External CheckResult `json:"external"`
}

type HealthStatus struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    *HealthChecks `json:"checks,omitempty"`
}

// Health serves the liveness and readiness probes. A nil db means the record
// store was not configured; the service is then never ready.
type Health struct {
	db     Pinger
	remote Pinger
	clock  ports.Clock
	logger *slog.Logger
}

func NewHealth(db, remote Pinger, clock ports.Clock, logger *slog.Logger) *Health {
	return &Health{
		db:     db,
		remote: remote,
		clock:  clock,
		logger: logger.With("component", "health"),
	}
}

// Register adds /api/health/live, /api/health/ready and /health.
func (h *Health) Register(e *echo.Echo) {
	e.GET("/api/health/live", h.Live)
	e.GET("/api/health/ready", h.Ready)
	e.GET("/health", h.Ready)
}

// Live always answers 200 while the process serves requests.
func (h *Health) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{Status: "Alive", Timestamp: h.clock.Now().UTC()})
}

// Ready answers 200 when the record store accepts a connection within 2s and
// the remote system answers within 3s, 503 otherwise.
func (h *Health) Ready(c echo.Context) error {
	ctx := c.Request().Context()

	checks := HealthChecks{
		DB:       h.check(ctx, "db", h.db, dbCheckTimeout),
		External: h.check(ctx, "external", h.remote, remoteCheckTimeout),
	}

	status, code := "Ready", http.StatusOK
	if !checks.DB.OK || !checks.External.OK {
		status, code = "NotReady", http.StatusServiceUnavailable
	}

	return c.JSON(code, HealthStatus{
		Status:    status,
		Timestamp: h.clock.Now().UTC(),
		Checks:    &checks,
	})
}

func (h *Health) check(ctx context.Context, name string, p Pinger, timeout time.Duration) CheckResult {
	if p == nil {
		return CheckResult{OK: false, Error: errs.ErrNotConfigured.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "readiness check failed", "check", name, "error", err)
		return CheckResult{OK: false, Error: err.Error()}
	}
	return CheckResult{OK: true}
}
