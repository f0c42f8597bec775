package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	StatusOk       = "ok"
	StatusDown     = "down"
	StatusDisabled = "disabled"

	healthTimeout = 2 * time.Second
)

// Pinger checks that a backing service answers. A nil Pinger is reported
// as disabled.
type Pinger func(ctx context.Context) error

type HealthServices struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

type HealthReport struct {
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	Services  HealthServices `json:"services"`
}

type HealthHandler struct {
	db    Pinger
	redis Pinger
	now   func() time.Time
}

func NewHealthHandler(db, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, now: time.Now}
}

// CheckHealth answers 503 when the database is unreachable. Redis only
// backs a cache, so its state is reported without failing the check.
func (h *HealthHandler) CheckHealth(c *fiber.Ctx) error {
	ctx := c.UserContext()
	report := HealthReport{
		Message:   "Team Collaboration API is running!",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Services: HealthServices{
			Database: probe(ctx, h.db),
			Redis:    probe(ctx, h.redis),
		},
	}

	status := fiber.StatusOK
	if report.Services.Database != StatusOk {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(report)
}

func probe(ctx context.Context, ping Pinger) string {
	if ping == nil {
		return StatusDisabled
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if err := ping(timeoutCtx); err != nil {
		return StatusDown
	}
	return StatusOk
}
