package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger - зависимость, доступность которой проверяет /health
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthCheckHandler struct {
	checks map[string]Pinger
}

// NewHealthCheckHandler принимает именованные проверки (database, redis)
func NewHealthCheckHandler(checks map[string]Pinger) *HealthCheckHandler {
	return &HealthCheckHandler{checks: checks}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

// HealthCheck обрабатывает GET /health
// Любая неуспешная проверка - 503
func (h *HealthCheckHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.checks))
	overallStatus := "healthy"

	for name, pinger := range h.checks {
		if err := pinger.Ping(ctx); err != nil {
			checks[name] = "unhealthy: " + err.Error()
			overallStatus = "unhealthy"
			continue
		}
		checks[name] = "healthy"
	}

	status := http.StatusOK
	if overallStatus != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, HealthResponse{
		Status:    overallStatus,
		Service:   "catalog-service",
		Checks:    checks,
		Timestamp: time.Now().UTC(),
	})
}
