package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budgetwise/statistics/internal/application/adapter"
)

// healthCheckTimeout bounds each upstream ping.
const healthCheckTimeout = 3 * time.Second

// HealthController handles health check endpoints.
type HealthController struct {
	checkers []adapter.HealthChecker
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string            `json:"status"`
	Upstreams map[string]string `json:"upstreams"`
	Timestamp string            `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(checkers ...adapter.HealthChecker) *HealthController {
	return &HealthController{
		checkers: checkers,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its upstreams. An
// unreachable upstream degrades the status without failing the request.
func (h *HealthController) Check(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Upstreams: make(map[string]string, len(h.checkers)),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	for _, checker := range h.checkers {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		err := checker.Ping(ctx)
		cancel()

		if err != nil {
			response.Upstreams[checker.Name()] = "unreachable"
			response.Status = "degraded"
			continue
		}
		response.Upstreams[checker.Name()] = "connected"
	}

	c.JSON(http.StatusOK, response)
}
