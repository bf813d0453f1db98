package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// HealthController handles health check endpoints.
type HealthController struct {
	checks map[string]HealthCheck
	now    func() time.Time
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
	Timestamp    string            `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. Optional
// dependencies that are not configured should simply be left out of checks.
func NewHealthController(checks map[string]HealthCheck) *HealthController {
	return &HealthController{
		checks: checks,
		now:    time.Now,
	}
}

// Check handles GET /health requests. The API reports "degraded" rather than
// failing when a dependency is down, since display endpoints still serve
// cached or demo data.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	dependencies := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			dependencies[name] = "disconnected"
			status = "degraded"
			continue
		}
		dependencies[name] = "connected"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:       status,
		Dependencies: dependencies,
		Timestamp:    h.now().UTC().Format(time.RFC3339),
	})
}
