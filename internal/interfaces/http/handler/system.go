package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves operational endpoints
type SystemHandler struct {
	BaseHandler
	appName string
	env     string
	started time.Time
}

// NewSystemHandler creates a system handler
func NewSystemHandler(appName, env string) *SystemHandler {
	return &SystemHandler{
		appName: appName,
		env:     env,
		started: time.Now(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/healthz", h.Health)
}

// Health handles GET /healthz. It reports process liveness only; the
// shop API's availability is surfaced per request, not here.
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":  "ok",
		"app":     h.appName,
		"env":     h.env,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
		"version": "1",
	})
}
