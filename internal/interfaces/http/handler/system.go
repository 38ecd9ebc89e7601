package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler handles health and liveness endpoints
type SystemHandler struct {
	BaseHandler
	pinger  func() error
	started time.Time
}

// NewSystemHandler creates a new SystemHandler. pinger checks database
// connectivity and may be nil.
func NewSystemHandler(pinger func() error) *SystemHandler {
	return &SystemHandler{
		pinger:  pinger,
		started: time.Now(),
	}
}

// Health handles GET /health and GET /api/v1/health
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	httpStatus := http.StatusOK

	if h.pinger != nil {
		if err := h.pinger(); err != nil {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	c.JSON(httpStatus, gin.H{
		"status": status,
		"uptime": time.Since(h.started).String(),
	})
}
