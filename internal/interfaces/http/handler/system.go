package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves operational endpoints
type SystemHandler struct {
	BaseHandler
	appName   string
	startedAt time.Time
}

// NewSystemHandler creates a system handler
func NewSystemHandler(appName string) *SystemHandler {
	return &SystemHandler{
		appName:   appName,
		startedAt: time.Now(),
	}
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status": "ok",
		"app":    h.appName,
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
		"time":   time.Now().UTC(),
	})
}
