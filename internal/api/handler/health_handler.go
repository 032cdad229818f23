package handler

import (
	"context"
	"net/http"
	"time"

	"vtube-go/internal/api/response"

	"github.com/gin-gonic/gin"
)

// Pinger 依赖的健康检查
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	appName string
	version string
	checks  map[string]Pinger
}

func NewHealthHandler(appName, version string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{appName: appName, version: version, checks: checks}
}

// Root GET /
func (h *HealthHandler) Root(c *gin.Context) {
	response.OK(c, "API is running", gin.H{
		"name":    h.appName,
		"version": h.version,
		"docs":    "/swagger/index.html",
	})
}

// Healthz GET /healthz，任一依赖不可用时返回 503
func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(h.checks))
	healthy := true
	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "up"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success: false,
			Message: "unhealthy",
			Data:    status,
		})
		return
	}
	response.OK(c, "ok", status)
}
