package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frituurapp/backend/internal/interfaces/http/dto"
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker func() error

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	startTime time.Time
	checkDB   HealthChecker
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(checkDB HealthChecker) *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
		checkDB:   checkDB,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo returns basic system information including version and uptime
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "POS Sync Backend",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health reports liveness of the service and its database
func (h *SystemHandler) Health(c *gin.Context) {
	response := HealthResponse{Status: "ok", Database: "ok"}

	if h.checkDB != nil {
		if err := h.checkDB(); err != nil {
			response.Status = "degraded"
			response.Database = err.Error()
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(dto.ErrCodeInternal, "database unreachable"))
			return
		}
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
