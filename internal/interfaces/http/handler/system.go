package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/almacen/backend/internal/infrastructure/persistence"
	"github.com/almacen/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SystemHandler handles health and system information endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database) *SystemHandler {
	return &SystemHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	GoVersion       string `json:"go_version"`
	Uptime          string `json:"uptime"`
	OpenConnections int    `json:"open_connections"`
	InUse           int    `json:"in_use"`
	Idle            int    `json:"idle"`
}

// Health handles GET /health. It reports 503 when the database is
// unreachable so load balancers can take the instance out of rotation.
func (h *SystemHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Database:  "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.db.Ping(); err != nil {
		response.Status = "degraded"
		response.Database = "unreachable"
		c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(response))
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// Info handles GET /system/info
func (h *SystemHandler) Info(c *gin.Context) {
	stats, err := h.db.Stats()
	if err != nil {
		h.InternalError(c, "Failed to read connection statistics")
		return
	}

	info := SystemInfoResponse{
		Name:            "Almacen Backend API",
		Version:         "1.0.0",
		GoVersion:       runtime.Version(),
		Uptime:          time.Since(h.startTime).Round(time.Second).String(),
		OpenConnections: stats.OpenConnections,
		InUse:           stats.InUse,
		Idle:            stats.Idle,
	}

	h.Success(c, info)
}

// Ping handles GET /system/ping
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, gin.H{"message": "pong", "timestamp": time.Now().Format(time.RFC3339)})
}
