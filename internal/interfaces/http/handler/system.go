package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rentdesk/backend/internal/interfaces/http/dto"
	"github.com/rentdesk/backend/internal/interfaces/http/middleware"
)

// InvoiceScheduler is the operational surface of the daily invoice
// generation job.
type InvoiceScheduler interface {
	TriggerManualRun(ctx context.Context) error
	GetStatus() map[string]any
}

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	scheduler InvoiceScheduler
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(scheduler InvoiceScheduler) *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
		scheduler: scheduler,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health reports process liveness
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping checks that the API is responsive
func (h *SystemHandler) Ping(c *gin.Context) {
	resp := PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// SchedulerStatus reports the invoice generation job's state
func (h *SystemHandler) SchedulerStatus(c *gin.Context) {
	h.Success(c, h.scheduler.GetStatus())
}

// TriggerInvoiceGeneration kicks off a generation run outside the
// schedule. The run continues in the background; 202 means accepted.
func (h *SystemHandler) TriggerInvoiceGeneration(c *gin.Context) {
	if err := h.scheduler.TriggerManualRun(c.Request.Context()); err != nil {
		h.Error(c, http.StatusConflict, dto.ErrCodeStateConflict, err.Error())
		return
	}
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(gin.H{"status": "started"}))
}

// RegisterRoutes registers system routes. Scheduler operations are
// admin-only.
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)

	system := rg.Group("/system")
	{
		system.GET("/ping", h.Ping)

		admin := system.Group("", middleware.RequireAdmin())
		{
			admin.GET("/invoice-scheduler", h.SchedulerStatus)
			admin.POST("/invoice-scheduler/run", h.TriggerInvoiceGeneration)
		}
	}
}
