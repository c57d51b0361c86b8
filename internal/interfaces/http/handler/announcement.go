package handler

import (
	"github.com/gin-gonic/gin"

	communicationapp "github.com/rentdesk/backend/internal/application/communication"
	"github.com/rentdesk/backend/internal/interfaces/http/dto"
	"github.com/rentdesk/backend/internal/interfaces/http/middleware"
)

// AnnouncementHandler handles announcement endpoints
type AnnouncementHandler struct {
	BaseHandler
	announcementService *communicationapp.AnnouncementService
}

// NewAnnouncementHandler creates a new AnnouncementHandler
func NewAnnouncementHandler(announcementService *communicationapp.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// Create creates an announcement and snapshots its audience
func (h *AnnouncementHandler) Create(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}

	var req communicationapp.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.announcementService.Create(c.Request.Context(), subscriptionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one announcement
func (h *AnnouncementHandler) Get(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	announcementID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid announcement ID")
		return
	}

	resp, err := h.announcementService.GetByID(c.Request.Context(), subscriptionID, announcementID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a page of announcements
func (h *AnnouncementHandler) List(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	filter := req.ToFilter()

	items, total, err := h.announcementService.List(c.Request.Context(), subscriptionID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter)
}

// Delete removes an announcement
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	announcementID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid announcement ID")
		return
	}

	if err := h.announcementService.Delete(c.Request.Context(), subscriptionID, announcementID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers announcement routes. Creation and deletion are
// admin-only; tenants can read the announcements aimed at them.
func (h *AnnouncementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	announcements := rg.Group("/announcements")
	{
		announcements.GET("", h.List)
		announcements.GET("/:id", h.Get)

		admin := announcements.Group("", middleware.RequireAdmin())
		{
			admin.POST("", h.Create)
			admin.DELETE("/:id", h.Delete)
		}
	}
}
