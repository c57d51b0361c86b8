package handler

import (
	"github.com/gin-gonic/gin"

	leasingapp "github.com/rentdesk/backend/internal/application/leasing"
	"github.com/rentdesk/backend/internal/interfaces/http/dto"
	"github.com/rentdesk/backend/internal/interfaces/http/middleware"
)

// LeaseHandler handles lease and rental application endpoints
type LeaseHandler struct {
	BaseHandler
	leaseService *leasingapp.LeaseService
}

// NewLeaseHandler creates a new LeaseHandler
func NewLeaseHandler(leaseService *leasingapp.LeaseService) *LeaseHandler {
	return &LeaseHandler{leaseService: leaseService}
}

// Create creates an active lease, optionally approving a rental
// application in the same call
func (h *LeaseHandler) Create(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}

	var req leasingapp.CreateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.leaseService.Create(c.Request.Context(), subscriptionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one lease with its derived next invoice date
func (h *LeaseHandler) Get(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	leaseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid lease ID")
		return
	}

	resp, err := h.leaseService.GetByID(c.Request.Context(), subscriptionID, leaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a page of leases with next invoice dates
func (h *LeaseHandler) List(c *gin.Context) {
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

	items, total, err := h.leaseService.List(c.Request.Context(), subscriptionID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter)
}

// Close transitions an active lease to CLOSED
func (h *LeaseHandler) Close(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	leaseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid lease ID")
		return
	}

	resp, err := h.leaseService.Close(c.Request.Context(), subscriptionID, leaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a closed lease
func (h *LeaseHandler) Delete(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	leaseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid lease ID")
		return
	}

	if err := h.leaseService.Delete(c.Request.Context(), subscriptionID, leaseID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateApplication records a rental application
func (h *LeaseHandler) CreateApplication(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}

	var req leasingapp.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.leaseService.CreateApplication(c.Request.Context(), subscriptionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetApplication returns one rental application
func (h *LeaseHandler) GetApplication(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	applicationID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid application ID")
		return
	}

	resp, err := h.leaseService.GetApplication(c.Request.Context(), subscriptionID, applicationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListApplications returns a page of rental applications
func (h *LeaseHandler) ListApplications(c *gin.Context) {
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

	items, total, err := h.leaseService.ListApplications(c.Request.Context(), subscriptionID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter)
}

// RejectApplication marks a pending application as rejected
func (h *LeaseHandler) RejectApplication(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	applicationID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid application ID")
		return
	}

	resp, err := h.leaseService.RejectApplication(c.Request.Context(), subscriptionID, applicationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteApplication removes a rental application without a lease
func (h *LeaseHandler) DeleteApplication(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	applicationID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid application ID")
		return
	}

	if err := h.leaseService.DeleteApplication(c.Request.Context(), subscriptionID, applicationID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers lease and application routes
func (h *LeaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	leases := rg.Group("/leases", middleware.RequireAdmin())
	{
		leases.POST("", h.Create)
		leases.GET("", h.List)
		leases.GET("/:id", h.Get)
		leases.POST("/:id/close", h.Close)
		leases.DELETE("/:id", h.Delete)
	}

	applications := rg.Group("/rental-applications", middleware.RequireAdmin())
	{
		applications.POST("", h.CreateApplication)
		applications.GET("", h.ListApplications)
		applications.GET("/:id", h.GetApplication)
		applications.POST("/:id/reject", h.RejectApplication)
		applications.DELETE("/:id", h.DeleteApplication)
	}
}
