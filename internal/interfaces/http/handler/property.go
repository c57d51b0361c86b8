package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	propertyapp "github.com/rentdesk/backend/internal/application/property"
	"github.com/rentdesk/backend/internal/interfaces/http/dto"
	"github.com/rentdesk/backend/internal/interfaces/http/middleware"
)

// PropertyHandler handles property, unit, photo and late-fee policy
// endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *propertyapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *propertyapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// Create creates a property and its unconfigured late-fee policy
func (h *PropertyHandler) Create(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}

	var req propertyapp.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.propertyService.Create(c.Request.Context(), subscriptionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one property
func (h *PropertyHandler) Get(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	propertyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	resp, err := h.propertyService.GetByID(c.Request.Context(), subscriptionID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a page of properties
func (h *PropertyHandler) List(c *gin.Context) {
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

	items, total, err := h.propertyService.List(c.Request.Context(), subscriptionID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter)
}

// Update applies a partial update to a property
func (h *PropertyHandler) Update(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	propertyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	var req propertyapp.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.propertyService.Update(c.Request.Context(), subscriptionID, propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a property
func (h *PropertyHandler) Delete(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	propertyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), subscriptionID, propertyID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateUnit creates a unit under a property
func (h *PropertyHandler) CreateUnit(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	propertyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	var req propertyapp.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.propertyService.CreateUnit(c.Request.Context(), subscriptionID, propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListUnits returns the units of a property
func (h *PropertyHandler) ListUnits(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	propertyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	items, err := h.propertyService.ListUnits(c.Request.Context(), subscriptionID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// AddPhoto attaches a photo record to a property
func (h *PropertyHandler) AddPhoto(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	propertyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	var req propertyapp.AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.propertyService.AddPhoto(c.Request.Context(), subscriptionID, propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListPhotos returns the photos of a property
func (h *PropertyHandler) ListPhotos(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	propertyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	items, err := h.propertyService.ListPhotos(c.Request.Context(), subscriptionID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// SetCoverPhoto makes a photo its property's cover
func (h *PropertyHandler) SetCoverPhoto(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	photoID, err := uuid.Parse(c.Param("photoId"))
	if err != nil {
		h.BadRequest(c, "Invalid photo ID")
		return
	}

	if err := h.propertyService.SetCoverPhoto(c.Request.Context(), subscriptionID, photoID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeletePhoto removes a photo record
func (h *PropertyHandler) DeletePhoto(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	photoID, err := uuid.Parse(c.Param("photoId"))
	if err != nil {
		h.BadRequest(c, "Invalid photo ID")
		return
	}

	if err := h.propertyService.DeletePhoto(c.Request.Context(), subscriptionID, photoID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetPolicy returns a property's late-fee policy
func (h *PropertyHandler) GetPolicy(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	propertyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	resp, err := h.propertyService.GetPolicy(c.Request.Context(), subscriptionID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdatePolicy configures a property's late-fee policy
func (h *PropertyHandler) UpdatePolicy(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	propertyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	var req propertyapp.UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.propertyService.UpdatePolicy(c.Request.Context(), subscriptionID, propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RegisterRoutes registers property routes. All of them are admin-only.
func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	properties := rg.Group("/properties", middleware.RequireAdmin())
	{
		properties.POST("", h.Create)
		properties.GET("", h.List)
		properties.GET("/:id", h.Get)
		properties.PATCH("/:id", h.Update)
		properties.DELETE("/:id", h.Delete)

		properties.POST("/:id/units", h.CreateUnit)
		properties.GET("/:id/units", h.ListUnits)

		properties.POST("/:id/photos", h.AddPhoto)
		properties.GET("/:id/photos", h.ListPhotos)
		properties.PUT("/:id/photos/:photoId/cover", h.SetCoverPhoto)
		properties.DELETE("/:id/photos/:photoId", h.DeletePhoto)

		properties.GET("/:id/late-fee-policy", h.GetPolicy)
		properties.PUT("/:id/late-fee-policy", h.UpdatePolicy)
	}
}
