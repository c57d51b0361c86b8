package handler

import (
	"github.com/gin-gonic/gin"

	accountingapp "github.com/rentdesk/backend/internal/application/accounting"
	"github.com/rentdesk/backend/internal/interfaces/http/dto"
	"github.com/rentdesk/backend/internal/interfaces/http/middleware"
)

// InvoiceHandler handles invoice, charge and payment endpoints. Invoice
// reads return the full derived view: charge totals, late fees and the
// payable amount as of today.
type InvoiceHandler struct {
	BaseHandler
	invoiceService *accountingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *accountingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create creates an invoice for a lease interval
func (h *InvoiceHandler) Create(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}

	var req accountingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.invoiceService.Create(c.Request.Context(), subscriptionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one invoice with derived fields
func (h *InvoiceHandler) Get(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	invoiceID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := h.invoiceService.GetByID(c.Request.Context(), subscriptionID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a page of invoices with derived fields
func (h *InvoiceHandler) List(c *gin.Context) {
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

	items, total, err := h.invoiceService.List(c.Request.Context(), subscriptionID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter)
}

// AddCharge attaches a charge line to an invoice
func (h *InvoiceHandler) AddCharge(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	invoiceID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req accountingapp.CreateChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.invoiceService.AddCharge(c.Request.Context(), subscriptionID, invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// CreatePayment posts a payment against the invoice named in the body
// and returns the re-derived invoice
func (h *InvoiceHandler) CreatePayment(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}

	var req accountingapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.invoiceService.RecordPayment(c.Request.Context(), subscriptionID, req.InvoiceID, req.RecordPaymentRequest)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// VerifyPayment confirms a fully paid invoice after manual review
func (h *InvoiceHandler) VerifyPayment(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	invoiceID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := h.invoiceService.VerifyPayment(c.Request.Context(), subscriptionID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListPayments returns the payments posted against an invoice
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	subscriptionID, err := getSubscriptionID(c)
	if err != nil {
		h.Unauthorized(c, "Subscription scope required")
		return
	}
	invoiceID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	items, err := h.invoiceService.ListPayments(c.Request.Context(), subscriptionID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// RegisterRoutes registers accounting routes. Reads and payment posting
// are open to both roles; mutation of invoices and charges is admin-only.
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounting := rg.Group("/accounting")

	invoices := accounting.Group("/invoices")
	{
		invoices.GET("", h.List)
		invoices.GET("/:id", h.Get)
		invoices.GET("/:id/payments", h.ListPayments)

		admin := invoices.Group("", middleware.RequireAdmin())
		{
			admin.POST("", h.Create)
			admin.POST("/:id/charges", h.AddCharge)
			admin.POST("/:id/verify-payment", h.VerifyPayment)
		}
	}

	accounting.POST("/payments", h.CreatePayment)
}
