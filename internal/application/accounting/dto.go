package accounting

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/accounting"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// CreateInvoiceRequest represents a request to create an invoice for a
// lease interval
type CreateInvoiceRequest struct {
	LeaseID           uuid.UUID         `json:"lease_id" binding:"required"`
	PropertyID        uuid.UUID         `json:"property_id" binding:"required"`
	UnitID            uuid.UUID         `json:"unit_id" binding:"required"`
	IntervalStartDate valueobject.Date  `json:"interval_start_date" binding:"required"`
	IntervalEndDate   valueobject.Date  `json:"interval_end_date" binding:"required"`
	DueDate           valueobject.Date  `json:"due_date" binding:"required"`
	RentAmount        valueobject.Money `json:"rent_amount"`
}

// CreateChargeRequest represents a request to add a charge line
type CreateChargeRequest struct {
	Title      string            `json:"title" binding:"required,min=1,max=255"`
	Amount     valueobject.Money `json:"amount"`
	ChargeType string            `json:"charge_type" binding:"required,oneof=ONE_TIME RECURRING"`
	Status     *string           `json:"status" binding:"omitempty,oneof=PENDING POSTED"`
}

// RecordPaymentRequest represents a payment posting against an invoice
type RecordPaymentRequest struct {
	Amount        valueobject.Money `json:"amount"`
	PaymentDate   valueobject.Date  `json:"payment_date"`
	PaymentMethod string            `json:"payment_method" binding:"max=50"`
}

// CreatePaymentRequest is the payment collection form of
// RecordPaymentRequest; the invoice is referenced in the body.
type CreatePaymentRequest struct {
	InvoiceID uuid.UUID `json:"invoice_id" binding:"required"`
	RecordPaymentRequest
}

// ChargeResponse represents a charge line in API responses
type ChargeResponse struct {
	ID             uuid.UUID         `json:"id"`
	InvoiceID      uuid.UUID         `json:"invoice_id"`
	Title          string            `json:"title"`
	Amount         valueobject.Money `json:"amount"`
	ChargeType     string            `json:"charge_type"`
	Status         *string           `json:"status"`
	ParentChargeID *uuid.UUID        `json:"parent_charge_id,omitempty"`
	IsTemplate     bool              `json:"is_template"`
}

// ToChargeResponse converts a domain Charge to its response DTO
func ToChargeResponse(c *accounting.Charge) ChargeResponse {
	resp := ChargeResponse{
		ID:             c.ID,
		InvoiceID:      c.InvoiceID,
		Title:          c.Title,
		Amount:         c.Amount,
		ChargeType:     string(c.ChargeType),
		ParentChargeID: c.ParentChargeID,
		IsTemplate:     c.IsTemplate(),
	}
	if c.Status != nil {
		s := string(*c.Status)
		resp.Status = &s
	}
	return resp
}

// InvoiceResponse represents an invoice in API responses. Everything
// below the stored block is derived at read time from the invoice, its
// charges and the property's late-fee policy.
type InvoiceResponse struct {
	ID                uuid.UUID         `json:"id"`
	LeaseID           uuid.UUID         `json:"lease_id"`
	PropertyID        uuid.UUID         `json:"property_id"`
	UnitID            uuid.UUID         `json:"unit_id"`
	IntervalStartDate valueobject.Date  `json:"interval_start_date"`
	IntervalEndDate   valueobject.Date  `json:"interval_end_date"`
	DueDate           valueobject.Date  `json:"due_date"`
	RentAmount        valueobject.Money `json:"rent_amount"`
	ArrearsAmount     valueobject.Money `json:"arrears_amount"`
	ArrearOfID        *uuid.UUID        `json:"arrear_of_id,omitempty"`
	PayedAt           *time.Time        `json:"payed_at"`
	PayedLateFee      valueobject.Money `json:"payed_late_fee"`
	TotalPaidAmount   valueobject.Money `json:"total_paid_amount"`
	Status            string            `json:"status"`
	Charges           []ChargeResponse  `json:"charges"`

	TotalChargesAmount     valueobject.Money `json:"total_charges_amount"`
	ChargesAndRent         valueobject.Money `json:"charges_and_rent"`
	RecurringChargesAmount valueobject.Money `json:"recurring_charges_amount"`
	EligibleAmount         valueobject.Money `json:"eligible_amount"`
	IsLateFeeConfigured    bool              `json:"is_late_fee_configured"`
	LateFeeApplicable      bool              `json:"late_fee_applicable"`
	NumberOfDaysLate       int               `json:"number_of_days_late"`
	LateFee                valueobject.Money `json:"late_fee"`
	DailyLateFee           valueobject.Money `json:"daily_late_fee"`
	PayableLateFee         valueobject.Money `json:"payable_late_fee"`
	PayableAmount          valueobject.Money `json:"payable_amount"`
}

// ToInvoiceResponse combines an invoice with its derived fields
func ToInvoiceResponse(inv *accounting.Invoice, d accounting.DerivedInvoice) InvoiceResponse {
	charges := make([]ChargeResponse, len(inv.Charges))
	for i := range inv.Charges {
		charges[i] = ToChargeResponse(&inv.Charges[i])
	}

	return InvoiceResponse{
		ID:                inv.ID,
		LeaseID:           inv.LeaseID,
		PropertyID:        inv.PropertyID,
		UnitID:            inv.UnitID,
		IntervalStartDate: inv.IntervalStartDate,
		IntervalEndDate:   inv.IntervalEndDate,
		DueDate:           inv.DueDate,
		RentAmount:        inv.RentAmount,
		ArrearsAmount:     inv.ArrearsAmount,
		ArrearOfID:        inv.ArrearOfID,
		PayedAt:           inv.PayedAt,
		PayedLateFee:      inv.PayedLateFee,
		TotalPaidAmount:   inv.TotalPaidAmount,
		Status:            string(inv.Status),
		Charges:           charges,

		TotalChargesAmount:     d.TotalChargesAmount,
		ChargesAndRent:         d.ChargesAndRent,
		RecurringChargesAmount: d.RecurringChargesAmount,
		EligibleAmount:         d.EligibleAmount,
		IsLateFeeConfigured:    d.IsLateFeeConfigured,
		LateFeeApplicable:      d.Applicable,
		NumberOfDaysLate:       d.NumberOfDaysLate,
		LateFee:                d.LateFee,
		DailyLateFee:           d.DailyLateFee,
		PayableLateFee:         d.PayableLateFee,
		PayableAmount:          d.PayableAmount,
	}
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID            uuid.UUID         `json:"id"`
	InvoiceID     uuid.UUID         `json:"invoice_id"`
	Amount        valueobject.Money `json:"amount"`
	PaymentDate   valueobject.Date  `json:"payment_date"`
	PaymentMethod string            `json:"payment_method"`
	CreatedAt     time.Time         `json:"created_at"`
}

// ToPaymentResponse converts a domain Payment to its response DTO
func ToPaymentResponse(p *accounting.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		InvoiceID:     p.InvoiceID,
		Amount:        p.Amount,
		PaymentDate:   p.PaymentDate,
		PaymentMethod: p.PaymentMethod,
		CreatedAt:     p.CreatedAt,
	}
}
