package leasing

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/leasing"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// CreateLeaseRequest represents a request to create a new lease
type CreateLeaseRequest struct {
	UnitID          uuid.UUID         `json:"unit_id" binding:"required"`
	PropertyID      uuid.UUID         `json:"property_id" binding:"required"`
	PrimaryTenantID uuid.UUID         `json:"primary_tenant_id" binding:"required"`
	ApplicationID   *uuid.UUID        `json:"application_id"`
	LeaseType       string            `json:"lease_type" binding:"required,oneof=FIXED AT_WILL"`
	RentCycle       string            `json:"rent_cycle" binding:"required,oneof=WEEKLY MONTHLY QUARTERLY SIX_MONTHS YEARLY"`
	StartDate       valueobject.Date  `json:"start_date" binding:"required"`
	EndDate         valueobject.Date  `json:"end_date"`
	DueDate         valueobject.Date  `json:"due_date"`
	Amount          valueobject.Money `json:"amount"`
}

// LeaseResponse represents a lease in API responses. NextInvoiceDate is
// derived: nil for closed leases, otherwise the day after the latest
// invoiced interval (or the day after the start date when no invoice
// exists yet).
type LeaseResponse struct {
	ID              uuid.UUID         `json:"id"`
	UnitID          uuid.UUID         `json:"unit_id"`
	PropertyID      uuid.UUID         `json:"property_id"`
	PrimaryTenantID uuid.UUID         `json:"primary_tenant_id"`
	ApplicationID   *uuid.UUID        `json:"application_id,omitempty"`
	Status          string            `json:"status"`
	LeaseType       string            `json:"lease_type"`
	RentCycle       string            `json:"rent_cycle"`
	StartDate       valueobject.Date  `json:"start_date"`
	EndDate         valueobject.Date  `json:"end_date"`
	DueDate         valueobject.Date  `json:"due_date"`
	Amount          valueobject.Money `json:"amount"`
	NextInvoiceDate *valueobject.Date `json:"next_invoice_date"`
	ClosedOn        *time.Time        `json:"closed_on,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// ToLeaseResponse converts a domain Lease and its derived next invoice
// date to a response DTO
func ToLeaseResponse(l *leasing.Lease, nextInvoiceDate *valueobject.Date) LeaseResponse {
	return LeaseResponse{
		ID:              l.ID,
		UnitID:          l.UnitID,
		PropertyID:      l.PropertyID,
		PrimaryTenantID: l.PrimaryTenantID,
		ApplicationID:   l.ApplicationID,
		Status:          string(l.Status),
		LeaseType:       string(l.LeaseType),
		RentCycle:       string(l.RentCycle),
		StartDate:       l.StartDate,
		EndDate:         l.EndDate,
		DueDate:         l.DueDate,
		Amount:          l.Amount,
		NextInvoiceDate: nextInvoiceDate,
		ClosedOn:        l.ClosedOn,
		CreatedAt:       l.CreatedAt,
	}
}

// CreateApplicationRequest represents a rental application submission
type CreateApplicationRequest struct {
	UnitID         uuid.UUID `json:"unit_id" binding:"required"`
	ApplicantName  string    `json:"applicant_name" binding:"required,min=1,max=255"`
	ApplicantEmail string    `json:"applicant_email" binding:"omitempty,email,max=255"`
}

// ApplicationResponse represents a rental application in API responses
type ApplicationResponse struct {
	ID             uuid.UUID  `json:"id"`
	Slug           string     `json:"slug"`
	UnitID         uuid.UUID  `json:"unit_id"`
	ApplicantName  string     `json:"applicant_name"`
	ApplicantEmail string     `json:"applicant_email"`
	Status         string     `json:"status"`
	LeaseID        *uuid.UUID `json:"lease_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToApplicationResponse converts a domain RentalApplication to its
// response DTO
func ToApplicationResponse(a *leasing.RentalApplication) ApplicationResponse {
	return ApplicationResponse{
		ID:             a.ID,
		Slug:           a.Slug(),
		UnitID:         a.UnitID,
		ApplicantName:  a.ApplicantName,
		ApplicantEmail: a.ApplicantEmail,
		Status:         string(a.Status),
		LeaseID:        a.LeaseID,
		CreatedAt:      a.CreatedAt,
	}
}
