package leasing

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// LeaseStatus represents the lifecycle state of a lease
type LeaseStatus string

const (
	LeaseStatusActive LeaseStatus = "ACTIVE"
	LeaseStatusClosed LeaseStatus = "CLOSED"
)

// IsValid checks if the status is a valid LeaseStatus
func (s LeaseStatus) IsValid() bool {
	return s == LeaseStatusActive || s == LeaseStatusClosed
}

// LeaseType distinguishes fixed-term from at-will tenancies
type LeaseType string

const (
	LeaseTypeFixed  LeaseType = "FIXED"
	LeaseTypeAtWill LeaseType = "AT_WILL"
)

// IsValid checks if the lease type is valid
func (t LeaseType) IsValid() bool {
	return t == LeaseTypeFixed || t == LeaseTypeAtWill
}

// RentCycle is the invoicing cadence of a lease
type RentCycle string

const (
	RentCycleWeekly    RentCycle = "WEEKLY"
	RentCycleMonthly   RentCycle = "MONTHLY"
	RentCycleQuarterly RentCycle = "QUARTERLY"
	RentCycleSixMonths RentCycle = "SIX_MONTHS"
	RentCycleYearly    RentCycle = "YEARLY"
)

// IsValid checks if the rent cycle is valid
func (c RentCycle) IsValid() bool {
	switch c {
	case RentCycleWeekly, RentCycleMonthly, RentCycleQuarterly, RentCycleSixMonths, RentCycleYearly:
		return true
	}
	return false
}

// Lease binds a unit to its tenant terms. At most one ACTIVE lease may
// exist per unit; the storage engine enforces that with a partial unique
// index and concurrent activations lose with a constraint violation.
type Lease struct {
	shared.SubscriptionAggregateRoot
	UnitID          uuid.UUID
	PropertyID      uuid.UUID
	PrimaryTenantID uuid.UUID
	ApplicationID   *uuid.UUID
	Status          LeaseStatus
	LeaseType       LeaseType
	RentCycle       RentCycle
	StartDate       valueobject.Date
	EndDate         valueobject.Date
	DueDate         valueobject.Date
	Amount          valueobject.Money
	ClosedOn        *time.Time
}

// NewLease creates a new active lease
func NewLease(
	subscriptionID, unitID, propertyID, primaryTenantID uuid.UUID,
	leaseType LeaseType,
	rentCycle RentCycle,
	startDate, endDate, dueDate valueobject.Date,
	amount valueobject.Money,
) (*Lease, error) {
	if unitID == uuid.Nil {
		return nil, shared.NewValidationError("Lease must belong to a unit")
	}
	if !leaseType.IsValid() {
		return nil, shared.NewValidationError("Invalid lease type")
	}
	if !rentCycle.IsValid() {
		return nil, shared.NewValidationError("Invalid rent cycle")
	}
	if startDate.IsZero() {
		return nil, shared.NewValidationError("Lease start date is required")
	}
	if leaseType == LeaseTypeFixed && !endDate.IsZero() && endDate.Before(startDate) {
		return nil, shared.NewValidationError("Lease end date cannot precede start date")
	}
	if amount.IsNegative() {
		return nil, shared.NewValidationError("Lease amount cannot be negative")
	}

	return &Lease{
		SubscriptionAggregateRoot: shared.NewSubscriptionAggregateRoot(subscriptionID),
		UnitID:                    unitID,
		PropertyID:                propertyID,
		PrimaryTenantID:           primaryTenantID,
		Status:                    LeaseStatusActive,
		LeaseType:                 leaseType,
		RentCycle:                 rentCycle,
		StartDate:                 startDate,
		EndDate:                   endDate,
		DueDate:                   dueDate,
		Amount:                    amount,
	}, nil
}

// IsActive reports whether the lease is active
func (l *Lease) IsActive() bool {
	return l.Status == LeaseStatusActive
}

// Close transitions the lease to CLOSED and stamps closed_on.
func (l *Lease) Close(now time.Time) error {
	if l.Status != LeaseStatusActive {
		return shared.NewDomainError("STATE_CONFLICT", "Only an active lease can be closed")
	}
	l.Status = LeaseStatusClosed
	l.ClosedOn = &now
	l.UpdatedAt = now
	l.IncrementVersion()
	return nil
}

// ApplicationStatus represents the lifecycle of a rental application
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusApproved ApplicationStatus = "APPROVED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

// RentalApplication is a prospective tenant's application for a unit.
// An approved application may derive a lease; once it has, the
// application can no longer be deleted.
type RentalApplication struct {
	shared.SubscriptionAggregateRoot
	Seq            int64
	UnitID         uuid.UUID
	ApplicantName  string
	ApplicantEmail string
	Status         ApplicationStatus
	LeaseID        *uuid.UUID
}

// NewRentalApplication creates a pending rental application
func NewRentalApplication(subscriptionID, unitID uuid.UUID, name, email string) (*RentalApplication, error) {
	if unitID == uuid.Nil {
		return nil, shared.NewValidationError("Application must target a unit")
	}
	if name == "" {
		return nil, shared.NewValidationError("Applicant name cannot be empty")
	}
	return &RentalApplication{
		SubscriptionAggregateRoot: shared.NewSubscriptionAggregateRoot(subscriptionID),
		UnitID:                    unitID,
		ApplicantName:             name,
		ApplicantEmail:            email,
		Status:                    ApplicationStatusPending,
	}, nil
}

// Slug returns the application's external identifier ("rta-<seq>").
func (a *RentalApplication) Slug() string {
	return shared.MustEncodeSlug(shared.SlugKindRentalApplication, a.Seq)
}

// AttachLease records the lease derived from this application.
func (a *RentalApplication) AttachLease(leaseID uuid.UUID) error {
	if a.LeaseID != nil {
		return shared.NewDomainError("STATE_CONFLICT", "Application already has a derived lease")
	}
	a.Status = ApplicationStatusApproved
	a.LeaseID = &leaseID
	a.IncrementVersion()
	return nil
}

// CanDelete reports whether the application may be removed. Applications
// with a derived lease must keep their audit trail.
func (a *RentalApplication) CanDelete() bool {
	return a.LeaseID == nil
}
