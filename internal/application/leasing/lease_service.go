package leasing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/leasing"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// LeaseService handles lease and rental application operations
type LeaseService struct {
	repo leasing.Repository
	now  func() time.Time
}

// NewLeaseService creates a new LeaseService
func NewLeaseService(repo leasing.Repository) *LeaseService {
	return &LeaseService{
		repo: repo,
		now:  time.Now,
	}
}

// Create creates an active lease. When the lease derives from a rental
// application, the application is approved and linked in the same call.
// A unit with an active lease rejects the create with a constraint
// violation from the partial unique index.
func (s *LeaseService) Create(ctx context.Context, subscriptionID uuid.UUID, req CreateLeaseRequest) (*LeaseResponse, error) {
	l, err := leasing.NewLease(
		subscriptionID, req.UnitID, req.PropertyID, req.PrimaryTenantID,
		leasing.LeaseType(req.LeaseType),
		leasing.RentCycle(req.RentCycle),
		req.StartDate, req.EndDate, req.DueDate,
		req.Amount,
	)
	if err != nil {
		return nil, err
	}

	if req.ApplicationID != nil {
		app, err := s.repo.FindApplicationByID(ctx, subscriptionID, *req.ApplicationID)
		if err != nil {
			return nil, err
		}
		if err := app.AttachLease(l.ID); err != nil {
			return nil, err
		}
		l.ApplicationID = req.ApplicationID

		if err := s.repo.Create(ctx, l); err != nil {
			return nil, err
		}
		if err := s.repo.SaveApplication(ctx, app); err != nil {
			return nil, err
		}
	} else {
		if err := s.repo.Create(ctx, l); err != nil {
			return nil, err
		}
	}

	next := leasing.NextInvoiceDate(l, nil)
	response := ToLeaseResponse(l, next)
	return &response, nil
}

// GetByID retrieves a lease with its derived next invoice date
func (s *LeaseService) GetByID(ctx context.Context, subscriptionID, leaseID uuid.UUID) (*LeaseResponse, error) {
	l, err := s.repo.FindByID(ctx, subscriptionID, leaseID)
	if err != nil {
		return nil, err
	}

	latestEnds, err := s.repo.LatestInvoiceIntervalEnds(ctx, subscriptionID, []uuid.UUID{l.ID})
	if err != nil {
		return nil, err
	}

	next := leasing.NextInvoiceDates([]leasing.Lease{*l}, latestEnds)[l.ID]
	response := ToLeaseResponse(l, next)
	return &response, nil
}

// List retrieves a page of leases. Next invoice dates for the whole page
// come from a single grouped query over the invoices table.
func (s *LeaseService) List(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]LeaseResponse, int64, error) {
	leases, total, err := s.repo.List(ctx, subscriptionID, filter)
	if err != nil {
		return nil, 0, err
	}

	leaseIDs := make([]uuid.UUID, len(leases))
	for i := range leases {
		leaseIDs[i] = leases[i].ID
	}

	latestEnds, err := s.repo.LatestInvoiceIntervalEnds(ctx, subscriptionID, leaseIDs)
	if err != nil {
		return nil, 0, err
	}
	nextDates := leasing.NextInvoiceDates(leases, latestEnds)

	responses := make([]LeaseResponse, len(leases))
	for i := range leases {
		responses[i] = ToLeaseResponse(&leases[i], nextDates[leases[i].ID])
	}
	return responses, total, nil
}

// Close transitions an active lease to CLOSED
func (s *LeaseService) Close(ctx context.Context, subscriptionID, leaseID uuid.UUID) (*LeaseResponse, error) {
	l, err := s.repo.FindByID(ctx, subscriptionID, leaseID)
	if err != nil {
		return nil, err
	}

	if err := l.Close(s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, l); err != nil {
		return nil, err
	}

	response := ToLeaseResponse(l, nil)
	return &response, nil
}

// Delete removes a lease. Active leases must be closed first.
func (s *LeaseService) Delete(ctx context.Context, subscriptionID, leaseID uuid.UUID) error {
	l, err := s.repo.FindByID(ctx, subscriptionID, leaseID)
	if err != nil {
		return err
	}
	if l.IsActive() {
		return shared.NewDomainError("STATE_CONFLICT", "An active lease cannot be deleted; close it first")
	}
	return s.repo.Delete(ctx, subscriptionID, leaseID)
}

// CreateApplication records a rental application for a unit
func (s *LeaseService) CreateApplication(ctx context.Context, subscriptionID uuid.UUID, req CreateApplicationRequest) (*ApplicationResponse, error) {
	app, err := leasing.NewRentalApplication(subscriptionID, req.UnitID, req.ApplicantName, req.ApplicantEmail)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	response := ToApplicationResponse(app)
	return &response, nil
}

// GetApplication retrieves a rental application by ID
func (s *LeaseService) GetApplication(ctx context.Context, subscriptionID, applicationID uuid.UUID) (*ApplicationResponse, error) {
	app, err := s.repo.FindApplicationByID(ctx, subscriptionID, applicationID)
	if err != nil {
		return nil, err
	}

	response := ToApplicationResponse(app)
	return &response, nil
}

// ListApplications retrieves a page of rental applications
func (s *LeaseService) ListApplications(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]ApplicationResponse, int64, error) {
	apps, total, err := s.repo.ListApplications(ctx, subscriptionID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ApplicationResponse, len(apps))
	for i := range apps {
		responses[i] = ToApplicationResponse(&apps[i])
	}
	return responses, total, nil
}

// RejectApplication marks a pending application as rejected
func (s *LeaseService) RejectApplication(ctx context.Context, subscriptionID, applicationID uuid.UUID) (*ApplicationResponse, error) {
	app, err := s.repo.FindApplicationByID(ctx, subscriptionID, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != leasing.ApplicationStatusPending {
		return nil, shared.NewDomainError("STATE_CONFLICT", "Only a pending application can be rejected")
	}

	app.Status = leasing.ApplicationStatusRejected
	app.IncrementVersion()
	if err := s.repo.SaveApplication(ctx, app); err != nil {
		return nil, err
	}

	response := ToApplicationResponse(app)
	return &response, nil
}

// DeleteApplication removes a rental application. Applications with a
// derived lease keep their audit trail and cannot be deleted.
func (s *LeaseService) DeleteApplication(ctx context.Context, subscriptionID, applicationID uuid.UUID) error {
	app, err := s.repo.FindApplicationByID(ctx, subscriptionID, applicationID)
	if err != nil {
		return err
	}
	if !app.CanDelete() {
		return shared.NewDomainError("STATE_CONFLICT", "An application with a derived lease cannot be deleted")
	}
	return s.repo.DeleteApplication(ctx, subscriptionID, applicationID)
}
