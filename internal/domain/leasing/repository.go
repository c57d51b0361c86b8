package leasing

import (
	"context"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// Repository is the persistence contract for leases and rental
// applications, bounded to one subscription.
type Repository interface {
	Create(ctx context.Context, l *Lease) error
	FindByID(ctx context.Context, subscriptionID, id uuid.UUID) (*Lease, error)
	List(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]Lease, int64, error)
	ListActive(ctx context.Context, subscriptionID uuid.UUID) ([]Lease, error)
	Save(ctx context.Context, l *Lease) error
	Delete(ctx context.Context, subscriptionID, id uuid.UUID) error

	// LatestInvoiceIntervalEnds returns, per lease, the greatest invoice
	// interval_end_date among the given leases. Leases without invoices
	// are absent from the map. Implemented as one grouped query so lease
	// listings avoid an N+1 on the invoices table.
	LatestInvoiceIntervalEnds(ctx context.Context, subscriptionID uuid.UUID, leaseIDs []uuid.UUID) (map[uuid.UUID]valueobject.Date, error)

	CreateApplication(ctx context.Context, a *RentalApplication) error
	FindApplicationByID(ctx context.Context, subscriptionID, id uuid.UUID) (*RentalApplication, error)
	ListApplications(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]RentalApplication, int64, error)
	SaveApplication(ctx context.Context, a *RentalApplication) error
	DeleteApplication(ctx context.Context, subscriptionID, id uuid.UUID) error
}
