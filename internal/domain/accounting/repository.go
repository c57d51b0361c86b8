package accounting

import (
	"context"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/shared"
)

// Repository is the persistence contract for invoices, charges and
// payments, bounded to one subscription.
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error

	// FindInvoiceByID loads the invoice together with its charge lines.
	FindInvoiceByID(ctx context.Context, subscriptionID, id uuid.UUID) (*Invoice, error)

	// FindInvoiceForUpdate loads the invoice with a row lock held for
	// the remainder of the surrounding transaction. Payment postings
	// use it so concurrent writes serialize on TotalPaidAmount.
	FindInvoiceForUpdate(ctx context.Context, subscriptionID, id uuid.UUID) (*Invoice, error)

	ListInvoices(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]Invoice, int64, error)
	ListInvoicesByLease(ctx context.Context, subscriptionID, leaseID uuid.UUID) ([]Invoice, error)
	SaveInvoice(ctx context.Context, inv *Invoice) error

	CreateCharge(ctx context.Context, c *Charge) error
	ListChargesByInvoice(ctx context.Context, subscriptionID, invoiceID uuid.UUID) ([]Charge, error)

	// RecordPayment persists the payment and the updated invoice in one
	// transaction.
	RecordPayment(ctx context.Context, p *Payment, inv *Invoice) error
	ListPaymentsByInvoice(ctx context.Context, subscriptionID, invoiceID uuid.UUID) ([]Payment, error)

	// WithinTx runs fn in one transaction; the repository passed to fn
	// shares that transaction.
	WithinTx(ctx context.Context, fn func(repo Repository) error) error
}
