package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/accounting"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// InvoiceService handles invoice, charge and payment operations. Every
// read derives the payable amounts and late fees in memory from the
// stored rows and the owning property's policy; nothing derived is ever
// written back.
type InvoiceService struct {
	invoices   accounting.Repository
	properties property.Repository
	now        func() time.Time
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoices accounting.Repository, properties property.Repository) *InvoiceService {
	return &InvoiceService{
		invoices:   invoices,
		properties: properties,
		now:        time.Now,
	}
}

func (s *InvoiceService) today() valueobject.Date {
	return valueobject.DateOf(s.now())
}

// Create creates an invoice for a lease interval
func (s *InvoiceService) Create(ctx context.Context, subscriptionID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := accounting.NewInvoice(
		subscriptionID, req.LeaseID, req.PropertyID, req.UnitID,
		req.IntervalStartDate, req.IntervalEndDate, req.DueDate,
		req.RentAmount,
	)
	if err != nil {
		return nil, err
	}

	if err := s.invoices.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return s.respond(ctx, inv)
}

// GetByID retrieves an invoice with its charges and derived fields
func (s *InvoiceService) GetByID(ctx context.Context, subscriptionID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoices.FindInvoiceByID(ctx, subscriptionID, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, inv)
}

// List retrieves a page of invoices with derived fields. Policies are
// fetched once per distinct property on the page.
func (s *InvoiceService) List(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]InvoiceResponse, int64, error) {
	invoices, total, err := s.invoices.ListInvoices(ctx, subscriptionID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses, err := s.respondMany(ctx, subscriptionID, invoices)
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// ListByLease retrieves every invoice of one lease with derived fields
func (s *InvoiceService) ListByLease(ctx context.Context, subscriptionID, leaseID uuid.UUID) ([]InvoiceResponse, error) {
	invoices, err := s.invoices.ListInvoicesByLease(ctx, subscriptionID, leaseID)
	if err != nil {
		return nil, err
	}
	return s.respondMany(ctx, subscriptionID, invoices)
}

// AddCharge attaches a charge line to an invoice. A recurring charge
// created without a status is a template; posted occurrences of it are
// spawned at invoice generation time.
func (s *InvoiceService) AddCharge(ctx context.Context, subscriptionID, invoiceID uuid.UUID, req CreateChargeRequest) (*ChargeResponse, error) {
	inv, err := s.invoices.FindInvoiceByID(ctx, subscriptionID, invoiceID)
	if err != nil {
		return nil, err
	}

	c, err := accounting.NewCharge(subscriptionID, inv.ID, req.Title, req.Amount, accounting.ChargeType(req.ChargeType))
	if err != nil {
		return nil, err
	}
	c.PropertyID = inv.PropertyID
	if req.Status != nil {
		st := accounting.ChargeStatus(*req.Status)
		c.Status = &st
	}

	if err := s.invoices.CreateCharge(ctx, c); err != nil {
		return nil, err
	}

	response := ToChargeResponse(c)
	return &response, nil
}

// RecordPayment posts a payment against an invoice. The invoice row is
// locked for the duration of the transaction so concurrent postings
// serialize, and the payable amount is derived inside the lock.
func (s *InvoiceService) RecordPayment(ctx context.Context, subscriptionID, invoiceID uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	var locked *accounting.Invoice
	var derived accounting.DerivedInvoice

	err := s.invoices.WithinTx(ctx, func(txRepo accounting.Repository) error {
		inv, err := txRepo.FindInvoiceForUpdate(ctx, subscriptionID, invoiceID)
		if err != nil {
			return err
		}

		pol, err := s.properties.FindPolicyByProperty(ctx, subscriptionID, inv.PropertyID)
		if err != nil {
			return err
		}
		d := accounting.Derive(inv, pol, s.today())

		p, err := accounting.NewPayment(subscriptionID, inv.ID, req.Amount, req.PaymentDate, req.PaymentMethod)
		if err != nil {
			return err
		}
		if err := inv.ApplyPayment(p, d.PayableAmount, s.now()); err != nil {
			return err
		}
		// The fee assessed at settlement time is frozen into the invoice
		// so later reads stop accruing it.
		if inv.IsPaid() && d.Applicable {
			inv.FreezeLateFee(d.PayableLateFee)
		}

		if err := txRepo.RecordPayment(ctx, p, inv); err != nil {
			return err
		}

		locked = inv
		derived = accounting.Derive(inv, pol, s.today())
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(locked, derived)
	return &response, nil
}

// VerifyPayment confirms a fully paid invoice after manual review
func (s *InvoiceService) VerifyPayment(ctx context.Context, subscriptionID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoices.FindInvoiceByID(ctx, subscriptionID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.MarkVerified(); err != nil {
		return nil, err
	}
	if err := s.invoices.SaveInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return s.respond(ctx, inv)
}

// ListPayments retrieves the payments posted against an invoice
func (s *InvoiceService) ListPayments(ctx context.Context, subscriptionID, invoiceID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.invoices.ListPaymentsByInvoice(ctx, subscriptionID, invoiceID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses, nil
}

func (s *InvoiceService) respond(ctx context.Context, inv *accounting.Invoice) (*InvoiceResponse, error) {
	pol, err := s.properties.FindPolicyByProperty(ctx, inv.SubscriptionID, inv.PropertyID)
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv, accounting.Derive(inv, pol, s.today()))
	return &response, nil
}

func (s *InvoiceService) respondMany(ctx context.Context, subscriptionID uuid.UUID, invoices []accounting.Invoice) ([]InvoiceResponse, error) {
	policies := make(map[uuid.UUID]*property.LateFeePolicy)
	today := s.today()

	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		pol, ok := policies[inv.PropertyID]
		if !ok {
			var err error
			pol, err = s.properties.FindPolicyByProperty(ctx, subscriptionID, inv.PropertyID)
			if err != nil {
				return nil, err
			}
			policies[inv.PropertyID] = pol
		}
		responses[i] = ToInvoiceResponse(inv, accounting.Derive(inv, pol, today))
	}
	return responses, nil
}
