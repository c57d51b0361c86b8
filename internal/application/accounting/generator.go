package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentdesk/backend/internal/domain/accounting"
	"github.com/rentdesk/backend/internal/domain/leasing"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// InvoiceGenerationService creates the next rent invoice for every
// active lease whose next invoice date has arrived. The daily scheduler
// drives it once per subscription.
type InvoiceGenerationService struct {
	leases   leasing.Repository
	invoices accounting.Repository
	logger   *zap.Logger
}

// NewInvoiceGenerationService creates a new InvoiceGenerationService
func NewInvoiceGenerationService(leases leasing.Repository, invoices accounting.Repository, logger *zap.Logger) *InvoiceGenerationService {
	return &InvoiceGenerationService{
		leases:   leases,
		invoices: invoices,
		logger:   logger,
	}
}

// GenerateDueInvoices creates invoices for every active lease of the
// subscription whose next invoice date is on or before asOf. Next dates
// for the whole batch come from one grouped query. Returns the number
// of invoices created.
func (s *InvoiceGenerationService) GenerateDueInvoices(ctx context.Context, subscriptionID uuid.UUID, asOf time.Time) (int, error) {
	asOfDate := valueobject.DateOf(asOf)

	leases, err := s.leases.ListActive(ctx, subscriptionID)
	if err != nil {
		return 0, err
	}
	if len(leases) == 0 {
		return 0, nil
	}

	leaseIDs := make([]uuid.UUID, len(leases))
	for i := range leases {
		leaseIDs[i] = leases[i].ID
	}
	latestEnds, err := s.leases.LatestInvoiceIntervalEnds(ctx, subscriptionID, leaseIDs)
	if err != nil {
		return 0, err
	}
	nextDates := leasing.NextInvoiceDates(leases, latestEnds)

	created := 0
	for i := range leases {
		l := &leases[i]
		next := nextDates[l.ID]
		if next == nil || next.After(asOfDate) {
			continue
		}

		if err := s.generateForLease(ctx, l, *next); err != nil {
			s.logger.Error("invoice generation failed for lease",
				zap.String("lease_id", l.ID.String()),
				zap.String("subscription_id", subscriptionID.String()),
				zap.Error(err))
			continue
		}
		created++
	}

	return created, nil
}

func (s *InvoiceGenerationService) generateForLease(ctx context.Context, l *leasing.Lease, intervalStart valueobject.Date) error {
	intervalEnd := intervalEndFor(intervalStart, l.RentCycle)

	inv, err := accounting.NewInvoice(
		l.SubscriptionID, l.ID, l.PropertyID, l.UnitID,
		intervalStart, intervalEnd, dueDateFor(l, intervalStart),
		l.Amount,
	)
	if err != nil {
		return err
	}

	return s.invoices.WithinTx(ctx, func(txRepo accounting.Repository) error {
		if err := txRepo.CreateInvoice(ctx, inv); err != nil {
			return err
		}
		return s.carryForwardRecurring(ctx, txRepo, l, inv)
	})
}

// carryForwardRecurring copies the recurring charge templates of the
// lease's most recent invoice onto the new one and posts an occurrence
// of each. The template is copied as well, so each invoice carries the
// full recurring schedule it was billed under.
func (s *InvoiceGenerationService) carryForwardRecurring(ctx context.Context, repo accounting.Repository, l *leasing.Lease, inv *accounting.Invoice) error {
	previous, err := repo.ListInvoicesByLease(ctx, l.SubscriptionID, l.ID)
	if err != nil {
		return err
	}

	var latest *accounting.Invoice
	for i := range previous {
		p := &previous[i]
		if p.ID == inv.ID {
			continue
		}
		if latest == nil || p.IntervalEndDate.After(latest.IntervalEndDate) {
			latest = p
		}
	}
	if latest == nil {
		return nil
	}

	charges, err := repo.ListChargesByInvoice(ctx, l.SubscriptionID, latest.ID)
	if err != nil {
		return err
	}

	for i := range charges {
		c := &charges[i]
		if !c.IsTemplate() {
			continue
		}

		template, err := accounting.NewCharge(l.SubscriptionID, inv.ID, c.Title, c.Amount, accounting.ChargeTypeRecurring)
		if err != nil {
			return err
		}
		template.PropertyID = c.PropertyID
		if err := repo.CreateCharge(ctx, template); err != nil {
			return err
		}

		occurrence, err := accounting.NewChargeOccurrence(template, inv.ID, accounting.ChargeStatusPosted)
		if err != nil {
			return err
		}
		if err := repo.CreateCharge(ctx, occurrence); err != nil {
			return err
		}
	}
	return nil
}

func intervalEndFor(start valueobject.Date, cycle leasing.RentCycle) valueobject.Date {
	switch cycle {
	case leasing.RentCycleWeekly:
		return start.AddDays(6)
	case leasing.RentCycleQuarterly:
		return valueobject.DateOf(start.Time().AddDate(0, 3, 0)).AddDays(-1)
	case leasing.RentCycleSixMonths:
		return valueobject.DateOf(start.Time().AddDate(0, 6, 0)).AddDays(-1)
	case leasing.RentCycleYearly:
		return valueobject.DateOf(start.Time().AddDate(1, 0, 0)).AddDays(-1)
	default:
		return valueobject.DateOf(start.Time().AddDate(0, 1, 0)).AddDays(-1)
	}
}

// dueDateFor places the lease's due day of month within the interval
// start's month, falling back to the interval start itself when the
// lease has no due date configured.
func dueDateFor(l *leasing.Lease, intervalStart valueobject.Date) valueobject.Date {
	if l.DueDate.IsZero() {
		return intervalStart
	}
	due := valueobject.NewDate(intervalStart.Year(), intervalStart.Month(), l.DueDate.Day())
	if due.Before(intervalStart) {
		due = valueobject.DateOf(due.Time().AddDate(0, 1, 0))
	}
	return due
}
