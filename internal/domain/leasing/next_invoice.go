package leasing

import (
	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// NextInvoiceDate determines when the next invoice interval starts for a
// lease. Closed leases have no next invoice. A lease that has already
// been invoiced continues the day after its latest interval end; one that
// has not starts the day after the lease itself.
func NextInvoiceDate(l *Lease, latestIntervalEnd *valueobject.Date) *valueobject.Date {
	if !l.IsActive() {
		return nil
	}
	if latestIntervalEnd != nil && !latestIntervalEnd.IsZero() {
		next := latestIntervalEnd.AddDays(1)
		return &next
	}
	next := l.StartDate.AddDays(1)
	return &next
}

// NextInvoiceDates computes next_invoice_date for a batch of leases from a
// lease-id to latest-interval-end map, as produced by a single grouped
// query over the invoices table.
func NextInvoiceDates(leases []Lease, latestEnds map[uuid.UUID]valueobject.Date) map[uuid.UUID]*valueobject.Date {
	out := make(map[uuid.UUID]*valueobject.Date, len(leases))
	for i := range leases {
		l := &leases[i]
		var end *valueobject.Date
		if e, ok := latestEnds[l.ID]; ok {
			end = &e
		}
		out[l.ID] = NextInvoiceDate(l, end)
	}
	return out
}
