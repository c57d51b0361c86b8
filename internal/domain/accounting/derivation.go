package accounting

import (
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// DerivedInvoice carries the computed fields of one invoice. Nothing in
// here is persisted; the HTTP layer materializes it on every read.
type DerivedInvoice struct {
	ChargeTotals
	LateFeeAssessment
	EligibleAmount      valueobject.Money
	IsLateFeeConfigured bool
	PayableAmount       valueobject.Money
}

// Derive computes the full set of derived invoice fields as of today.
// It is pure: it reads the invoice, its charges and the property's
// policy, and writes nothing.
func Derive(inv *Invoice, pol *property.LateFeePolicy, today valueobject.Date) DerivedInvoice {
	totals := AggregateCharges(inv)
	fee := AssessLateFee(inv, pol, totals, today)

	var eligible valueobject.Money
	if pol.IsConfigured() {
		eligible = EligibleAmount(inv, totals, *pol.EligibleCharges)
	}

	payable := totals.ChargesAndRent.
		Add(inv.ArrearsAmount).
		Add(fee.PayableLateFee).
		Sub(inv.TotalPaidAmount).
		Sub(inv.PayedLateFee).
		RoundBank()

	return DerivedInvoice{
		ChargeTotals:        totals,
		LateFeeAssessment:   fee,
		EligibleAmount:      eligible,
		IsLateFeeConfigured: pol.IsConfigured(),
		PayableAmount:       payable,
	}
}
