package accounting

import (
	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// ChargeTotals are the aggregated charge sums of one invoice.
type ChargeTotals struct {
	TotalChargesAmount     valueobject.Money
	ChargesAndRent         valueobject.Money
	RecurringChargesAmount valueobject.Money
}

// AggregateCharges totals the invoice's charge lines.
//
// TotalChargesAmount counts posted lines only: one-time charges and
// recurring occurrences, never recurring templates. RecurringChargesAmount
// counts rent plus each recurring charge once: posted occurrences, and
// templates only while no occurrence of theirs sits on the same invoice.
// Once the monthly occurrence is posted it replaces its template in the
// sum.
func AggregateCharges(inv *Invoice) ChargeTotals {
	occurredTemplates := make(map[uuid.UUID]bool)
	for i := range inv.Charges {
		if p := inv.Charges[i].ParentChargeID; p != nil {
			occurredTemplates[*p] = true
		}
	}

	var posted, recurring valueobject.Money
	for i := range inv.Charges {
		c := &inv.Charges[i]
		if !c.IsTemplate() {
			posted = posted.Add(c.Amount)
		}
		if c.IsRecurring() && !(c.IsTemplate() && occurredTemplates[c.ID]) {
			recurring = recurring.Add(c.Amount)
		}
	}
	return ChargeTotals{
		TotalChargesAmount:     posted.RoundBank(),
		ChargesAndRent:         inv.RentAmount.Add(posted).RoundBank(),
		RecurringChargesAmount: inv.RentAmount.Add(recurring).RoundBank(),
	}
}

// EligibleAmount dispatches the late-fee base on the policy's
// eligible-charges mode. Callers must not invoke it with an unconfigured
// policy.
func EligibleAmount(inv *Invoice, totals ChargeTotals, mode property.EligibleCharges) valueobject.Money {
	switch mode {
	case property.EligibleChargesEvery:
		return totals.ChargesAndRent
	case property.EligibleChargesAllRecurring:
		return totals.RecurringChargesAmount
	case property.EligibleChargesRecurringRent:
		return inv.RentAmount
	}
	return valueobject.ZeroMoney()
}
