package accounting

import (
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// LateFeeAssessment is the outcome of evaluating a property's late-fee
// policy against one invoice on a reference date.
type LateFeeAssessment struct {
	Applicable       bool
	NumberOfDaysLate int
	LateFee          valueobject.Money
	DailyLateFee     valueobject.Money
	PayableLateFee   valueobject.Money
}

// AssessLateFee applies pol to inv as of today. An unconfigured policy,
// a settled invoice, an invoice not yet due, or a reference date outside
// the policy's validity window all yield a zeroed, non-applicable
// assessment rather than an error.
//
// NumberOfDaysLate is always the raw calendar-day count past the due
// date; the grace period reduces only the payable fee.
func AssessLateFee(inv *Invoice, pol *property.LateFeePolicy, totals ChargeTotals, today valueobject.Date) LateFeeAssessment {
	if !pol.IsConfigured() || inv.IsPaid() || !inv.DueDate.Before(today) || !pol.InEffectOn(today) {
		return LateFeeAssessment{}
	}

	rawDays := today.DaysSince(inv.DueDate)
	if rawDays < 0 {
		rawDays = 0
	}
	effectiveDays := graceAdjustedDays(pol, today, rawDays)

	eligible := EligibleAmount(inv, totals, *pol.EligibleCharges)

	var lateFee valueobject.Money
	switch *pol.LateFeeType {
	case property.LateFeeTypeFlat:
		lateFee = pol.BaseAmountFee
	case property.LateFeeTypePercentage:
		lateFee = eligible.Percent(pol.BaseAmountFee.Amount()).RoundBank()
	}

	daily := lateFee
	payable := lateFee
	if pol.ChargeDailyLateFees {
		daily = lateFee.MulInt(int64(rawDays))
		payable = lateFee.MulInt(int64(effectiveDays))
		if pol.DailyAmountPerMonthMax != nil {
			payable = payable.Min(*pol.DailyAmountPerMonthMax)
		}
	} else if effectiveDays == 0 {
		payable = valueobject.ZeroMoney()
	}

	return LateFeeAssessment{
		Applicable:       true,
		NumberOfDaysLate: rawDays,
		LateFee:          lateFee.RoundBank(),
		DailyLateFee:     daily.RoundBank(),
		PayableLateFee:   payable.RoundBank(),
	}
}

func graceAdjustedDays(pol *property.LateFeePolicy, today valueobject.Date, rawDays int) int {
	if pol.GracePeriodType == nil {
		return rawDays
	}
	switch *pol.GracePeriodType {
	case property.GracePeriodNumberOfDays:
		if d := rawDays - pol.GracePeriod; d > 0 {
			return d
		}
		return 0
	case property.GracePeriodTillDateOfMonth:
		if today.Day() <= pol.GracePeriod {
			return 0
		}
		return rawDays
	}
	return rawDays
}
