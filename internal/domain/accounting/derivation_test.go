package accounting

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

var testToday = valueobject.NewDate(2024, time.June, 15)

func newTestInvoice(t *testing.T, dueDate valueobject.Date, rent int64) *Invoice {
	t.Helper()
	inv, err := NewInvoice(
		uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		valueobject.NewDate(2024, time.June, 1),
		valueobject.NewDate(2024, time.June, 30),
		dueDate,
		valueobject.NewMoneyFromInt(rent),
	)
	require.NoError(t, err)
	return inv
}

func newFlatPolicy(t *testing.T, base int64, eligible property.EligibleCharges) *property.LateFeePolicy {
	t.Helper()
	pol := property.NewDefaultLateFeePolicy(uuid.New(), uuid.New())
	feeType := property.LateFeeTypeFlat
	require.NoError(t, pol.Configure(property.PolicyUpdate{
		LateFeeType:     &feeType,
		BaseAmountFee:   valueobject.NewMoneyFromInt(base),
		EligibleCharges: &eligible,
	}))
	return pol
}

// Charges used by the billing-history fixtures: a recurring template, two
// one-time lines and the template's posted occurrence.
func attachMixedCharges(t *testing.T, inv *Invoice) {
	t.Helper()
	template, err := NewCharge(inv.SubscriptionID, inv.ID, "Parking", valueobject.NewMoneyFromInt(30), ChargeTypeRecurring)
	require.NoError(t, err)
	cleaning, err := NewCharge(inv.SubscriptionID, inv.ID, "Cleaning", valueobject.NewMoneyFromInt(10), ChargeTypeOneTime)
	require.NoError(t, err)
	repair, err := NewCharge(inv.SubscriptionID, inv.ID, "Repair", valueobject.NewMoneyFromInt(20), ChargeTypeOneTime)
	require.NoError(t, err)
	occurrence, err := NewChargeOccurrence(template, inv.ID, ChargeStatusPosted)
	require.NoError(t, err)
	inv.Charges = []Charge{*template, *cleaning, *repair, *occurrence}
}

func TestDerive_CleanUnpaidFlatPolicy(t *testing.T) {
	inv := newTestInvoice(t, testToday.AddDays(-3), 100)
	inv.ArrearsAmount = valueobject.NewMoneyFromInt(10)
	pol := newFlatPolicy(t, 10, property.EligibleChargesEvery)

	d := Derive(inv, pol, testToday)

	assert.True(t, d.Applicable)
	assert.Equal(t, 3, d.NumberOfDaysLate)
	assert.True(t, d.LateFee.Equal(valueobject.NewMoneyFromInt(10)))
	assert.True(t, d.PayableLateFee.Equal(valueobject.NewMoneyFromInt(10)))
	assert.True(t, d.PayableAmount.Equal(valueobject.NewMoneyFromInt(120)))
}

func TestDerive_PaidInvoiceWithMixedCharges(t *testing.T) {
	inv := newTestInvoice(t, testToday.AddDays(-3), 100)
	attachMixedCharges(t, inv)
	now := time.Now()
	inv.PayedAt = &now
	inv.PayedLateFee = valueobject.NewMoneyFromInt(10)
	inv.ArrearsAmount = valueobject.NewMoneyFromInt(15)
	pol := newFlatPolicy(t, 10, property.EligibleChargesAllRecurring)

	d := Derive(inv, pol, testToday)

	assert.True(t, d.TotalChargesAmount.Equal(valueobject.NewMoneyFromInt(60)))
	assert.True(t, d.ChargesAndRent.Equal(valueobject.NewMoneyFromInt(160)))
	assert.True(t, d.RecurringChargesAmount.Equal(valueobject.NewMoneyFromInt(130)),
		"the posted occurrence replaces its template in the recurring sum")
	assert.False(t, d.Applicable)
	assert.True(t, d.PayableLateFee.IsZero())
	// 160 + 15 + 0 - 0 - 10
	assert.True(t, d.PayableAmount.Equal(valueobject.NewMoneyFromInt(165)))
}

func TestDerive_PercentagePolicyWithDailyCap(t *testing.T) {
	inv := newTestInvoice(t, testToday.AddDays(-3), 100)
	pol := property.NewDefaultLateFeePolicy(uuid.New(), uuid.New())
	feeType := property.LateFeeTypePercentage
	eligible := property.EligibleChargesEvery
	cap := valueobject.NewMoneyFromInt(15)
	require.NoError(t, pol.Configure(property.PolicyUpdate{
		LateFeeType:            &feeType,
		BaseAmountFee:          valueobject.NewMoneyFromInt(10),
		EligibleCharges:        &eligible,
		ChargeDailyLateFees:    true,
		DailyAmountPerMonthMax: &cap,
	}))

	d := Derive(inv, pol, testToday)

	assert.True(t, d.LateFee.Equal(valueobject.NewMoneyFromInt(10)), "10 percent of eligible 100")
	assert.True(t, d.DailyLateFee.Equal(valueobject.NewMoneyFromInt(30)))
	assert.True(t, d.PayableLateFee.Equal(valueobject.NewMoneyFromInt(15)), "capped")
}

func TestDerive_DailyAccrualWithoutCap(t *testing.T) {
	inv := newTestInvoice(t, testToday.AddDays(-3), 100)
	pol := newFlatPolicy(t, 10, property.EligibleChargesEvery)
	pol.ChargeDailyLateFees = true

	d := Derive(inv, pol, testToday)

	assert.True(t, d.DailyLateFee.Equal(valueobject.NewMoneyFromInt(30)))
	assert.True(t, d.PayableLateFee.Equal(valueobject.NewMoneyFromInt(30)))
}

func TestDerive_UnconfiguredPolicy(t *testing.T) {
	inv := newTestInvoice(t, testToday.AddDays(-3), 100)
	pol := property.NewDefaultLateFeePolicy(uuid.New(), uuid.New())

	d := Derive(inv, pol, testToday)

	assert.False(t, d.IsLateFeeConfigured)
	assert.False(t, d.Applicable)
	assert.True(t, d.PayableLateFee.IsZero())
	assert.True(t, d.PayableAmount.Equal(valueobject.NewMoneyFromInt(100)))
}

func TestAssessLateFee_GracePeriodDays(t *testing.T) {
	inv := newTestInvoice(t, testToday.AddDays(-3), 100)
	pol := newFlatPolicy(t, 10, property.EligibleChargesEvery)
	graceType := property.GracePeriodNumberOfDays
	pol.GracePeriodType = &graceType
	pol.GracePeriod = 5

	fee := AssessLateFee(inv, pol, AggregateCharges(inv), testToday)

	assert.True(t, fee.Applicable)
	assert.Equal(t, 3, fee.NumberOfDaysLate, "reported days ignore the grace period")
	assert.True(t, fee.PayableLateFee.IsZero(), "grace consumed every late day")
}

func TestAssessLateFee_GraceTillDateOfMonth(t *testing.T) {
	inv := newTestInvoice(t, testToday.AddDays(-3), 100)
	pol := newFlatPolicy(t, 10, property.EligibleChargesEvery)
	pol.ChargeDailyLateFees = true
	graceType := property.GracePeriodTillDateOfMonth
	pol.GracePeriodType = &graceType

	pol.GracePeriod = 20 // today is the 15th
	fee := AssessLateFee(inv, pol, AggregateCharges(inv), testToday)
	assert.True(t, fee.PayableLateFee.IsZero())

	pol.GracePeriod = 10
	fee = AssessLateFee(inv, pol, AggregateCharges(inv), testToday)
	assert.True(t, fee.PayableLateFee.Equal(valueobject.NewMoneyFromInt(30)))
}

func TestAssessLateFee_OutsideValidityWindow(t *testing.T) {
	inv := newTestInvoice(t, testToday.AddDays(-3), 100)
	pol := newFlatPolicy(t, 10, property.EligibleChargesEvery)
	start := testToday.AddDays(10)
	pol.StartDate = &start

	fee := AssessLateFee(inv, pol, AggregateCharges(inv), testToday)
	assert.False(t, fee.Applicable)
}

func TestAggregateCharges_TemplateWithoutOccurrence(t *testing.T) {
	inv := newTestInvoice(t, testToday.AddDays(-3), 100)
	template, err := NewCharge(inv.SubscriptionID, inv.ID, "Parking", valueobject.NewMoneyFromInt(40), ChargeTypeRecurring)
	require.NoError(t, err)
	inv.Charges = []Charge{*template}

	totals := AggregateCharges(inv)

	assert.True(t, totals.TotalChargesAmount.IsZero(), "templates never post")
	assert.True(t, totals.RecurringChargesAmount.Equal(valueobject.NewMoneyFromInt(140)),
		"an unposted template still counts toward the recurring sum")
}

func TestEligibleAmount_Monotonicity(t *testing.T) {
	inv := newTestInvoice(t, testToday.AddDays(-3), 100)
	attachMixedCharges(t, inv)
	totals := AggregateCharges(inv)

	every := EligibleAmount(inv, totals, property.EligibleChargesEvery)
	recurring := EligibleAmount(inv, totals, property.EligibleChargesAllRecurring)
	rentOnly := EligibleAmount(inv, totals, property.EligibleChargesRecurringRent)

	assert.False(t, every.LessThan(recurring))
	assert.False(t, recurring.LessThan(rentOnly))
}

func TestAssessLateFee_NotApplicableWhenPaid(t *testing.T) {
	inv := newTestInvoice(t, testToday.AddDays(-3), 100)
	now := time.Now()
	inv.PayedAt = &now
	pol := newFlatPolicy(t, 10, property.EligibleChargesEvery)

	fee := AssessLateFee(inv, pol, AggregateCharges(inv), testToday)
	assert.False(t, fee.Applicable)
	assert.True(t, fee.PayableLateFee.IsZero())
}

func TestAssessLateFee_NotApplicableBeforeDue(t *testing.T) {
	pol := newFlatPolicy(t, 10, property.EligibleChargesEvery)

	onDue := newTestInvoice(t, testToday, 100)
	assert.False(t, AssessLateFee(onDue, pol, AggregateCharges(onDue), testToday).Applicable,
		"an invoice due today is not yet late")

	future := newTestInvoice(t, testToday.AddDays(5), 100)
	assert.False(t, AssessLateFee(future, pol, AggregateCharges(future), testToday).Applicable)
}

func TestDerive_PayableTracksArrears(t *testing.T) {
	inv := newTestInvoice(t, testToday.AddDays(-3), 100)
	pol := newFlatPolicy(t, 10, property.EligibleChargesEvery)

	base := Derive(inv, pol, testToday).PayableAmount
	inv.ArrearsAmount = inv.ArrearsAmount.Add(valueobject.NewMoneyFromInt(25))
	bumped := Derive(inv, pol, testToday).PayableAmount

	assert.True(t, bumped.Sub(base).Equal(valueobject.NewMoneyFromInt(25)))
}

func TestDerive_PayableZeroAfterFullSettlement(t *testing.T) {
	inv := newTestInvoice(t, testToday.AddDays(-3), 100)
	pol := newFlatPolicy(t, 10, property.EligibleChargesEvery)

	d := Derive(inv, pol, testToday)
	require.True(t, d.PayableAmount.Equal(valueobject.NewMoneyFromInt(110)))

	p, err := NewPayment(inv.SubscriptionID, inv.ID, d.PayableAmount, testToday, "CASH")
	require.NoError(t, err)
	require.NoError(t, inv.ApplyPayment(p, d.PayableAmount, time.Now()))
	inv.FreezeLateFee(d.PayableLateFee)

	after := Derive(inv, pol, testToday)
	assert.True(t, after.PayableAmount.IsZero(), "payable after settlement: %s", after.PayableAmount)
	assert.True(t, inv.PayedLateFee.Equal(valueobject.NewMoneyFromInt(10)))
	assert.Equal(t, InvoiceStatusPaidNotVerified, inv.Status)
}

func TestDerive_PayableDecreasesOnPayment(t *testing.T) {
	inv := newTestInvoice(t, testToday.AddDays(-3), 100)
	pol := newFlatPolicy(t, 10, property.EligibleChargesEvery)

	before := Derive(inv, pol, testToday).PayableAmount
	p, err := NewPayment(inv.SubscriptionID, inv.ID, valueobject.NewMoneyFromInt(40), testToday, "CASH")
	require.NoError(t, err)
	require.NoError(t, inv.ApplyPayment(p, before, time.Now()))

	after := Derive(inv, pol, testToday).PayableAmount
	assert.True(t, before.Sub(after).Equal(valueobject.NewMoneyFromInt(40)))
	assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
}
