package accounting

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

func TestNewCharge_Validation(t *testing.T) {
	_, err := NewCharge(uuid.New(), uuid.Nil, "Parking", valueobject.NewMoneyFromInt(30), ChargeTypeRecurring)
	assert.Error(t, err)

	_, err = NewCharge(uuid.New(), uuid.New(), "Parking", valueobject.NewMoneyFromInt(30), ChargeType("WEEKLY"))
	assert.Error(t, err)

	_, err = NewCharge(uuid.New(), uuid.New(), "Parking", valueobject.NewMoneyFromInt(-5), ChargeTypeRecurring)
	assert.Error(t, err)

	c, err := NewCharge(uuid.New(), uuid.New(), "Parking", valueobject.NewMoneyFromInt(30), ChargeTypeRecurring)
	require.NoError(t, err)
	assert.True(t, c.IsTemplate())
	assert.True(t, c.IsRecurring())
}

func TestNewChargeOccurrence(t *testing.T) {
	invoiceID := uuid.New()
	template, err := NewCharge(uuid.New(), invoiceID, "Parking", valueobject.NewMoneyFromInt(30), ChargeTypeRecurring)
	require.NoError(t, err)

	occ, err := NewChargeOccurrence(template, invoiceID, ChargeStatusPosted)
	require.NoError(t, err)
	assert.False(t, occ.IsTemplate())
	assert.True(t, occ.IsRecurring())
	require.NotNil(t, occ.ParentChargeID)
	assert.Equal(t, template.ID, *occ.ParentChargeID)

	_, err = NewChargeOccurrence(occ, invoiceID, ChargeStatusPosted)
	assert.Error(t, err, "occurrences never chain")

	oneTime, err := NewCharge(uuid.New(), invoiceID, "Repair", valueobject.NewMoneyFromInt(20), ChargeTypeOneTime)
	require.NoError(t, err)
	_, err = NewChargeOccurrence(oneTime, invoiceID, ChargeStatusPosted)
	assert.Error(t, err, "one-time charges have no occurrences")
}

func TestInvoice_ApplyPayment(t *testing.T) {
	inv := newTestInvoice(t, testToday.AddDays(-3), 100)
	now := time.Now()

	p, err := NewPayment(inv.SubscriptionID, inv.ID, valueobject.NewMoneyFromInt(40), testToday, "CASH")
	require.NoError(t, err)
	require.NoError(t, inv.ApplyPayment(p, valueobject.NewMoneyFromInt(100), now))
	assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
	assert.Nil(t, inv.PayedAt)

	p2, err := NewPayment(inv.SubscriptionID, inv.ID, valueobject.NewMoneyFromInt(60), testToday, "CASH")
	require.NoError(t, err)
	require.NoError(t, inv.ApplyPayment(p2, valueobject.NewMoneyFromInt(100), now))
	assert.Equal(t, InvoiceStatusPaidNotVerified, inv.Status)
	require.NotNil(t, inv.PayedAt)

	require.NoError(t, inv.MarkVerified())
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	assert.Error(t, inv.MarkVerified())
}

func TestNewPayment_Validation(t *testing.T) {
	_, err := NewPayment(uuid.New(), uuid.Nil, valueobject.NewMoneyFromInt(10), testToday, "CASH")
	assert.Error(t, err)

	_, err = NewPayment(uuid.New(), uuid.New(), valueobject.ZeroMoney(), testToday, "CASH")
	assert.Error(t, err)
}

func TestNewInvoice_Validation(t *testing.T) {
	start := valueobject.NewDate(2024, time.June, 1)
	end := valueobject.NewDate(2024, time.June, 30)

	_, err := NewInvoice(uuid.New(), uuid.Nil, uuid.New(), uuid.New(), start, end, end, valueobject.NewMoneyFromInt(100))
	assert.Error(t, err)

	_, err = NewInvoice(uuid.New(), uuid.New(), uuid.New(), uuid.New(), end, start, end, valueobject.NewMoneyFromInt(100))
	assert.Error(t, err, "interval end precedes start")

	_, err = NewInvoice(uuid.New(), uuid.New(), uuid.New(), uuid.New(), start, end, end, valueobject.NewMoneyFromInt(-1))
	assert.Error(t, err)
}
