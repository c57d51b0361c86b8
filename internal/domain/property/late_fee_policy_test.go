package property

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

func TestNewDefaultLateFeePolicy_Unconfigured(t *testing.T) {
	pol := NewDefaultLateFeePolicy(uuid.New(), uuid.New())

	assert.False(t, pol.IsConfigured())
	assert.Nil(t, pol.LateFeeType)
	assert.Nil(t, pol.EligibleCharges)
}

func TestLateFeePolicy_IsConfigured(t *testing.T) {
	pol := NewDefaultLateFeePolicy(uuid.New(), uuid.New())

	feeType := LateFeeTypeFlat
	pol.LateFeeType = &feeType
	assert.False(t, pol.IsConfigured(), "fee type alone is not enough")

	eligible := EligibleChargesEvery
	pol.EligibleCharges = &eligible
	assert.True(t, pol.IsConfigured())

	var nilPolicy *LateFeePolicy
	assert.False(t, nilPolicy.IsConfigured())
}

func TestLateFeePolicy_InEffectOn(t *testing.T) {
	pol := NewDefaultLateFeePolicy(uuid.New(), uuid.New())
	today := valueobject.NewDate(2024, time.June, 15)

	assert.True(t, pol.InEffectOn(today), "no window means always in effect")

	start := valueobject.NewDate(2024, time.June, 1)
	end := valueobject.NewDate(2024, time.June, 30)
	pol.StartDate = &start
	pol.EndDate = &end

	assert.True(t, pol.InEffectOn(today))
	assert.True(t, pol.InEffectOn(start), "window is inclusive")
	assert.True(t, pol.InEffectOn(end))
	assert.False(t, pol.InEffectOn(valueobject.NewDate(2024, time.May, 31)))
	assert.False(t, pol.InEffectOn(valueobject.NewDate(2024, time.July, 1)))
}

func TestLateFeePolicy_Configure(t *testing.T) {
	pol := NewDefaultLateFeePolicy(uuid.New(), uuid.New())
	feeType := LateFeeTypeFlat
	eligible := EligibleChargesRecurringRent
	graceType := GracePeriodNumberOfDays

	err := pol.Configure(PolicyUpdate{
		LateFeeType:     &feeType,
		BaseAmountFee:   valueobject.NewMoneyFromInt(10),
		EligibleCharges: &eligible,
		GracePeriodType: &graceType,
		GracePeriod:     5,
	})
	require.NoError(t, err)
	assert.True(t, pol.IsConfigured())
	assert.Equal(t, 5, pol.GracePeriod)
	assert.Equal(t, 2, pol.Version)
}

func TestLateFeePolicy_Configure_Invalid(t *testing.T) {
	pol := NewDefaultLateFeePolicy(uuid.New(), uuid.New())

	bad := LateFeeType("HOURLY")
	assert.Error(t, pol.Configure(PolicyUpdate{LateFeeType: &bad}))

	assert.Error(t, pol.Configure(PolicyUpdate{
		BaseAmountFee: valueobject.NewMoneyFromInt(-1),
	}))

	assert.Error(t, pol.Configure(PolicyUpdate{GracePeriod: -2}))

	start := valueobject.NewDate(2024, time.June, 10)
	end := valueobject.NewDate(2024, time.June, 1)
	assert.Error(t, pol.Configure(PolicyUpdate{StartDate: &start, EndDate: &end}))
}

func TestNewProperty_Validation(t *testing.T) {
	_, err := NewProperty(uuid.New(), "", "12 Main St", "core")
	assert.Error(t, err)

	p, err := NewProperty(uuid.New(), "Hilltop Apartments", "12 Main St", "core")
	require.NoError(t, err)
	p.Seq = 42
	assert.Equal(t, "prp-42", p.Slug())
}

func TestNewUnit_Validation(t *testing.T) {
	_, err := NewUnit(uuid.New(), uuid.Nil, "1A")
	assert.Error(t, err)
	_, err = NewUnit(uuid.New(), uuid.New(), "")
	assert.Error(t, err)

	u, err := NewUnit(uuid.New(), uuid.New(), "1A")
	require.NoError(t, err)
	u.Seq = 7
	assert.Equal(t, "unt-7", u.Slug())
}
