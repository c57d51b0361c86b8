package leasing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

func TestNewLease_Validation(t *testing.T) {
	start := valueobject.NewDate(2024, time.January, 1)
	end := valueobject.NewDate(2024, time.December, 31)
	due := valueobject.NewDate(2024, time.January, 5)
	amount := valueobject.NewMoneyFromInt(100)

	_, err := NewLease(uuid.New(), uuid.Nil, uuid.New(), uuid.New(), LeaseTypeFixed, RentCycleMonthly, start, end, due, amount)
	assert.Error(t, err, "unit is required")

	_, err = NewLease(uuid.New(), uuid.New(), uuid.New(), uuid.New(), LeaseType("MONTHLY"), RentCycleMonthly, start, end, due, amount)
	assert.Error(t, err, "invalid lease type")

	_, err = NewLease(uuid.New(), uuid.New(), uuid.New(), uuid.New(), LeaseTypeFixed, RentCycle("DAILY"), start, end, due, amount)
	assert.Error(t, err, "invalid rent cycle")

	_, err = NewLease(uuid.New(), uuid.New(), uuid.New(), uuid.New(), LeaseTypeFixed, RentCycleMonthly, end, start, due, amount)
	assert.Error(t, err, "end before start")

	_, err = NewLease(uuid.New(), uuid.New(), uuid.New(), uuid.New(), LeaseTypeFixed, RentCycleMonthly, start, end, due, valueobject.NewMoneyFromInt(-1))
	assert.Error(t, err, "negative amount")

	l, err := NewLease(uuid.New(), uuid.New(), uuid.New(), uuid.New(), LeaseTypeAtWill, RentCycleWeekly, start, valueobject.Date{}, due, amount)
	require.NoError(t, err)
	assert.Equal(t, LeaseStatusActive, l.Status)
	assert.Nil(t, l.ClosedOn)
	assert.True(t, l.IsActive())
}

func TestLease_Close(t *testing.T) {
	l := newTestLease(t)
	now := time.Now()

	require.NoError(t, l.Close(now))
	assert.Equal(t, LeaseStatusClosed, l.Status)
	require.NotNil(t, l.ClosedOn)
	assert.Equal(t, now, *l.ClosedOn)
	assert.Equal(t, 2, l.Version)

	assert.Error(t, l.Close(now), "closing twice is a state conflict")
}

func TestRentalApplication_Lifecycle(t *testing.T) {
	_, err := NewRentalApplication(uuid.New(), uuid.Nil, "Jo Harper", "jo@example.com")
	assert.Error(t, err)
	_, err = NewRentalApplication(uuid.New(), uuid.New(), "", "jo@example.com")
	assert.Error(t, err)

	app, err := NewRentalApplication(uuid.New(), uuid.New(), "Jo Harper", "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, ApplicationStatusPending, app.Status)
	assert.True(t, app.CanDelete())

	app.Seq = 9
	assert.Equal(t, "rta-9", app.Slug())

	leaseID := uuid.New()
	require.NoError(t, app.AttachLease(leaseID))
	assert.Equal(t, ApplicationStatusApproved, app.Status)
	assert.False(t, app.CanDelete())

	assert.Error(t, app.AttachLease(uuid.New()), "only one derived lease per application")
}
