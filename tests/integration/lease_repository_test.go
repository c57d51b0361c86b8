package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentdesk/backend/internal/domain/leasing"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/rentdesk/backend/internal/infrastructure/persistence"
)

type leaseFixture struct {
	subscriptionID uuid.UUID
	propertyID     uuid.UUID
	unitID         uuid.UUID
	tenantID       uuid.UUID
}

func newLeaseFixture(tdb *TestDB) leaseFixture {
	f := leaseFixture{
		subscriptionID: uuid.New(),
		propertyID:     uuid.New(),
		unitID:         uuid.New(),
		tenantID:       uuid.New(),
	}
	tdb.CreateTestSubscription(f.subscriptionID)
	tdb.CreateTestUser(f.tenantID)
	tdb.CreateTestProperty(f.subscriptionID, f.propertyID)
	tdb.CreateTestUnit(f.subscriptionID, f.propertyID, f.unitID)
	return f
}

func (f leaseFixture) newLease(t *testing.T) *leasing.Lease {
	t.Helper()
	l, err := leasing.NewLease(
		f.subscriptionID, f.unitID, f.propertyID, f.tenantID,
		leasing.LeaseTypeFixed,
		leasing.RentCycleMonthly,
		valueobject.NewDate(2026, time.January, 1),
		valueobject.NewDate(2026, time.December, 31),
		valueobject.NewDate(2026, time.January, 1),
		valueobject.NewMoneyFromInt(1200),
	)
	require.NoError(t, err)
	return l
}

func TestLeaseRepository_SecondActiveLeaseOnUnitRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	repo := persistence.NewGormLeaseRepository(tdb.DB)
	ctx := context.Background()
	f := newLeaseFixture(tdb)

	first := f.newLease(t)
	require.NoError(t, repo.Create(ctx, first))

	second := f.newLease(t)
	err := repo.Create(ctx, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrActiveLeaseExists)
}

func TestLeaseRepository_ClosedLeaseFreesUnit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	repo := persistence.NewGormLeaseRepository(tdb.DB)
	ctx := context.Background()
	f := newLeaseFixture(tdb)

	first := f.newLease(t)
	require.NoError(t, repo.Create(ctx, first))

	require.NoError(t, first.Close(time.Now()))
	require.NoError(t, repo.Save(ctx, first))

	// The partial index only guards ACTIVE rows, so a new lease can
	// move in once the old one is closed.
	second := f.newLease(t)
	require.NoError(t, repo.Create(ctx, second))

	active, err := repo.ListActive(ctx, f.subscriptionID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)
}

func TestLeaseRepository_SubscriptionIsolation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	repo := persistence.NewGormLeaseRepository(tdb.DB)
	ctx := context.Background()
	f := newLeaseFixture(tdb)

	lease := f.newLease(t)
	require.NoError(t, repo.Create(ctx, lease))

	otherSubscription := uuid.New()
	tdb.CreateTestSubscription(otherSubscription)

	// Reads scoped to another subscription must not see the row, and
	// must not reveal that it exists.
	_, err := repo.FindByID(ctx, otherSubscription, lease.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(ctx, otherSubscription, lease.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	found, err := repo.FindByID(ctx, f.subscriptionID, lease.ID)
	require.NoError(t, err)
	assert.Equal(t, lease.ID, found.ID)
}

func TestLeaseRepository_LatestInvoiceIntervalEndsGroupedQuery(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	repo := persistence.NewGormLeaseRepository(tdb.DB)
	ctx := context.Background()
	f := newLeaseFixture(tdb)

	lease := f.newLease(t)
	require.NoError(t, repo.Create(ctx, lease))

	insertInvoice := func(start, end valueobject.Date) {
		err := tdb.DB.Exec(`
			INSERT INTO invoices (id, subscription_id, lease_id, property_id, unit_id,
				interval_start_date, interval_end_date, due_date, rent_amount, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1200, 'UNPAID')
		`, uuid.New(), f.subscriptionID, lease.ID, f.propertyID, f.unitID,
			start.Time(), end.Time(), start.Time()).Error
		require.NoError(t, err)
	}
	insertInvoice(valueobject.NewDate(2026, time.January, 1), valueobject.NewDate(2026, time.January, 31))
	insertInvoice(valueobject.NewDate(2026, time.February, 1), valueobject.NewDate(2026, time.February, 28))

	neverInvoiced := uuid.New()
	ends, err := repo.LatestInvoiceIntervalEnds(ctx, f.subscriptionID, []uuid.UUID{lease.ID, neverInvoiced})
	require.NoError(t, err)
	require.Len(t, ends, 1)
	assert.Equal(t, valueobject.NewDate(2026, time.February, 28), ends[lease.ID])
}
