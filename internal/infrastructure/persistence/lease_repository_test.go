package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rentdesk/backend/internal/domain/leasing"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// newMockLeaseRepository creates a GormLeaseRepository with a mocked SQL connection
func newMockLeaseRepository(t *testing.T) (*GormLeaseRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormLeaseRepository(gormDB), mock, mockDB
}

func mockLease(t *testing.T) *leasing.Lease {
	t.Helper()
	l, err := leasing.NewLease(
		uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		leasing.LeaseTypeFixed, leasing.RentCycleMonthly,
		valueobject.NewDate(2024, time.January, 1),
		valueobject.NewDate(2024, time.December, 31),
		valueobject.NewDate(2024, time.January, 5),
		valueobject.NewMoneyFromInt(100),
	)
	require.NoError(t, err)
	return l
}

func TestGormLeaseRepository_FindByID(t *testing.T) {
	t.Run("query is bounded to the subscription", func(t *testing.T) {
		repo, mock, mockDB := newMockLeaseRepository(t)
		defer mockDB.Close()

		leaseID := uuid.New()
		subscriptionID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "subscription_id", "unit_id", "property_id", "primary_tenant_id", "status", "lease_type", "rent_cycle", "start_date", "amount"}).
			AddRow(leaseID, subscriptionID, uuid.New(), uuid.New(), uuid.New(), "ACTIVE", "FIXED", "MONTHLY", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "100.00")

		mock.ExpectQuery(`SELECT \* FROM "leases" WHERE subscription_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(subscriptionID, leaseID, 1).
			WillReturnRows(rows)

		lease, err := repo.FindByID(context.Background(), subscriptionID, leaseID)

		assert.NoError(t, err)
		require.NotNil(t, lease)
		assert.Equal(t, subscriptionID, lease.SubscriptionID)
		assert.Equal(t, leasing.LeaseStatusActive, lease.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent lease maps to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockLeaseRepository(t)
		defer mockDB.Close()

		leaseID := uuid.New()
		subscriptionID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "leases" WHERE subscription_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(subscriptionID, leaseID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		lease, err := repo.FindByID(context.Background(), subscriptionID, leaseID)

		assert.Nil(t, lease)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLeaseRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock, mockDB := newMockLeaseRepository(t)
	defer mockDB.Close()

	mock.ExpectExec(`INSERT INTO "leases"`).
		WillReturnError(&pq.Error{Code: pgUniqueViolation, Constraint: "uq_leases_active_unit"})

	err := repo.Create(context.Background(), mockLease(t))

	assert.Equal(t, shared.ErrActiveLeaseExists, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormLeaseRepository_LatestInvoiceIntervalEnds(t *testing.T) {
	repo, mock, mockDB := newMockLeaseRepository(t)
	defer mockDB.Close()

	subscriptionID := uuid.New()
	leaseA := uuid.New()
	leaseB := uuid.New()

	rows := sqlmock.NewRows([]string{"lease_id", "latest_end"}).
		AddRow(leaseA, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC))

	mock.ExpectQuery(`SELECT lease_id, MAX\(interval_end_date\) AS latest_end FROM "invoices" WHERE subscription_id = \$1 AND lease_id IN \(\$2,\$3\) GROUP BY "lease_id"`).
		WithArgs(subscriptionID, leaseA, leaseB).
		WillReturnRows(rows)

	ends, err := repo.LatestInvoiceIntervalEnds(context.Background(), subscriptionID, []uuid.UUID{leaseA, leaseB})

	require.NoError(t, err)
	assert.Len(t, ends, 1, "leases without invoices are absent")
	assert.Equal(t, valueobject.NewDate(2024, time.February, 29), ends[leaseA])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormLeaseRepository_LatestInvoiceIntervalEnds_EmptyBatch(t *testing.T) {
	repo, _, mockDB := newMockLeaseRepository(t)
	defer mockDB.Close()

	ends, err := repo.LatestInvoiceIntervalEnds(context.Background(), uuid.New(), nil)

	require.NoError(t, err)
	assert.Empty(t, ends, "no query is issued for an empty batch")
}
