// Package integration provides integration testing utilities for the
// rentdesk backend. It uses testcontainers to spin up real PostgreSQL
// databases for testing.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	mpg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB represents a test database connection
type TestDB struct {
	DB        *gorm.DB
	SqlDB     *sql.DB
	Container testcontainers.Container
	DSN       string
	t         *testing.T
}

// NewTestDB creates a fresh PostgreSQL container for a test with the
// full schema applied.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("rentdesk_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("admin123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, sqlDB := connectToDatabase(t, dsn)
	runMigrations(t, sqlDB)

	testDB := &TestDB{
		DB:        db,
		SqlDB:     sqlDB,
		Container: container,
		DSN:       dsn,
		t:         t,
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// Close closes the database connection and terminates the container
func (tdb *TestDB) Close() {
	ctx := context.Background()

	if tdb.SqlDB != nil {
		tdb.SqlDB.Close()
	}
	if tdb.Container != nil {
		if err := tdb.Container.Terminate(ctx); err != nil {
			tdb.t.Logf("Warning: Failed to terminate container: %v", err)
		}
	}
}

func connectToDatabase(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")

	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, sqlDB
}

func runMigrations(t *testing.T, sqlDB *sql.DB) {
	t.Helper()

	migrationsPath := findMigrationsPath()
	require.NotEmpty(t, migrationsPath, "Could not find migrations directory")

	driver, err := mpg.WithInstance(sqlDB, &mpg.Config{})
	require.NoError(t, err, "Failed to create migration driver")

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"postgres",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to run migrations")
	}
}

func findMigrationsPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}

	dir := filepath.Dir(filename)
	for i := 0; i < 5; i++ {
		migrationsPath := filepath.Join(dir, "migrations")
		if _, err := os.Stat(migrationsPath); err == nil {
			return migrationsPath
		}
		dir = filepath.Dir(dir)
	}
	return ""
}

// CreateTestSubscription creates a subscription row for testing.
// Tenant-owned tables reference it by foreign key.
func (tdb *TestDB) CreateTestSubscription(subscriptionID uuid.UUID) {
	tdb.t.Helper()

	name := fmt.Sprintf("Test Subscription %s", subscriptionID.String()[:8])
	err := tdb.DB.Exec(`
		INSERT INTO subscriptions (id, name)
		VALUES (?, ?)
		ON CONFLICT (id) DO NOTHING
	`, subscriptionID, name).Error
	require.NoError(tdb.t, err, "Failed to create test subscription")
}

// CreateTestUser creates a user row for testing
func (tdb *TestDB) CreateTestUser(userID uuid.UUID) {
	tdb.t.Helper()

	email := fmt.Sprintf("user-%s@test.local", userID.String()[:8])
	err := tdb.DB.Exec(`
		INSERT INTO users (id, email, password_hash, full_name)
		VALUES (?, ?, 'x', 'Test User')
		ON CONFLICT (id) DO NOTHING
	`, userID, email).Error
	require.NoError(tdb.t, err, "Failed to create test user")
}

// CreateTestProperty creates a property row for testing
func (tdb *TestDB) CreateTestProperty(subscriptionID, propertyID uuid.UUID) {
	tdb.t.Helper()

	name := fmt.Sprintf("Test Property %s", propertyID.String()[:8])
	err := tdb.DB.Exec(`
		INSERT INTO properties (id, subscription_id, name)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`, propertyID, subscriptionID, name).Error
	require.NoError(tdb.t, err, "Failed to create test property")
}

// CreateTestUnit creates a unit row for testing
func (tdb *TestDB) CreateTestUnit(subscriptionID, propertyID, unitID uuid.UUID) {
	tdb.t.Helper()

	name := fmt.Sprintf("Unit %s", unitID.String()[:8])
	err := tdb.DB.Exec(`
		INSERT INTO units (id, subscription_id, property_id, name)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`, unitID, subscriptionID, propertyID, name).Error
	require.NoError(tdb.t, err, "Failed to create test unit")
}
