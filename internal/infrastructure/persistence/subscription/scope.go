// Package subscription provides tenant scoping for GORM queries.
//
// Every table in the system carries a subscription_id column. Scope
// composes WHERE subscription_id = ? into a query so a repository can
// never accidentally read across tenants; a nil id poisons the query
// instead of silently widening it.
package subscription

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSubscriptionRequired is returned when a scoped query is built
// without a subscription id
var ErrSubscriptionRequired = errors.New("subscription_id is required but missing")

// Scope applies subscription filtering to GORM queries
func Scope(subscriptionID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("subscription_id = ?", subscriptionID)
	}
}

// ScopedDB wraps a GORM DB with mandatory subscription scoping.
type ScopedDB struct {
	db *gorm.DB
}

// NewScopedDB creates a ScopedDB
func NewScopedDB(db *gorm.DB) *ScopedDB {
	return &ScopedDB{db: db}
}

// For returns a GORM DB bounded to the given subscription. A nil id
// marks the query as errored so execution fails instead of leaking.
func (s *ScopedDB) For(ctx context.Context, subscriptionID uuid.UUID) *gorm.DB {
	db := s.db.WithContext(ctx)
	if subscriptionID == uuid.Nil {
		_ = db.AddError(ErrSubscriptionRequired)
		return db
	}
	return db.Scopes(Scope(subscriptionID))
}

// Unscoped returns the underlying DB without subscription scoping. Only
// login and migrations may use it.
func (s *ScopedDB) Unscoped(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Transaction runs fn inside a database transaction.
func (s *ScopedDB) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}
