package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// SubscriptionAggregateRoot extends BaseAggregateRoot with the tenant
// boundary. Every persisted record carries a SubscriptionID and no query
// may cross it.
type SubscriptionAggregateRoot struct {
	BaseAggregateRoot
	SubscriptionID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// NewSubscriptionAggregateRoot creates a new subscription-scoped aggregate root
func NewSubscriptionAggregateRoot(subscriptionID uuid.UUID) SubscriptionAggregateRoot {
	return SubscriptionAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		SubscriptionID:    subscriptionID,
	}
}

// BelongsTo reports whether the aggregate is owned by the given subscription.
func (s *SubscriptionAggregateRoot) BelongsTo(subscriptionID uuid.UUID) bool {
	return s.SubscriptionID == subscriptionID
}
