package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// AggregateModel extends BaseModel with version for optimistic locking.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.ID = a.ID
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
	m.Version = a.Version
}

// ToDomainAggregateRoot converts AggregateModel to domain BaseAggregateRoot
func (m *AggregateModel) ToDomainAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Version: m.Version,
	}
}

// SubscriptionAggregateModel extends AggregateModel with the tenant
// boundary column every scoped table carries.
type SubscriptionAggregateModel struct {
	AggregateModel
	SubscriptionID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// FromDomainSubscriptionAggregateRoot populates the model from a domain
// SubscriptionAggregateRoot
func (m *SubscriptionAggregateModel) FromDomainSubscriptionAggregateRoot(s shared.SubscriptionAggregateRoot) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.SubscriptionID = s.SubscriptionID
}

// ToDomainSubscriptionAggregateRoot converts the model to a domain
// SubscriptionAggregateRoot
func (m *SubscriptionAggregateModel) ToDomainSubscriptionAggregateRoot() shared.SubscriptionAggregateRoot {
	return shared.SubscriptionAggregateRoot{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SubscriptionID:    m.SubscriptionID,
	}
}
