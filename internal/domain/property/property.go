package property

import (
	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/shared"
)

// Property represents a rental property. A property owns exactly one
// LateFeePolicy, which is materialized in the same unit of work that
// creates the property.
type Property struct {
	shared.SubscriptionAggregateRoot
	Seq       int64
	Name      string
	Address   string
	Portfolio string
}

// NewProperty creates a new property
func NewProperty(subscriptionID uuid.UUID, name, address, portfolio string) (*Property, error) {
	if name == "" {
		return nil, shared.NewValidationError("Property name cannot be empty")
	}
	if len(name) > 255 {
		return nil, shared.NewValidationError("Property name cannot exceed 255 characters")
	}
	return &Property{
		SubscriptionAggregateRoot: shared.NewSubscriptionAggregateRoot(subscriptionID),
		Name:                      name,
		Address:                   address,
		Portfolio:                 portfolio,
	}, nil
}

// Slug returns the property's external identifier ("prp-<seq>").
func (p *Property) Slug() string {
	return shared.MustEncodeSlug(shared.SlugKindProperty, p.Seq)
}

// Unit belongs to one property and holds at most one active lease at any
// time; the storage layer enforces that with a partial unique index.
type Unit struct {
	shared.SubscriptionAggregateRoot
	Seq        int64
	PropertyID uuid.UUID
	Name       string
	Bedrooms   int
	Bathrooms  int
}

// NewUnit creates a new unit under a property
func NewUnit(subscriptionID, propertyID uuid.UUID, name string) (*Unit, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewValidationError("Unit must belong to a property")
	}
	if name == "" {
		return nil, shared.NewValidationError("Unit name cannot be empty")
	}
	return &Unit{
		SubscriptionAggregateRoot: shared.NewSubscriptionAggregateRoot(subscriptionID),
		PropertyID:                propertyID,
		Name:                      name,
	}, nil
}

// Slug returns the unit's external identifier ("unt-<seq>").
func (u *Unit) Slug() string {
	return shared.MustEncodeSlug(shared.SlugKindUnit, u.Seq)
}
