package property

import (
	"context"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/shared"
)

// Repository is the persistence contract for properties, units and their
// late-fee policies. Every read is bounded to one subscription.
type Repository interface {
	// CreateWithPolicy persists a property and its default late-fee
	// policy in a single transaction.
	CreateWithPolicy(ctx context.Context, p *Property, pol *LateFeePolicy) error

	FindByID(ctx context.Context, subscriptionID, id uuid.UUID) (*Property, error)
	List(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]Property, int64, error)
	ListAllIDs(ctx context.Context, subscriptionID uuid.UUID) ([]uuid.UUID, error)
	Save(ctx context.Context, p *Property) error
	Delete(ctx context.Context, subscriptionID, id uuid.UUID) error

	FindUnitByID(ctx context.Context, subscriptionID, id uuid.UUID) (*Unit, error)
	ListUnits(ctx context.Context, subscriptionID, propertyID uuid.UUID) ([]Unit, error)
	ListAllUnitIDs(ctx context.Context, subscriptionID uuid.UUID) ([]uuid.UUID, error)
	ListUnitIDsByProperties(ctx context.Context, subscriptionID uuid.UUID, propertyIDs []uuid.UUID) ([]uuid.UUID, error)
	SaveUnit(ctx context.Context, u *Unit) error

	FindPolicyByProperty(ctx context.Context, subscriptionID, propertyID uuid.UUID) (*LateFeePolicy, error)
	SavePolicy(ctx context.Context, pol *LateFeePolicy) error

	// AddPhoto surfaces ErrCoverPhotoExists when the photo is marked as
	// cover and the property already has one.
	AddPhoto(ctx context.Context, photo *Photo) error
	ListPhotos(ctx context.Context, subscriptionID, propertyID uuid.UUID) ([]Photo, error)
	// SetCoverPhoto clears the previous cover and marks the given photo
	// in one transaction.
	SetCoverPhoto(ctx context.Context, subscriptionID, photoID uuid.UUID) error
	DeletePhoto(ctx context.Context, subscriptionID, id uuid.UUID) error
}
