package property

import (
	"strings"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/shared"
)

// Photo is a photo attached to a property. The image itself lives
// outside this system; only its URL and metadata are stored. At most
// one photo per property is the cover, enforced by a partial unique
// index in storage.
type Photo struct {
	shared.SubscriptionAggregateRoot
	ParentPropertyID uuid.UUID
	URL              string
	Caption          string
	IsCover          bool
}

// NewPhoto creates a photo record under a property
func NewPhoto(subscriptionID, propertyID uuid.UUID, url, caption string, isCover bool) (*Photo, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewValidationError("Photo must belong to a property")
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, shared.NewValidationError("Photo URL cannot be empty")
	}
	if len(caption) > 255 {
		return nil, shared.NewValidationError("Photo caption cannot exceed 255 characters")
	}
	return &Photo{
		SubscriptionAggregateRoot: shared.NewSubscriptionAggregateRoot(subscriptionID),
		ParentPropertyID:          propertyID,
		URL:                       url,
		Caption:                   caption,
		IsCover:                   isCover,
	}, nil
}
