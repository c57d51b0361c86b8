package communication

import (
	"context"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/shared"
)

// Repository is the persistence contract for announcements, bounded to
// one subscription.
type Repository interface {
	// Create persists the announcement and its expanded audience rows in
	// a single transaction; a failed expansion leaves nothing behind.
	Create(ctx context.Context, a *Announcement) error

	FindByID(ctx context.Context, subscriptionID, id uuid.UUID) (*Announcement, error)
	List(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]Announcement, int64, error)
	Delete(ctx context.Context, subscriptionID, id uuid.UUID) error
}
