package communication

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/communication"
)

// CreateAnnouncementRequest represents an announcement submission. The
// property and unit lists matter only on the "selective" sides of the
// selection mode; "all" sides are resolved server-side at create time.
type CreateAnnouncementRequest struct {
	Title       string      `json:"title" binding:"required,min=1,max=255"`
	Body        string      `json:"body" binding:"max=10000"`
	Selection   string      `json:"selection" binding:"required,oneof=APAU SPAU SPSU APSU"`
	PropertyIDs []uuid.UUID `json:"property_ids"`
	UnitIDs     []uuid.UUID `json:"unit_ids"`
}

// AnnouncementResponse represents an announcement with its expanded
// audience
type AnnouncementResponse struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Body        string      `json:"body"`
	Selection   string      `json:"selection"`
	PropertyIDs []uuid.UUID `json:"property_ids"`
	UnitIDs     []uuid.UUID `json:"unit_ids"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ToAnnouncementResponse converts a domain Announcement to its response
// DTO
func ToAnnouncementResponse(a *communication.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Body:        a.Body,
		Selection:   string(a.Selection),
		PropertyIDs: a.PropertyIDs,
		UnitIDs:     a.UnitIDs,
		CreatedAt:   a.CreatedAt,
	}
}
