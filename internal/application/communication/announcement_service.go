package communication

import (
	"context"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/communication"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// AudienceSourceFactory yields an audience source bounded to one
// subscription for the given request context.
type AudienceSourceFactory func(ctx context.Context, subscriptionID uuid.UUID) communication.AudienceSource

// AnnouncementService handles announcement operations
type AnnouncementService struct {
	repo     communication.Repository
	audience AudienceSourceFactory
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(repo communication.Repository, audience AudienceSourceFactory) *AnnouncementService {
	return &AnnouncementService{repo: repo, audience: audience}
}

// Create expands the announcement's audience from its selection mode and
// persists announcement plus audience rows together. The stored audience
// is a snapshot; properties added later never join it.
func (s *AnnouncementService) Create(ctx context.Context, subscriptionID uuid.UUID, req CreateAnnouncementRequest) (*AnnouncementResponse, error) {
	a, err := communication.NewAnnouncement(subscriptionID, req.Title, req.Body, communication.SelectionMode(req.Selection))
	if err != nil {
		return nil, err
	}

	src := s.audience(ctx, subscriptionID)
	if err := a.Expand(src, req.PropertyIDs, req.UnitIDs); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	response := ToAnnouncementResponse(a)
	return &response, nil
}

// GetByID retrieves an announcement with its audience
func (s *AnnouncementService) GetByID(ctx context.Context, subscriptionID, announcementID uuid.UUID) (*AnnouncementResponse, error) {
	a, err := s.repo.FindByID(ctx, subscriptionID, announcementID)
	if err != nil {
		return nil, err
	}

	response := ToAnnouncementResponse(a)
	return &response, nil
}

// List retrieves a page of announcements
func (s *AnnouncementService) List(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]AnnouncementResponse, int64, error) {
	announcements, total, err := s.repo.List(ctx, subscriptionID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AnnouncementResponse, len(announcements))
	for i := range announcements {
		responses[i] = ToAnnouncementResponse(&announcements[i])
	}
	return responses, total, nil
}

// Delete removes an announcement and its audience rows
func (s *AnnouncementService) Delete(ctx context.Context, subscriptionID, announcementID uuid.UUID) error {
	return s.repo.Delete(ctx, subscriptionID, announcementID)
}
