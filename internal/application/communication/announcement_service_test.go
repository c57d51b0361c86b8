package communication

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rentdesk/backend/internal/domain/communication"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// MockAnnouncementRepository is a mock implementation of communication.Repository
type MockAnnouncementRepository struct {
	mock.Mock
}

func (m *MockAnnouncementRepository) Create(ctx context.Context, a *communication.Announcement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) FindByID(ctx context.Context, subscriptionID, id uuid.UUID) (*communication.Announcement, error) {
	args := m.Called(ctx, subscriptionID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*communication.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepository) List(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]communication.Announcement, int64, error) {
	args := m.Called(ctx, subscriptionID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]communication.Announcement), args.Get(1).(int64), args.Error(2)
}

func (m *MockAnnouncementRepository) Delete(ctx context.Context, subscriptionID, id uuid.UUID) error {
	args := m.Called(ctx, subscriptionID, id)
	return args.Error(0)
}

// stubAudienceSource resolves a fixed universe
type stubAudienceSource struct {
	properties []uuid.UUID
	units      []uuid.UUID
	unitsOf    map[uuid.UUID][]uuid.UUID
}

func (s *stubAudienceSource) AllPropertyIDs() ([]uuid.UUID, error) { return s.properties, nil }
func (s *stubAudienceSource) AllUnitIDs() ([]uuid.UUID, error)     { return s.units, nil }

func (s *stubAudienceSource) UnitIDsOfProperties(propertyIDs []uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, id := range propertyIDs {
		out = append(out, s.unitsOf[id]...)
	}
	return out, nil
}

func fixedAudience(src communication.AudienceSource) AudienceSourceFactory {
	return func(ctx context.Context, subscriptionID uuid.UUID) communication.AudienceSource {
		return src
	}
}

func TestAnnouncementService_Create_AllPropertiesAllUnits(t *testing.T) {
	mockRepo := new(MockAnnouncementRepository)
	subscriptionID := uuid.New()
	allProps := []uuid.UUID{uuid.New(), uuid.New()}
	allUnits := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	service := NewAnnouncementService(mockRepo, fixedAudience(&stubAudienceSource{
		properties: allProps,
		units:      allUnits,
	}))

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*communication.Announcement")).Return(nil)

	// Submitted lists are ignored on "all" sides
	resp, err := service.Create(context.Background(), subscriptionID, CreateAnnouncementRequest{
		Title:       "Water shutoff",
		Body:        "Maintenance on Friday",
		Selection:   "APAU",
		PropertyIDs: []uuid.UUID{uuid.New()},
	})

	require.NoError(t, err)
	assert.Equal(t, allProps, resp.PropertyIDs)
	assert.Equal(t, allUnits, resp.UnitIDs)
	mockRepo.AssertExpectations(t)
}

func TestAnnouncementService_Create_SelectivePropertiesAllUnits(t *testing.T) {
	mockRepo := new(MockAnnouncementRepository)
	subscriptionID := uuid.New()
	chosen := uuid.New()
	unitsOfChosen := []uuid.UUID{uuid.New(), uuid.New()}
	service := NewAnnouncementService(mockRepo, fixedAudience(&stubAudienceSource{
		unitsOf: map[uuid.UUID][]uuid.UUID{chosen: unitsOfChosen},
	}))

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*communication.Announcement")).Return(nil)

	resp, err := service.Create(context.Background(), subscriptionID, CreateAnnouncementRequest{
		Title:       "Parking repaint",
		Selection:   "SPAU",
		PropertyIDs: []uuid.UUID{chosen},
	})

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{chosen}, resp.PropertyIDs)
	assert.Equal(t, unitsOfChosen, resp.UnitIDs)
	mockRepo.AssertExpectations(t)
}

func TestAnnouncementService_Create_SelectiveBothTakenVerbatim(t *testing.T) {
	mockRepo := new(MockAnnouncementRepository)
	subscriptionID := uuid.New()
	props := []uuid.UUID{uuid.New()}
	units := []uuid.UUID{uuid.New()}
	service := NewAnnouncementService(mockRepo, fixedAudience(&stubAudienceSource{}))

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*communication.Announcement")).Return(nil)

	resp, err := service.Create(context.Background(), subscriptionID, CreateAnnouncementRequest{
		Title:       "Lease renewal window",
		Selection:   "SPSU",
		PropertyIDs: props,
		UnitIDs:     units,
	})

	require.NoError(t, err)
	assert.Equal(t, props, resp.PropertyIDs)
	assert.Equal(t, units, resp.UnitIDs)
}

func TestAnnouncementService_Create_EmptyTitleRejected(t *testing.T) {
	mockRepo := new(MockAnnouncementRepository)
	service := NewAnnouncementService(mockRepo, fixedAudience(&stubAudienceSource{}))

	_, err := service.Create(context.Background(), uuid.New(), CreateAnnouncementRequest{
		Title:     "",
		Selection: "APAU",
	})

	require.Error(t, err)
	mockRepo.AssertNotCalled(t, "Create")
}
