package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentdesk/backend/internal/domain/communication"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
)

// GormAnnouncementRepository implements communication.Repository using GORM
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewGormAnnouncementRepository creates a new GormAnnouncementRepository
func NewGormAnnouncementRepository(db *gorm.DB) *GormAnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

// Create persists the announcement and its expanded audience rows in a
// single transaction
func (r *GormAnnouncementRepository) Create(ctx context.Context, a *communication.Announcement) error {
	model := &models.AnnouncementModel{}
	model.FromDomain(a)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
}

// FindByID loads an announcement with its audience
func (r *GormAnnouncementRepository) FindByID(ctx context.Context, subscriptionID, id uuid.UUID) (*communication.Announcement, error) {
	var model models.AnnouncementModel
	if err := r.db.WithContext(ctx).
		Preload("Properties").
		Preload("Units").
		Where("subscription_id = ? AND id = ?", subscriptionID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of announcements
func (r *GormAnnouncementRepository) List(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]communication.Announcement, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AnnouncementModel{}).
		Where("subscription_id = ?", subscriptionID)
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var announcementModels []models.AnnouncementModel
	if err := query.
		Preload("Properties").
		Preload("Units").
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&announcementModels).Error; err != nil {
		return nil, 0, err
	}

	announcements := make([]communication.Announcement, len(announcementModels))
	for i := range announcementModels {
		announcements[i] = *announcementModels[i].ToDomain()
	}
	return announcements, total, nil
}

// Delete removes an announcement; audience rows cascade
func (r *GormAnnouncementRepository) Delete(ctx context.Context, subscriptionID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("subscription_id = ? AND id = ?", subscriptionID, id).
		Delete(&models.AnnouncementModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// audienceSource resolves the property and unit universe of one
// subscription through the property repository.
type audienceSource struct {
	ctx            context.Context
	subscriptionID uuid.UUID
	properties     interface {
		ListAllIDs(ctx context.Context, subscriptionID uuid.UUID) ([]uuid.UUID, error)
		ListAllUnitIDs(ctx context.Context, subscriptionID uuid.UUID) ([]uuid.UUID, error)
		ListUnitIDsByProperties(ctx context.Context, subscriptionID uuid.UUID, propertyIDs []uuid.UUID) ([]uuid.UUID, error)
	}
}

// NewAudienceSource adapts the property repository to the expansion's
// AudienceSource contract, pre-bound to one subscription.
func NewAudienceSource(ctx context.Context, subscriptionID uuid.UUID, properties *GormPropertyRepository) communication.AudienceSource {
	return &audienceSource{ctx: ctx, subscriptionID: subscriptionID, properties: properties}
}

func (s *audienceSource) AllPropertyIDs() ([]uuid.UUID, error) {
	return s.properties.ListAllIDs(s.ctx, s.subscriptionID)
}

func (s *audienceSource) AllUnitIDs() ([]uuid.UUID, error) {
	return s.properties.ListAllUnitIDs(s.ctx, s.subscriptionID)
}

func (s *audienceSource) UnitIDsOfProperties(propertyIDs []uuid.UUID) ([]uuid.UUID, error) {
	return s.properties.ListUnitIDsByProperties(s.ctx, s.subscriptionID, propertyIDs)
}
