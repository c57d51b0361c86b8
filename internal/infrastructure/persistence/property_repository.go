package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
)

// GormPropertyRepository implements property.Repository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// CreateWithPolicy persists a property and its default late-fee policy
// in one transaction. The policy row always exists from the moment the
// property does.
func (r *GormPropertyRepository) CreateWithPolicy(ctx context.Context, p *property.Property, pol *property.LateFeePolicy) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		propertyModel := &models.PropertyModel{}
		propertyModel.FromDomain(p)
		if err := tx.Create(propertyModel).Error; err != nil {
			return err
		}
		p.Seq = propertyModel.Seq

		policyModel := &models.LateFeePolicyModel{}
		policyModel.FromDomain(pol)
		return tx.Create(policyModel).Error
	})
}

// FindByID finds a property by ID within a subscription
func (r *GormPropertyRepository) FindByID(ctx context.Context, subscriptionID, id uuid.UUID) (*property.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND id = ?", subscriptionID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of properties for a subscription
func (r *GormPropertyRepository) List(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]property.Property, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PropertyModel{}).
		Where("subscription_id = ?", subscriptionID)
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var propertyModels []models.PropertyModel
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&propertyModels).Error; err != nil {
		return nil, 0, err
	}

	properties := make([]property.Property, len(propertyModels))
	for i := range propertyModels {
		properties[i] = *propertyModels[i].ToDomain()
	}
	return properties, total, nil
}

// ListAllIDs returns every property id in a subscription
func (r *GormPropertyRepository) ListAllIDs(ctx context.Context, subscriptionID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.PropertyModel{}).
		Where("subscription_id = ?", subscriptionID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Save persists changes to a property
func (r *GormPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	model := &models.PropertyModel{}
	model.FromDomain(p)
	return r.db.WithContext(ctx).
		Where("subscription_id = ?", p.SubscriptionID).
		Save(model).Error
}

// Delete removes a property within a subscription
func (r *GormPropertyRepository) Delete(ctx context.Context, subscriptionID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("subscription_id = ? AND id = ?", subscriptionID, id).
		Delete(&models.PropertyModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindUnitByID finds a unit by ID within a subscription
func (r *GormPropertyRepository) FindUnitByID(ctx context.Context, subscriptionID, id uuid.UUID) (*property.Unit, error) {
	var model models.UnitModel
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND id = ?", subscriptionID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListUnits returns the units of one property
func (r *GormPropertyRepository) ListUnits(ctx context.Context, subscriptionID, propertyID uuid.UUID) ([]property.Unit, error) {
	var unitModels []models.UnitModel
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND property_id = ?", subscriptionID, propertyID).
		Order("name ASC").
		Find(&unitModels).Error; err != nil {
		return nil, err
	}
	units := make([]property.Unit, len(unitModels))
	for i := range unitModels {
		units[i] = *unitModels[i].ToDomain()
	}
	return units, nil
}

// ListAllUnitIDs returns every unit id in a subscription
func (r *GormPropertyRepository) ListAllUnitIDs(ctx context.Context, subscriptionID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.UnitModel{}).
		Where("subscription_id = ?", subscriptionID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ListUnitIDsByProperties returns the unit ids belonging to the given
// properties within a subscription
func (r *GormPropertyRepository) ListUnitIDsByProperties(ctx context.Context, subscriptionID uuid.UUID, propertyIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.UnitModel{}).
		Where("subscription_id = ? AND property_id IN ?", subscriptionID, propertyIDs).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// SaveUnit persists changes to a unit
func (r *GormPropertyRepository) SaveUnit(ctx context.Context, u *property.Unit) error {
	model := &models.UnitModel{}
	model.FromDomain(u)
	if u.Seq == 0 {
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return err
		}
		u.Seq = model.Seq
		return nil
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// FindPolicyByProperty loads the late-fee policy of a property
func (r *GormPropertyRepository) FindPolicyByProperty(ctx context.Context, subscriptionID, propertyID uuid.UUID) (*property.LateFeePolicy, error) {
	var model models.LateFeePolicyModel
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND property_id = ?", subscriptionID, propertyID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SavePolicy persists changes to a late-fee policy
func (r *GormPropertyRepository) SavePolicy(ctx context.Context, pol *property.LateFeePolicy) error {
	model := &models.LateFeePolicyModel{}
	model.FromDomain(pol)
	return r.db.WithContext(ctx).Save(model).Error
}

// AddPhoto persists a photo record. A second cover photo on the same
// property violates the partial unique index.
func (r *GormPropertyRepository) AddPhoto(ctx context.Context, photo *property.Photo) error {
	model := &models.PropertyPhotoModel{}
	model.FromDomain(photo)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translatePhotoConstraint(err)
	}
	return nil
}

func translatePhotoConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return shared.ErrCoverPhotoExists
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrCoverPhotoExists
	}
	return err
}

// ListPhotos returns the photos of one property, cover first
func (r *GormPropertyRepository) ListPhotos(ctx context.Context, subscriptionID, propertyID uuid.UUID) ([]property.Photo, error) {
	var photoModels []models.PropertyPhotoModel
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND parent_property_id = ?", subscriptionID, propertyID).
		Order("is_cover DESC, created_at ASC").
		Find(&photoModels).Error; err != nil {
		return nil, err
	}
	photos := make([]property.Photo, len(photoModels))
	for i := range photoModels {
		photos[i] = *photoModels[i].ToDomain()
	}
	return photos, nil
}

// SetCoverPhoto clears the current cover of the photo's property and
// marks the given photo in one transaction
func (r *GormPropertyRepository) SetCoverPhoto(ctx context.Context, subscriptionID, photoID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.PropertyPhotoModel
		if err := tx.
			Where("subscription_id = ? AND id = ?", subscriptionID, photoID).
			First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.PropertyPhotoModel{}).
			Where("subscription_id = ? AND parent_property_id = ? AND is_cover", subscriptionID, model.ParentPropertyID).
			Update("is_cover", false).Error; err != nil {
			return err
		}

		return tx.Model(&models.PropertyPhotoModel{}).
			Where("subscription_id = ? AND id = ?", subscriptionID, photoID).
			Update("is_cover", true).Error
	})
}

// DeletePhoto removes a photo record within a subscription
func (r *GormPropertyRepository) DeletePhoto(ctx context.Context, subscriptionID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("subscription_id = ? AND id = ?", subscriptionID, id).
		Delete(&models.PropertyPhotoModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
