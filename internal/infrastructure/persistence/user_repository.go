package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentdesk/backend/internal/domain/identity"
	"github.com/rentdesk/backend/internal/domain/leasing"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
)

// GormUserRepository implements identity.Repository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// CreateSubscription persists a new subscription
func (r *GormUserRepository) CreateSubscription(ctx context.Context, s *identity.Subscription) error {
	model := &models.SubscriptionModel{}
	model.FromDomain(s)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindSubscriptionByID finds a subscription by ID
func (r *GormUserRepository) FindSubscriptionByID(ctx context.Context, id uuid.UUID) (*identity.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListAllSubscriptionIDs returns the id of every subscription
func (r *GormUserRepository) ListAllSubscriptionIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// CreateUser persists a new user
func (r *GormUserRepository) CreateUser(ctx context.Context, u *identity.User) error {
	model := &models.UserModel{}
	model.FromDomain(u)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	u.Seq = model.Seq
	return nil
}

// FindUserByID finds a user by ID
func (r *GormUserRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindUserByEmail finds a user by email
func (r *GormUserRepository) FindUserByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveUser persists changes to a user
func (r *GormUserRepository) SaveUser(ctx context.Context, u *identity.User) error {
	model := &models.UserModel{}
	model.FromDomain(u)
	return r.db.WithContext(ctx).Save(model).Error
}

// CreateStaffMembership grants a user staff standing within a
// subscription
func (r *GormUserRepository) CreateStaffMembership(ctx context.Context, userID, subscriptionID uuid.UUID, isAdmin bool) error {
	model := &models.StaffMembershipModel{
		UserID:         userID,
		SubscriptionID: subscriptionID,
		IsAdmin:        isAdmin,
	}
	model.ID = uuid.New()
	return r.db.WithContext(ctx).Create(model).Error
}

// ResolveRoles computes role bits by counting related rows. Nothing is
// stored on the user: staff and admin come from membership rows, tenant
// from being the primary tenant of an active lease.
func (r *GormUserRepository) ResolveRoles(ctx context.Context, userID uuid.UUID) (identity.Roles, error) {
	var roles identity.Roles

	var adminCount int64
	if err := r.db.WithContext(ctx).Model(&models.StaffMembershipModel{}).
		Where("user_id = ? AND is_admin = ?", userID, true).
		Count(&adminCount).Error; err != nil {
		return roles, err
	}
	roles.IsAdmin = adminCount > 0

	var staffCount int64
	if err := r.db.WithContext(ctx).Model(&models.StaffMembershipModel{}).
		Where("user_id = ?", userID).
		Count(&staffCount).Error; err != nil {
		return roles, err
	}
	roles.IsSubscriptionStaff = staffCount > 0

	var tenantCount int64
	if err := r.db.WithContext(ctx).Model(&models.LeaseModel{}).
		Where("primary_tenant_id = ? AND status = ?", userID, leasing.LeaseStatusActive).
		Count(&tenantCount).Error; err != nil {
		return roles, err
	}
	roles.IsTenant = tenantCount > 0

	return roles, nil
}
