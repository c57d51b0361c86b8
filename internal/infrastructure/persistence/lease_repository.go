package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/rentdesk/backend/internal/domain/leasing"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
)

const pgUniqueViolation = "23505"

// GormLeaseRepository implements leasing.Repository using GORM
type GormLeaseRepository struct {
	db *gorm.DB
}

// NewGormLeaseRepository creates a new GormLeaseRepository
func NewGormLeaseRepository(db *gorm.DB) *GormLeaseRepository {
	return &GormLeaseRepository{db: db}
}

// Create persists a new lease. The partial unique index on
// (unit_id) WHERE status = 'ACTIVE' makes concurrent activations lose
// with a unique violation, surfaced as ErrActiveLeaseExists.
func (r *GormLeaseRepository) Create(ctx context.Context, l *leasing.Lease) error {
	model := &models.LeaseModel{}
	model.FromDomain(l)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateLeaseConstraint(err)
	}
	return nil
}

func translateLeaseConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return shared.ErrActiveLeaseExists
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrActiveLeaseExists
	}
	return err
}

// FindByID finds a lease by ID within a subscription
func (r *GormLeaseRepository) FindByID(ctx context.Context, subscriptionID, id uuid.UUID) (*leasing.Lease, error) {
	var model models.LeaseModel
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

// List returns a page of leases for a subscription
func (r *GormLeaseRepository) List(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]leasing.Lease, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.LeaseModel{}).
		Where("subscription_id = ?", subscriptionID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leaseModels []models.LeaseModel
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&leaseModels).Error; err != nil {
		return nil, 0, err
	}

	leases := make([]leasing.Lease, len(leaseModels))
	for i := range leaseModels {
		leases[i] = *leaseModels[i].ToDomain()
	}
	return leases, total, nil
}

// ListActive returns every active lease in a subscription
func (r *GormLeaseRepository) ListActive(ctx context.Context, subscriptionID uuid.UUID) ([]leasing.Lease, error) {
	var leaseModels []models.LeaseModel
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND status = ?", subscriptionID, leasing.LeaseStatusActive).
		Find(&leaseModels).Error; err != nil {
		return nil, err
	}
	leases := make([]leasing.Lease, len(leaseModels))
	for i := range leaseModels {
		leases[i] = *leaseModels[i].ToDomain()
	}
	return leases, nil
}

// Save persists changes to a lease
func (r *GormLeaseRepository) Save(ctx context.Context, l *leasing.Lease) error {
	model := &models.LeaseModel{}
	model.FromDomain(l)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return translateLeaseConstraint(err)
	}
	return nil
}

// Delete removes a lease within a subscription
func (r *GormLeaseRepository) Delete(ctx context.Context, subscriptionID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("subscription_id = ? AND id = ?", subscriptionID, id).
		Delete(&models.LeaseModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// latestIntervalRow is the scan target of the grouped interval query
type latestIntervalRow struct {
	LeaseID   uuid.UUID
	LatestEnd valueobject.Date
}

// LatestInvoiceIntervalEnds returns, per lease, the greatest invoice
// interval_end_date. One grouped query covers the whole batch so lease
// listings avoid an N+1 on the invoices table.
func (r *GormLeaseRepository) LatestInvoiceIntervalEnds(ctx context.Context, subscriptionID uuid.UUID, leaseIDs []uuid.UUID) (map[uuid.UUID]valueobject.Date, error) {
	if len(leaseIDs) == 0 {
		return map[uuid.UUID]valueobject.Date{}, nil
	}

	var rows []latestIntervalRow
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Select("lease_id, MAX(interval_end_date) AS latest_end").
		Where("subscription_id = ? AND lease_id IN ?", subscriptionID, leaseIDs).
		Group("lease_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]valueobject.Date, len(rows))
	for _, row := range rows {
		out[row.LeaseID] = row.LatestEnd
	}
	return out, nil
}

// CreateApplication persists a new rental application
func (r *GormLeaseRepository) CreateApplication(ctx context.Context, a *leasing.RentalApplication) error {
	model := &models.RentalApplicationModel{}
	model.FromDomain(a)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	a.Seq = model.Seq
	return nil
}

// FindApplicationByID finds a rental application by ID within a subscription
func (r *GormLeaseRepository) FindApplicationByID(ctx context.Context, subscriptionID, id uuid.UUID) (*leasing.RentalApplication, error) {
	var model models.RentalApplicationModel
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

// ListApplications returns a page of rental applications
func (r *GormLeaseRepository) ListApplications(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]leasing.RentalApplication, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.RentalApplicationModel{}).
		Where("subscription_id = ?", subscriptionID)
	if filter.Search != "" {
		query = query.Where("applicant_name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appModels []models.RentalApplicationModel
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&appModels).Error; err != nil {
		return nil, 0, err
	}

	apps := make([]leasing.RentalApplication, len(appModels))
	for i := range appModels {
		apps[i] = *appModels[i].ToDomain()
	}
	return apps, total, nil
}

// SaveApplication persists changes to a rental application
func (r *GormLeaseRepository) SaveApplication(ctx context.Context, a *leasing.RentalApplication) error {
	model := &models.RentalApplicationModel{}
	model.FromDomain(a)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteApplication removes a rental application within a subscription
func (r *GormLeaseRepository) DeleteApplication(ctx context.Context, subscriptionID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("subscription_id = ? AND id = ?", subscriptionID, id).
		Delete(&models.RentalApplicationModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
