package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rentdesk/backend/internal/domain/accounting"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
)

// GormInvoiceRepository implements accounting.Repository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// CreateInvoice persists a new invoice with its charge lines
func (r *GormInvoiceRepository) CreateInvoice(ctx context.Context, inv *accounting.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := &models.InvoiceModel{}
		model.FromDomain(inv)
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		for i := range inv.Charges {
			chargeModel := &models.ChargeModel{}
			chargeModel.FromDomain(&inv.Charges[i])
			if err := tx.Create(chargeModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindInvoiceByID loads an invoice with its charges
func (r *GormInvoiceRepository) FindInvoiceByID(ctx context.Context, subscriptionID, id uuid.UUID) (*accounting.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Charges").
		Where("subscription_id = ? AND id = ?", subscriptionID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindInvoiceForUpdate loads an invoice holding a FOR UPDATE row lock.
// Callers must run inside WithinTx so the lock survives until commit.
func (r *GormInvoiceRepository) FindInvoiceForUpdate(ctx context.Context, subscriptionID, id uuid.UUID) (*accounting.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("subscription_id = ? AND id = ?", subscriptionID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	// Charges load after the lock; preloading would join inside the
	// locking clause.
	var chargeModels []models.ChargeModel
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND invoice_id = ?", subscriptionID, id).
		Find(&chargeModels).Error; err != nil {
		return nil, err
	}
	model.Charges = chargeModels
	return model.ToDomain(), nil
}

// ListInvoices returns a page of invoices with their charges
func (r *GormInvoiceRepository) ListInvoices(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]accounting.Invoice, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("subscription_id = ?", subscriptionID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoiceModels []models.InvoiceModel
	if err := query.
		Preload("Charges").
		Order("due_date DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&invoiceModels).Error; err != nil {
		return nil, 0, err
	}

	invoices := make([]accounting.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = *invoiceModels[i].ToDomain()
	}
	return invoices, total, nil
}

// ListInvoicesByLease returns every invoice of one lease
func (r *GormInvoiceRepository) ListInvoicesByLease(ctx context.Context, subscriptionID, leaseID uuid.UUID) ([]accounting.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Charges").
		Where("subscription_id = ? AND lease_id = ?", subscriptionID, leaseID).
		Order("interval_start_date ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	invoices := make([]accounting.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = *invoiceModels[i].ToDomain()
	}
	return invoices, nil
}

// SaveInvoice persists changes to an invoice
func (r *GormInvoiceRepository) SaveInvoice(ctx context.Context, inv *accounting.Invoice) error {
	model := &models.InvoiceModel{}
	model.FromDomain(inv)
	return r.db.WithContext(ctx).
		Omit("Charges").
		Save(model).Error
}

// CreateCharge persists a new charge line
func (r *GormInvoiceRepository) CreateCharge(ctx context.Context, c *accounting.Charge) error {
	model := &models.ChargeModel{}
	model.FromDomain(c)
	return r.db.WithContext(ctx).Create(model).Error
}

// ListChargesByInvoice returns the charge lines of one invoice
func (r *GormInvoiceRepository) ListChargesByInvoice(ctx context.Context, subscriptionID, invoiceID uuid.UUID) ([]accounting.Charge, error) {
	var chargeModels []models.ChargeModel
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND invoice_id = ?", subscriptionID, invoiceID).
		Find(&chargeModels).Error; err != nil {
		return nil, err
	}
	charges := make([]accounting.Charge, len(chargeModels))
	for i := range chargeModels {
		charges[i] = *chargeModels[i].ToDomain()
	}
	return charges, nil
}

// RecordPayment persists the payment and the updated invoice in one
// transaction
func (r *GormInvoiceRepository) RecordPayment(ctx context.Context, p *accounting.Payment, inv *accounting.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		paymentModel := &models.PaymentModel{}
		paymentModel.FromDomain(p)
		if err := tx.Create(paymentModel).Error; err != nil {
			return err
		}

		invoiceModel := &models.InvoiceModel{}
		invoiceModel.FromDomain(inv)
		return tx.Omit("Charges").Save(invoiceModel).Error
	})
}

// ListPaymentsByInvoice returns the payments applied to one invoice
func (r *GormInvoiceRepository) ListPaymentsByInvoice(ctx context.Context, subscriptionID, invoiceID uuid.UUID) ([]accounting.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND invoice_id = ?", subscriptionID, invoiceID).
		Order("payment_date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]accounting.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments, nil
}

// WithinTx runs fn with a repository bound to one transaction
func (r *GormInvoiceRepository) WithinTx(ctx context.Context, fn func(repo accounting.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormInvoiceRepository{db: tx})
	})
}
