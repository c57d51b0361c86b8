package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/accounting"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
// Only input columns are stored; payable amounts and late fees are
// derived on read.
type InvoiceModel struct {
	SubscriptionAggregateModel
	LeaseID           uuid.UUID                `gorm:"type:uuid;not null;index"`
	PropertyID        uuid.UUID                `gorm:"type:uuid;not null;index"`
	UnitID            uuid.UUID                `gorm:"type:uuid;not null;index"`
	IntervalStartDate valueobject.Date         `gorm:"type:date;not null"`
	IntervalEndDate   valueobject.Date         `gorm:"type:date;not null;index"`
	DueDate           valueobject.Date         `gorm:"type:date;not null;index"`
	RentAmount        valueobject.Money        `gorm:"type:decimal(18,2);not null"`
	ArrearsAmount     valueobject.Money        `gorm:"type:decimal(18,2);not null;default:0"`
	ArrearOfID        *uuid.UUID               `gorm:"type:uuid"`
	PayedAt           *time.Time               `gorm:"column:payed_at"`
	PayedLateFee      valueobject.Money        `gorm:"column:payed_late_fee;type:decimal(18,2);not null;default:0"`
	TotalPaidAmount   valueobject.Money        `gorm:"type:decimal(18,2);not null;default:0"`
	Status            accounting.InvoiceStatus `gorm:"type:varchar(30);not null;index"`
	Charges           []ChargeModel            `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice.
func (m *InvoiceModel) ToDomain() *accounting.Invoice {
	inv := &accounting.Invoice{
		SubscriptionAggregateRoot: m.ToDomainSubscriptionAggregateRoot(),
		LeaseID:                   m.LeaseID,
		PropertyID:                m.PropertyID,
		UnitID:                    m.UnitID,
		IntervalStartDate:         m.IntervalStartDate,
		IntervalEndDate:           m.IntervalEndDate,
		DueDate:                   m.DueDate,
		RentAmount:                m.RentAmount,
		ArrearsAmount:             m.ArrearsAmount,
		ArrearOfID:                m.ArrearOfID,
		PayedAt:                   m.PayedAt,
		PayedLateFee:              m.PayedLateFee,
		TotalPaidAmount:           m.TotalPaidAmount,
		Status:                    m.Status,
	}
	if len(m.Charges) > 0 {
		inv.Charges = make([]accounting.Charge, 0, len(m.Charges))
		for i := range m.Charges {
			inv.Charges = append(inv.Charges, *m.Charges[i].ToDomain())
		}
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice.
// Charge rows are persisted through their own model.
func (m *InvoiceModel) FromDomain(inv *accounting.Invoice) {
	m.FromDomainSubscriptionAggregateRoot(inv.SubscriptionAggregateRoot)
	m.LeaseID = inv.LeaseID
	m.PropertyID = inv.PropertyID
	m.UnitID = inv.UnitID
	m.IntervalStartDate = inv.IntervalStartDate
	m.IntervalEndDate = inv.IntervalEndDate
	m.DueDate = inv.DueDate
	m.RentAmount = inv.RentAmount
	m.ArrearsAmount = inv.ArrearsAmount
	m.ArrearOfID = inv.ArrearOfID
	m.PayedAt = inv.PayedAt
	m.PayedLateFee = inv.PayedLateFee
	m.TotalPaidAmount = inv.TotalPaidAmount
	m.Status = inv.Status
}

// ChargeModel is the persistence model for Charge. ParentChargeID is a
// plain nullable FK; occurrence depth is enforced in the domain.
type ChargeModel struct {
	SubscriptionAggregateModel
	InvoiceID      uuid.UUID                `gorm:"type:uuid;not null;index"`
	PropertyID     uuid.UUID                `gorm:"type:uuid;index"`
	Title          string                   `gorm:"type:varchar(255)"`
	Amount         valueobject.Money        `gorm:"type:decimal(18,2);not null"`
	ChargeType     accounting.ChargeType    `gorm:"type:varchar(20);not null"`
	Status         *accounting.ChargeStatus `gorm:"type:varchar(20)"`
	ParentChargeID *uuid.UUID               `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ChargeModel) TableName() string {
	return "charges"
}

// ToDomain converts the persistence model to a domain Charge.
func (m *ChargeModel) ToDomain() *accounting.Charge {
	return &accounting.Charge{
		SubscriptionAggregateRoot: m.ToDomainSubscriptionAggregateRoot(),
		InvoiceID:                 m.InvoiceID,
		PropertyID:                m.PropertyID,
		Title:                     m.Title,
		Amount:                    m.Amount,
		ChargeType:                m.ChargeType,
		Status:                    m.Status,
		ParentChargeID:            m.ParentChargeID,
	}
}

// FromDomain populates the persistence model from a domain Charge.
func (m *ChargeModel) FromDomain(c *accounting.Charge) {
	m.FromDomainSubscriptionAggregateRoot(c.SubscriptionAggregateRoot)
	m.InvoiceID = c.InvoiceID
	m.PropertyID = c.PropertyID
	m.Title = c.Title
	m.Amount = c.Amount
	m.ChargeType = c.ChargeType
	m.Status = c.Status
	m.ParentChargeID = c.ParentChargeID
}

// PaymentModel is the persistence model for Payment.
type PaymentModel struct {
	SubscriptionAggregateModel
	InvoiceID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount        valueobject.Money `gorm:"type:decimal(18,2);not null"`
	PaymentDate   valueobject.Date  `gorm:"type:date;not null"`
	PaymentMethod string            `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment.
func (m *PaymentModel) ToDomain() *accounting.Payment {
	return &accounting.Payment{
		SubscriptionAggregateRoot: m.ToDomainSubscriptionAggregateRoot(),
		InvoiceID:                 m.InvoiceID,
		Amount:                    m.Amount,
		PaymentDate:               m.PaymentDate,
		PaymentMethod:             m.PaymentMethod,
	}
}

// FromDomain populates the persistence model from a domain Payment.
func (m *PaymentModel) FromDomain(p *accounting.Payment) {
	m.FromDomainSubscriptionAggregateRoot(p.SubscriptionAggregateRoot)
	m.InvoiceID = p.InvoiceID
	m.Amount = p.Amount
	m.PaymentDate = p.PaymentDate
	m.PaymentMethod = p.PaymentMethod
}
