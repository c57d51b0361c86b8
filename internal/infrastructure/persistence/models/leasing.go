package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/leasing"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// LeaseModel is the persistence model for the Lease aggregate root. The
// one-active-lease-per-unit rule lives in a partial unique index on
// (unit_id) WHERE status = 'ACTIVE', created by the SQL migrations.
type LeaseModel struct {
	SubscriptionAggregateModel
	UnitID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	PropertyID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	PrimaryTenantID uuid.UUID           `gorm:"type:uuid;not null;index"`
	ApplicationID   *uuid.UUID          `gorm:"type:uuid;index"`
	Status          leasing.LeaseStatus `gorm:"type:varchar(20);not null;index"`
	LeaseType       leasing.LeaseType   `gorm:"type:varchar(20);not null"`
	RentCycle       leasing.RentCycle   `gorm:"type:varchar(20);not null"`
	StartDate       valueobject.Date    `gorm:"type:date;not null"`
	EndDate         valueobject.Date    `gorm:"type:date"`
	DueDate         valueobject.Date    `gorm:"type:date"`
	Amount          valueobject.Money   `gorm:"type:decimal(18,2);not null"`
	ClosedOn        *time.Time
}

// TableName returns the table name for GORM
func (LeaseModel) TableName() string {
	return "leases"
}

// ToDomain converts the persistence model to a domain Lease.
func (m *LeaseModel) ToDomain() *leasing.Lease {
	return &leasing.Lease{
		SubscriptionAggregateRoot: m.ToDomainSubscriptionAggregateRoot(),
		UnitID:                    m.UnitID,
		PropertyID:                m.PropertyID,
		PrimaryTenantID:           m.PrimaryTenantID,
		ApplicationID:             m.ApplicationID,
		Status:                    m.Status,
		LeaseType:                 m.LeaseType,
		RentCycle:                 m.RentCycle,
		StartDate:                 m.StartDate,
		EndDate:                   m.EndDate,
		DueDate:                   m.DueDate,
		Amount:                    m.Amount,
		ClosedOn:                  m.ClosedOn,
	}
}

// FromDomain populates the persistence model from a domain Lease.
func (m *LeaseModel) FromDomain(l *leasing.Lease) {
	m.FromDomainSubscriptionAggregateRoot(l.SubscriptionAggregateRoot)
	m.UnitID = l.UnitID
	m.PropertyID = l.PropertyID
	m.PrimaryTenantID = l.PrimaryTenantID
	m.ApplicationID = l.ApplicationID
	m.Status = l.Status
	m.LeaseType = l.LeaseType
	m.RentCycle = l.RentCycle
	m.StartDate = l.StartDate
	m.EndDate = l.EndDate
	m.DueDate = l.DueDate
	m.Amount = l.Amount
	m.ClosedOn = l.ClosedOn
}

// RentalApplicationModel is the persistence model for RentalApplication.
type RentalApplicationModel struct {
	SubscriptionAggregateModel
	Seq            int64                     `gorm:"autoIncrement;uniqueIndex"`
	UnitID         uuid.UUID                 `gorm:"type:uuid;not null;index"`
	ApplicantName  string                    `gorm:"type:varchar(255);not null"`
	ApplicantEmail string                    `gorm:"type:varchar(255)"`
	Status         leasing.ApplicationStatus `gorm:"type:varchar(20);not null"`
	LeaseID        *uuid.UUID                `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (RentalApplicationModel) TableName() string {
	return "rental_applications"
}

// ToDomain converts the persistence model to a domain RentalApplication.
func (m *RentalApplicationModel) ToDomain() *leasing.RentalApplication {
	return &leasing.RentalApplication{
		SubscriptionAggregateRoot: m.ToDomainSubscriptionAggregateRoot(),
		Seq:                       m.Seq,
		UnitID:                    m.UnitID,
		ApplicantName:             m.ApplicantName,
		ApplicantEmail:            m.ApplicantEmail,
		Status:                    m.Status,
		LeaseID:                   m.LeaseID,
	}
}

// FromDomain populates the persistence model from a domain RentalApplication.
func (m *RentalApplicationModel) FromDomain(a *leasing.RentalApplication) {
	m.FromDomainSubscriptionAggregateRoot(a.SubscriptionAggregateRoot)
	m.Seq = a.Seq
	m.UnitID = a.UnitID
	m.ApplicantName = a.ApplicantName
	m.ApplicantEmail = a.ApplicantEmail
	m.Status = a.Status
	m.LeaseID = a.LeaseID
}
