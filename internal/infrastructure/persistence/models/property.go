package models

import (
	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// PropertyModel is the persistence model for the Property aggregate root.
type PropertyModel struct {
	SubscriptionAggregateModel
	Seq       int64  `gorm:"autoIncrement;uniqueIndex"`
	Name      string `gorm:"type:varchar(255);not null"`
	Address   string `gorm:"type:text"`
	Portfolio string `gorm:"type:varchar(100);index"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property.
func (m *PropertyModel) ToDomain() *property.Property {
	return &property.Property{
		SubscriptionAggregateRoot: m.ToDomainSubscriptionAggregateRoot(),
		Seq:                       m.Seq,
		Name:                      m.Name,
		Address:                   m.Address,
		Portfolio:                 m.Portfolio,
	}
}

// FromDomain populates the persistence model from a domain Property.
func (m *PropertyModel) FromDomain(p *property.Property) {
	m.FromDomainSubscriptionAggregateRoot(p.SubscriptionAggregateRoot)
	m.Seq = p.Seq
	m.Name = p.Name
	m.Address = p.Address
	m.Portfolio = p.Portfolio
}

// UnitModel is the persistence model for the Unit aggregate root.
type UnitModel struct {
	SubscriptionAggregateModel
	Seq        int64     `gorm:"autoIncrement;uniqueIndex"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Bedrooms   int       `gorm:"not null;default:0"`
	Bathrooms  int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the persistence model to a domain Unit.
func (m *UnitModel) ToDomain() *property.Unit {
	return &property.Unit{
		SubscriptionAggregateRoot: m.ToDomainSubscriptionAggregateRoot(),
		Seq:                       m.Seq,
		PropertyID:                m.PropertyID,
		Name:                      m.Name,
		Bedrooms:                  m.Bedrooms,
		Bathrooms:                 m.Bathrooms,
	}
}

// FromDomain populates the persistence model from a domain Unit.
func (m *UnitModel) FromDomain(u *property.Unit) {
	m.FromDomainSubscriptionAggregateRoot(u.SubscriptionAggregateRoot)
	m.Seq = u.Seq
	m.PropertyID = u.PropertyID
	m.Name = u.Name
	m.Bedrooms = u.Bedrooms
	m.Bathrooms = u.Bathrooms
}

// PropertyPhotoModel is the persistence model for property photos. A
// partial unique index on (parent_property_id) WHERE is_cover allows at
// most one cover per property.
type PropertyPhotoModel struct {
	SubscriptionAggregateModel
	ParentPropertyID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL              string    `gorm:"type:text;not null"`
	Caption          string    `gorm:"type:varchar(255)"`
	IsCover          bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PropertyPhotoModel) TableName() string {
	return "property_photos"
}

// ToDomain converts the persistence model to a domain Photo.
func (m *PropertyPhotoModel) ToDomain() *property.Photo {
	return &property.Photo{
		SubscriptionAggregateRoot: m.ToDomainSubscriptionAggregateRoot(),
		ParentPropertyID:          m.ParentPropertyID,
		URL:                       m.URL,
		Caption:                   m.Caption,
		IsCover:                   m.IsCover,
	}
}

// FromDomain populates the persistence model from a domain Photo.
func (m *PropertyPhotoModel) FromDomain(p *property.Photo) {
	m.FromDomainSubscriptionAggregateRoot(p.SubscriptionAggregateRoot)
	m.ParentPropertyID = p.ParentPropertyID
	m.URL = p.URL
	m.Caption = p.Caption
	m.IsCover = p.IsCover
}

// LateFeePolicyModel is the persistence model for the LateFeePolicy
// aggregate root. One row exists per property from the moment the
// property is created.
type LateFeePolicyModel struct {
	SubscriptionAggregateModel
	PropertyID             uuid.UUID                 `gorm:"type:uuid;not null;uniqueIndex"`
	LateFeeType            *property.LateFeeType     `gorm:"type:varchar(20)"`
	BaseAmountFee          valueobject.Money         `gorm:"type:decimal(18,2);not null;default:0"`
	EligibleCharges        *property.EligibleCharges `gorm:"type:varchar(30)"`
	ChargeDailyLateFees    bool                      `gorm:"not null;default:false"`
	DailyAmountPerMonthMax *valueobject.Money        `gorm:"type:decimal(18,2)"`
	GracePeriodType        *property.GracePeriodType `gorm:"type:varchar(30)"`
	GracePeriod            int                       `gorm:"not null;default:0"`
	StartDate              *valueobject.Date         `gorm:"type:date"`
	EndDate                *valueobject.Date         `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (LateFeePolicyModel) TableName() string {
	return "late_fee_policies"
}

// ToDomain converts the persistence model to a domain LateFeePolicy.
func (m *LateFeePolicyModel) ToDomain() *property.LateFeePolicy {
	return &property.LateFeePolicy{
		SubscriptionAggregateRoot: m.ToDomainSubscriptionAggregateRoot(),
		PropertyID:                m.PropertyID,
		LateFeeType:               m.LateFeeType,
		BaseAmountFee:             m.BaseAmountFee,
		EligibleCharges:           m.EligibleCharges,
		ChargeDailyLateFees:       m.ChargeDailyLateFees,
		DailyAmountPerMonthMax:    m.DailyAmountPerMonthMax,
		GracePeriodType:           m.GracePeriodType,
		GracePeriod:               m.GracePeriod,
		StartDate:                 m.StartDate,
		EndDate:                   m.EndDate,
	}
}

// FromDomain populates the persistence model from a domain LateFeePolicy.
func (m *LateFeePolicyModel) FromDomain(p *property.LateFeePolicy) {
	m.FromDomainSubscriptionAggregateRoot(p.SubscriptionAggregateRoot)
	m.PropertyID = p.PropertyID
	m.LateFeeType = p.LateFeeType
	m.BaseAmountFee = p.BaseAmountFee
	m.EligibleCharges = p.EligibleCharges
	m.ChargeDailyLateFees = p.ChargeDailyLateFees
	m.DailyAmountPerMonthMax = p.DailyAmountPerMonthMax
	m.GracePeriodType = p.GracePeriodType
	m.GracePeriod = p.GracePeriod
	m.StartDate = p.StartDate
	m.EndDate = p.EndDate
}
