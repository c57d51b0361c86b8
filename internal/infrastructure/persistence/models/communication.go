package models

import (
	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/communication"
)

// AnnouncementModel is the persistence model for Announcement.
type AnnouncementModel struct {
	SubscriptionAggregateModel
	Title      string                      `gorm:"type:varchar(255);not null"`
	Body       string                      `gorm:"type:text"`
	Selection  communication.SelectionMode `gorm:"type:varchar(10);not null"`
	Properties []AnnouncementPropertyModel `gorm:"foreignKey:AnnouncementID;references:ID;constraint:OnDelete:CASCADE"`
	Units      []AnnouncementUnitModel     `gorm:"foreignKey:AnnouncementID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (AnnouncementModel) TableName() string {
	return "announcements"
}

// AnnouncementPropertyModel is one row of an announcement's expanded
// property audience.
type AnnouncementPropertyModel struct {
	AnnouncementID uuid.UUID `gorm:"type:uuid;primaryKey"`
	PropertyID     uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName returns the table name for GORM
func (AnnouncementPropertyModel) TableName() string {
	return "announcement_properties"
}

// AnnouncementUnitModel is one row of an announcement's expanded unit
// audience.
type AnnouncementUnitModel struct {
	AnnouncementID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UnitID         uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName returns the table name for GORM
func (AnnouncementUnitModel) TableName() string {
	return "announcement_units"
}

// ToDomain converts the persistence model to a domain Announcement.
func (m *AnnouncementModel) ToDomain() *communication.Announcement {
	a := &communication.Announcement{
		SubscriptionAggregateRoot: m.ToDomainSubscriptionAggregateRoot(),
		Title:                     m.Title,
		Body:                      m.Body,
		Selection:                 m.Selection,
	}
	for _, p := range m.Properties {
		a.PropertyIDs = append(a.PropertyIDs, p.PropertyID)
	}
	for _, u := range m.Units {
		a.UnitIDs = append(a.UnitIDs, u.UnitID)
	}
	return a
}

// FromDomain populates the persistence model from a domain Announcement,
// including its audience rows.
func (m *AnnouncementModel) FromDomain(a *communication.Announcement) {
	m.FromDomainSubscriptionAggregateRoot(a.SubscriptionAggregateRoot)
	m.Title = a.Title
	m.Body = a.Body
	m.Selection = a.Selection
	m.Properties = make([]AnnouncementPropertyModel, 0, len(a.PropertyIDs))
	for _, pid := range a.PropertyIDs {
		m.Properties = append(m.Properties, AnnouncementPropertyModel{AnnouncementID: a.ID, PropertyID: pid})
	}
	m.Units = make([]AnnouncementUnitModel, 0, len(a.UnitIDs))
	for _, uid := range a.UnitIDs {
		m.Units = append(m.Units, AnnouncementUnitModel{AnnouncementID: a.ID, UnitID: uid})
	}
}
