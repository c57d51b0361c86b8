package models

import (
	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/identity"
)

// SubscriptionModel is the persistence model for Subscription.
type SubscriptionModel struct {
	AggregateModel
	Name string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToDomain converts the persistence model to a domain Subscription.
func (m *SubscriptionModel) ToDomain() *identity.Subscription {
	return &identity.Subscription{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
	}
}

// FromDomain populates the persistence model from a domain Subscription.
func (m *SubscriptionModel) FromDomain(s *identity.Subscription) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Name = s.Name
}

// UserModel is the persistence model for User. Role bits are not stored;
// ResolveRoles counts related rows.
type UserModel struct {
	AggregateModel
	Seq                      int64      `gorm:"autoIncrement;uniqueIndex"`
	Email                    string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash             string     `gorm:"type:varchar(255);not null"`
	FullName                 string     `gorm:"type:varchar(255)"`
	AssociatedSubscriptionID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot:        m.ToDomainAggregateRoot(),
		Seq:                      m.Seq,
		Email:                    m.Email,
		PasswordHash:             m.PasswordHash,
		FullName:                 m.FullName,
		AssociatedSubscriptionID: m.AssociatedSubscriptionID,
	}
}

// FromDomain populates the persistence model from a domain User.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Seq = u.Seq
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.FullName = u.FullName
	m.AssociatedSubscriptionID = u.AssociatedSubscriptionID
}

// StaffMembershipModel links a user to a subscription with a staff or
// admin role. Role bits are derived by counting these rows.
type StaffMembershipModel struct {
	BaseModel
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_staff_user_subscription,priority:1"`
	SubscriptionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_staff_user_subscription,priority:2"`
	IsAdmin        bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (StaffMembershipModel) TableName() string {
	return "staff_memberships"
}
