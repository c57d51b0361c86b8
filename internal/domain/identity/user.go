package identity

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentdesk/backend/internal/domain/shared"
)

// Subscription is the tenant boundary. Every aggregate in the system
// carries its id and no query may cross it.
type Subscription struct {
	shared.BaseAggregateRoot
	Name string
}

// NewSubscription creates a subscription tenant
func NewSubscription(name string) (*Subscription, error) {
	if name == "" {
		return nil, shared.NewValidationError("Subscription name cannot be empty")
	}
	return &Subscription{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}

// User is a login principal. Role bits are never stored on the user;
// they are resolved per request by counting related rows (staff
// memberships, active leases held as primary tenant).
type User struct {
	shared.BaseAggregateRoot
	Seq                      int64
	Email                    string
	PasswordHash             string
	FullName                 string
	AssociatedSubscriptionID *uuid.UUID
}

// NewUser creates a user with a bcrypt-hashed password
func NewUser(email, password, fullName string) (*User, error) {
	if email == "" {
		return nil, shared.NewValidationError("Email cannot be empty")
	}
	if len(password) < 8 {
		return nil, shared.NewValidationError("Password must be at least 8 characters")
	}
	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		FullName:          fullName,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// Slug returns the user's external identifier ("usr-<seq>").
func (u *User) Slug() string {
	return shared.MustEncodeSlug(shared.SlugKindUser, u.Seq)
}

// SetPassword hashes and stores the password
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies the password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Roles are the computed authorization bits of a user.
type Roles struct {
	IsAdmin             bool
	IsTenant            bool
	IsSubscriptionStaff bool
}

// CanUseAdminEndpoints reports admin-endpoint eligibility: admins and
// staff qualify only when bound to a subscription.
func (u *User) CanUseAdminEndpoints(r Roles) bool {
	return (r.IsAdmin || r.IsSubscriptionStaff) && u.AssociatedSubscriptionID != nil
}

// CanUseTenantEndpoints reports tenant-endpoint eligibility.
func (r Roles) CanUseTenantEndpoints() bool {
	return r.IsTenant
}
