package identity

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for subscriptions and users.
// User lookup is global (login happens before a tenant is known); role
// resolution counts related rows instead of reading stored flags.
type Repository interface {
	CreateSubscription(ctx context.Context, s *Subscription) error
	FindSubscriptionByID(ctx context.Context, id uuid.UUID) (*Subscription, error)

	// ListAllSubscriptionIDs returns every subscription id. The daily
	// invoice scheduler iterates them.
	ListAllSubscriptionIDs(ctx context.Context) ([]uuid.UUID, error)

	CreateUser(ctx context.Context, u *User) error
	FindUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	SaveUser(ctx context.Context, u *User) error

	// CreateStaffMembership grants a user staff (optionally admin)
	// standing within a subscription.
	CreateStaffMembership(ctx context.Context, userID, subscriptionID uuid.UUID, isAdmin bool) error

	// ResolveRoles computes the user's role bits: admin and staff from
	// membership rows, tenant from being the primary tenant of an
	// active lease.
	ResolveRoles(ctx context.Context, userID uuid.UUID) (Roles, error)
}
