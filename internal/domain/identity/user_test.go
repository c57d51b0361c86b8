package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	_, err := NewUser("", "password123", "Jo Harper")
	assert.Error(t, err)
	_, err = NewUser("jo@example.com", "short", "Jo Harper")
	assert.Error(t, err)

	u, err := NewUser("jo@example.com", "password123", "Jo Harper")
	require.NoError(t, err)
	assert.True(t, u.CheckPassword("password123"))
	assert.False(t, u.CheckPassword("wrong-password"))
	assert.NotEqual(t, "password123", u.PasswordHash)

	u.Seq = 3
	assert.Equal(t, "usr-3", u.Slug())
}

func TestUser_EndpointEligibility(t *testing.T) {
	u, err := NewUser("jo@example.com", "password123", "Jo Harper")
	require.NoError(t, err)

	assert.False(t, u.CanUseAdminEndpoints(Roles{IsAdmin: true}),
		"admins without a subscription cannot use admin endpoints")

	subID := uuid.New()
	u.AssociatedSubscriptionID = &subID
	assert.True(t, u.CanUseAdminEndpoints(Roles{IsAdmin: true}))
	assert.True(t, u.CanUseAdminEndpoints(Roles{IsSubscriptionStaff: true}))
	assert.False(t, u.CanUseAdminEndpoints(Roles{IsTenant: true}))

	assert.True(t, Roles{IsTenant: true}.CanUseTenantEndpoints())
	assert.False(t, Roles{IsAdmin: true}.CanUseTenantEndpoints())
}

func TestNewSubscription(t *testing.T) {
	_, err := NewSubscription("")
	assert.Error(t, err)

	s, err := NewSubscription("Hilltop Management")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
}
