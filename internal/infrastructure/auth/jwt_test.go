package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentdesk/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	cfg := config.JWTConfig{
		Secret:     "test-secret-key-at-least-32-chars",
		Expiration: 15 * time.Minute,
		Issuer:     "test-issuer",
	}
	return NewJWTService(cfg)
}

func newAdminInput() GenerateTokenInput {
	subscriptionID := uuid.New()
	return GenerateTokenInput{
		UserID:         uuid.New(),
		SubscriptionID: &subscriptionID,
		IsAdmin:        true,
	}
}

func TestGenerateToken(t *testing.T) {
	svc := newTestJWTService()
	input := newAdminInput()

	issued, err := svc.GenerateToken(input)

	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.Equal(t, "Bearer", issued.TokenType)
	assert.True(t, issued.ExpiresAt.After(time.Now()))
}

func TestValidateToken_AdminClaims(t *testing.T) {
	svc := newTestJWTService()
	input := newAdminInput()

	issued, err := svc.GenerateToken(input)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(issued.Token)

	require.NoError(t, err)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, input.SubscriptionID.String(), claims.SubscriptionID)
	assert.True(t, claims.IsAdmin)
	assert.False(t, claims.IsTenant)

	userID, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, input.UserID, userID)

	subscriptionID, err := claims.GetSubscriptionUUID()
	require.NoError(t, err)
	assert.Equal(t, *input.SubscriptionID, subscriptionID)
}

func TestValidateToken_TenantWithoutSubscription(t *testing.T) {
	svc := newTestJWTService()

	issued, err := svc.GenerateToken(GenerateTokenInput{
		UserID:   uuid.New(),
		IsTenant: true,
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(issued.Token)

	require.NoError(t, err)
	assert.True(t, claims.IsTenant)
	assert.False(t, claims.IsAdmin)

	_, err = claims.GetSubscriptionUUID()
	assert.ErrorIs(t, err, ErrMissingSubscriptionID)
}

func TestValidateToken_NoRoleGranted(t *testing.T) {
	svc := newTestJWTService()

	issued, err := svc.GenerateToken(GenerateTokenInput{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.ValidateToken(issued.Token)

	assert.ErrorIs(t, err, ErrNoRoleGranted)
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:     "test-secret-key-at-least-32-chars",
		Expiration: -1 * time.Hour, // Already expired
		Issuer:     "test-issuer",
	}
	svc := NewJWTService(cfg)

	issued, err := svc.GenerateToken(newAdminInput())
	require.NoError(t, err)

	_, err = svc.ValidateToken(issued.Token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_InvalidToken(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateToken("invalid-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issued, err := newTestJWTService().GenerateToken(newAdminInput())
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:     "another-secret-key-32-characters!",
		Expiration: 15 * time.Minute,
		Issuer:     "test-issuer",
	})

	_, err = other.ValidateToken(issued.Token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestInMemoryTokenBlacklist_JTI(t *testing.T) {
	bl := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	blacklisted, err := bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, blacklisted)

	require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))

	blacklisted, err = bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestInMemoryTokenBlacklist_UserInvalidation(t *testing.T) {
	bl := NewInMemoryTokenBlacklist()
	ctx := context.Background()
	userID := uuid.New().String()

	issuedBefore := time.Now().Add(-time.Minute)
	require.NoError(t, bl.AddUserTokensToBlacklist(ctx, userID, time.Hour))

	invalidated, err := bl.IsUserTokenInvalidated(ctx, userID, issuedBefore)
	require.NoError(t, err)
	assert.True(t, invalidated, "tokens issued before invalidation are rejected")

	issuedAfter := time.Now().Add(time.Minute)
	invalidated, err = bl.IsUserTokenInvalidated(ctx, userID, issuedAfter)
	require.NoError(t, err)
	assert.False(t, invalidated)
}
