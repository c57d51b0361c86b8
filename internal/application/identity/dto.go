package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/identity"
)

// SignupRequest onboards a subscription together with its first admin
// user
type SignupRequest struct {
	SubscriptionName string `json:"subscription_name" binding:"required,min=1,max=255"`
	Email            string `json:"email" binding:"required,email,max=255"`
	Password         string `json:"password" binding:"required,min=8,max=72"`
	FullName         string `json:"full_name" binding:"max=255"`
}

// RegisterUserRequest creates a user without any role standing. Roles
// come later, from staff memberships or from holding an active lease.
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"full_name" binding:"max=255"`
}

// TokenRequest is a credential pair presented to a token endpoint
type TokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued access token
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID                       uuid.UUID  `json:"id"`
	Slug                     string     `json:"slug"`
	Email                    string     `json:"email"`
	FullName                 string     `json:"full_name"`
	AssociatedSubscriptionID *uuid.UUID `json:"associated_subscription_id,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
}

// ToUserResponse converts a domain User to its response DTO
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:                       u.ID,
		Slug:                     u.Slug(),
		Email:                    u.Email,
		FullName:                 u.FullName,
		AssociatedSubscriptionID: u.AssociatedSubscriptionID,
		CreatedAt:                u.CreatedAt,
	}
}

// SignupResponse returns the created subscription and admin user
type SignupResponse struct {
	SubscriptionID   uuid.UUID    `json:"subscription_id"`
	SubscriptionName string       `json:"subscription_name"`
	User             UserResponse `json:"user"`
}
