package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/identity"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/auth"
)

var errInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")

// AuthService handles signup and token issuance. The two token
// endpoints issue the same token shape but gate on different computed
// roles; nothing role-related is ever read from storage at request time.
type AuthService struct {
	users     identity.Repository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.Repository, jwt *auth.JWTService, blacklist auth.TokenBlacklist) *AuthService {
	return &AuthService{
		users:     users,
		jwt:       jwt,
		blacklist: blacklist,
	}
}

// Signup creates a subscription together with its first admin user
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	if _, err := s.users.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	sub, err := identity.NewSubscription(req.SubscriptionName)
	if err != nil {
		return nil, err
	}
	if err := s.users.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	u, err := identity.NewUser(req.Email, req.Password, req.FullName)
	if err != nil {
		return nil, err
	}
	u.AssociatedSubscriptionID = &sub.ID
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	if err := s.users.CreateStaffMembership(ctx, u.ID, sub.ID, true); err != nil {
		return nil, err
	}

	return &SignupResponse{
		SubscriptionID:   sub.ID,
		SubscriptionName: sub.Name,
		User:             ToUserResponse(u),
	}, nil
}

// RegisterUser creates a user with no role standing
func (s *AuthService) RegisterUser(ctx context.Context, req RegisterUserRequest) (*UserResponse, error) {
	if _, err := s.users.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	u, err := identity.NewUser(req.Email, req.Password, req.FullName)
	if err != nil {
		return nil, err
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	response := ToUserResponse(u)
	return &response, nil
}

// AdminToken authenticates staff credentials and issues an admin-scoped
// access token. Eligibility is computed from membership rows at call
// time, and the token always carries the user's subscription.
func (s *AuthService) AdminToken(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	u, roles, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}
	if !u.CanUseAdminEndpoints(roles) {
		return nil, errInvalidCredentials
	}

	return s.issue(auth.GenerateTokenInput{
		UserID:         u.ID,
		SubscriptionID: u.AssociatedSubscriptionID,
		IsAdmin:        true,
	})
}

// TenantToken authenticates tenant credentials and issues a
// tenant-scoped access token. Tenancy is computed from holding an
// active lease as primary tenant.
func (s *AuthService) TenantToken(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	u, roles, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}
	if !roles.CanUseTenantEndpoints() {
		return nil, errInvalidCredentials
	}

	return s.issue(auth.GenerateTokenInput{
		UserID:         u.ID,
		SubscriptionID: u.AssociatedSubscriptionID,
		IsTenant:       true,
	})
}

// Logout revokes the presented token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	return s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL())
}

// LogoutAll revokes every outstanding token of the user
func (s *AuthService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	return s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), s.jwt.GetExpiration())
}

// GetUser retrieves a user by ID
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(u)
	return &response, nil
}

func (s *AuthService) authenticate(ctx context.Context, req TokenRequest) (*identity.User, identity.Roles, error) {
	u, err := s.users.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, identity.Roles{}, errInvalidCredentials
		}
		return nil, identity.Roles{}, err
	}
	if !u.CheckPassword(req.Password) {
		return nil, identity.Roles{}, errInvalidCredentials
	}

	roles, err := s.users.ResolveRoles(ctx, u.ID)
	if err != nil {
		return nil, identity.Roles{}, err
	}
	return u, roles, nil
}

func (s *AuthService) issue(input auth.GenerateTokenInput) (*TokenResponse, error) {
	issued, err := s.jwt.GenerateToken(input)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		Token:     issued.Token,
		TokenType: issued.TokenType,
		ExpiresAt: issued.ExpiresAt,
	}, nil
}
