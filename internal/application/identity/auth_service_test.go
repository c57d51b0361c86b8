package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rentdesk/backend/internal/domain/identity"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/auth"
	"github.com/rentdesk/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateSubscription(ctx context.Context, s *identity.Subscription) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockUserRepository) FindSubscriptionByID(ctx context.Context, id uuid.UUID) (*identity.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Subscription), args.Error(1)
}

func (m *MockUserRepository) ListAllSubscriptionIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) CreateStaffMembership(ctx context.Context, userID, subscriptionID uuid.UUID, isAdmin bool) error {
	args := m.Called(ctx, userID, subscriptionID, isAdmin)
	return args.Error(0)
}

func (m *MockUserRepository) ResolveRoles(ctx context.Context, userID uuid.UUID) (identity.Roles, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(identity.Roles), args.Error(1)
}

func newTestAuthService(repo *MockUserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-with-enough-bytes",
		Expiration: 15 * time.Minute,
		Issuer:     "test-issuer",
	})
	return NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist())
}

func staffUser(t *testing.T, subscriptionID uuid.UUID) *identity.User {
	t.Helper()
	u, err := identity.NewUser("staff@example.com", "correct-horse", "Staff Member")
	require.NoError(t, err)
	u.AssociatedSubscriptionID = &subscriptionID
	return u
}

func TestAuthService_Signup(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)

	mockRepo.On("FindUserByEmail", mock.Anything, "owner@example.com").Return(nil, shared.ErrNotFound)
	mockRepo.On("CreateSubscription", mock.Anything, mock.AnythingOfType("*identity.Subscription")).Return(nil)
	mockRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*identity.User")).
		Run(func(args mock.Arguments) {
			// The real repository populates Seq from the DB autoincrement
			args.Get(1).(*identity.User).Seq = 1
		}).
		Return(nil)
	mockRepo.On("CreateStaffMembership", mock.Anything, mock.Anything, mock.Anything, true).Return(nil)

	resp, err := service.Signup(context.Background(), SignupRequest{
		SubscriptionName: "Acme Rentals",
		Email:            "owner@example.com",
		Password:         "password123",
		FullName:         "Alex Owner",
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme Rentals", resp.SubscriptionName)
	require.NotNil(t, resp.User.AssociatedSubscriptionID)
	assert.Equal(t, resp.SubscriptionID, *resp.User.AssociatedSubscriptionID)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)

	existing, err := identity.NewUser("owner@example.com", "password123", "")
	require.NoError(t, err)
	mockRepo.On("FindUserByEmail", mock.Anything, "owner@example.com").Return(existing, nil)

	_, err = service.Signup(context.Background(), SignupRequest{
		SubscriptionName: "Acme Rentals",
		Email:            "owner@example.com",
		Password:         "password123",
	})

	require.Error(t, err)
	mockRepo.AssertNotCalled(t, "CreateSubscription")
}

func TestAuthService_AdminToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)
	subscriptionID := uuid.New()
	u := staffUser(t, subscriptionID)

	mockRepo.On("FindUserByEmail", mock.Anything, u.Email).Return(u, nil)
	mockRepo.On("ResolveRoles", mock.Anything, u.ID).
		Return(identity.Roles{IsAdmin: true, IsSubscriptionStaff: true}, nil)

	resp, err := service.AdminToken(context.Background(), TokenRequest{
		Email:    u.Email,
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.NotEmpty(t, resp.Token)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_AdminToken_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)
	u := staffUser(t, uuid.New())

	mockRepo.On("FindUserByEmail", mock.Anything, u.Email).Return(u, nil)

	_, err := service.AdminToken(context.Background(), TokenRequest{
		Email:    u.Email,
		Password: "wrong",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	mockRepo.AssertNotCalled(t, "ResolveRoles")
}

func TestAuthService_AdminToken_TenantOnlyUserRejected(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)
	u := staffUser(t, uuid.New())

	mockRepo.On("FindUserByEmail", mock.Anything, u.Email).Return(u, nil)
	mockRepo.On("ResolveRoles", mock.Anything, u.ID).Return(identity.Roles{IsTenant: true}, nil)

	_, err := service.AdminToken(context.Background(), TokenRequest{
		Email:    u.Email,
		Password: "correct-horse",
	})

	require.Error(t, err)
}

func TestAuthService_AdminToken_StaffWithoutSubscriptionRejected(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)

	u, err := identity.NewUser("floating@example.com", "correct-horse", "")
	require.NoError(t, err)

	mockRepo.On("FindUserByEmail", mock.Anything, u.Email).Return(u, nil)
	mockRepo.On("ResolveRoles", mock.Anything, u.ID).
		Return(identity.Roles{IsAdmin: true, IsSubscriptionStaff: true}, nil)

	_, err = service.AdminToken(context.Background(), TokenRequest{
		Email:    u.Email,
		Password: "correct-horse",
	})

	require.Error(t, err)
}

func TestAuthService_TenantToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)
	u := staffUser(t, uuid.New())

	mockRepo.On("FindUserByEmail", mock.Anything, u.Email).Return(u, nil)
	mockRepo.On("ResolveRoles", mock.Anything, u.ID).Return(identity.Roles{IsTenant: true}, nil)

	resp, err := service.TenantToken(context.Background(), TokenRequest{
		Email:    u.Email,
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthService_TenantToken_NonTenantRejected(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)
	u := staffUser(t, uuid.New())

	mockRepo.On("FindUserByEmail", mock.Anything, u.Email).Return(u, nil)
	mockRepo.On("ResolveRoles", mock.Anything, u.ID).
		Return(identity.Roles{IsAdmin: true, IsSubscriptionStaff: true}, nil)

	_, err := service.TenantToken(context.Background(), TokenRequest{
		Email:    u.Email,
		Password: "correct-horse",
	})

	require.Error(t, err)
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-with-enough-bytes",
		Expiration: 15 * time.Minute,
		Issuer:     "test-issuer",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	service := NewAuthService(mockRepo, jwtService, blacklist)

	issued, err := jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID:  uuid.New(),
		IsAdmin: true,
	})
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(issued.Token)
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), claims))

	revoked, err := blacklist.IsBlacklisted(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}
