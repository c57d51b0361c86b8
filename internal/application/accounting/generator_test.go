package accounting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rentdesk/backend/internal/domain/accounting"
	"github.com/rentdesk/backend/internal/domain/leasing"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// MockLeaseRepository is a mock implementation of leasing.Repository
type MockLeaseRepository struct {
	mock.Mock
}

func (m *MockLeaseRepository) Create(ctx context.Context, l *leasing.Lease) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeaseRepository) FindByID(ctx context.Context, subscriptionID, id uuid.UUID) (*leasing.Lease, error) {
	args := m.Called(ctx, subscriptionID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) List(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]leasing.Lease, int64, error) {
	args := m.Called(ctx, subscriptionID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]leasing.Lease), args.Get(1).(int64), args.Error(2)
}

func (m *MockLeaseRepository) ListActive(ctx context.Context, subscriptionID uuid.UUID) ([]leasing.Lease, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]leasing.Lease), args.Error(1)
}

func (m *MockLeaseRepository) Save(ctx context.Context, l *leasing.Lease) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeaseRepository) Delete(ctx context.Context, subscriptionID, id uuid.UUID) error {
	args := m.Called(ctx, subscriptionID, id)
	return args.Error(0)
}

func (m *MockLeaseRepository) LatestInvoiceIntervalEnds(ctx context.Context, subscriptionID uuid.UUID, leaseIDs []uuid.UUID) (map[uuid.UUID]valueobject.Date, error) {
	args := m.Called(ctx, subscriptionID, leaseIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]valueobject.Date), args.Error(1)
}

func (m *MockLeaseRepository) CreateApplication(ctx context.Context, a *leasing.RentalApplication) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockLeaseRepository) FindApplicationByID(ctx context.Context, subscriptionID, id uuid.UUID) (*leasing.RentalApplication, error) {
	args := m.Called(ctx, subscriptionID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.RentalApplication), args.Error(1)
}

func (m *MockLeaseRepository) ListApplications(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]leasing.RentalApplication, int64, error) {
	args := m.Called(ctx, subscriptionID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]leasing.RentalApplication), args.Get(1).(int64), args.Error(2)
}

func (m *MockLeaseRepository) SaveApplication(ctx context.Context, a *leasing.RentalApplication) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockLeaseRepository) DeleteApplication(ctx context.Context, subscriptionID, id uuid.UUID) error {
	args := m.Called(ctx, subscriptionID, id)
	return args.Error(0)
}

func monthlyLease(t *testing.T, subscriptionID uuid.UUID, start valueobject.Date) *leasing.Lease {
	t.Helper()
	l, err := leasing.NewLease(
		subscriptionID, uuid.New(), uuid.New(), uuid.New(),
		leasing.LeaseTypeAtWill, leasing.RentCycleMonthly,
		start, valueobject.Date{}, start.AddDays(4),
		valueobject.NewMoneyFromInt(900),
	)
	require.NoError(t, err)
	return l
}

func TestInvoiceGenerationService_GenerateDueInvoices(t *testing.T) {
	mockLeases := new(MockLeaseRepository)
	mockInvoices := new(MockAccountingRepository)
	service := NewInvoiceGenerationService(mockLeases, mockInvoices, zap.NewNop())
	subscriptionID := uuid.New()
	asOf := time.Date(2026, 2, 2, 2, 0, 0, 0, time.UTC)

	// Due: never invoiced, started in January. Not due: latest invoice
	// already covers through the end of February.
	due := monthlyLease(t, subscriptionID, valueobject.NewDate(2026, 1, 31))
	notDue := monthlyLease(t, subscriptionID, valueobject.NewDate(2026, 1, 1))

	mockLeases.On("ListActive", mock.Anything, subscriptionID).
		Return([]leasing.Lease{*due, *notDue}, nil)
	mockLeases.On("LatestInvoiceIntervalEnds", mock.Anything, subscriptionID, []uuid.UUID{due.ID, notDue.ID}).
		Return(map[uuid.UUID]valueobject.Date{
			notDue.ID: valueobject.NewDate(2026, 2, 28),
		}, nil)

	var created *accounting.Invoice
	mockInvoices.On("WithinTx", mock.Anything).Return(nil)
	mockInvoices.On("CreateInvoice", mock.Anything, mock.AnythingOfType("*accounting.Invoice")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*accounting.Invoice)
		}).
		Return(nil).Once()
	mockInvoices.On("ListInvoicesByLease", mock.Anything, subscriptionID, due.ID).
		Return([]accounting.Invoice{}, nil)

	count, err := service.GenerateDueInvoices(context.Background(), subscriptionID, asOf)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.NotNil(t, created)
	assert.Equal(t, due.ID, created.LeaseID)
	assert.Equal(t, valueobject.NewDate(2026, 2, 1), created.IntervalStartDate)
	assert.Equal(t, valueobject.NewDate(2026, 2, 28), created.IntervalEndDate)
	assert.True(t, created.RentAmount.Equal(valueobject.NewMoneyFromInt(900)))
	mockInvoices.AssertExpectations(t)
	mockLeases.AssertExpectations(t)
}

func TestInvoiceGenerationService_NoActiveLeases(t *testing.T) {
	mockLeases := new(MockLeaseRepository)
	mockInvoices := new(MockAccountingRepository)
	service := NewInvoiceGenerationService(mockLeases, mockInvoices, zap.NewNop())
	subscriptionID := uuid.New()

	mockLeases.On("ListActive", mock.Anything, subscriptionID).Return([]leasing.Lease{}, nil)

	count, err := service.GenerateDueInvoices(context.Background(), subscriptionID, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 0, count)
	mockLeases.AssertNotCalled(t, "LatestInvoiceIntervalEnds")
}

func TestInvoiceGenerationService_CarriesRecurringTemplatesForward(t *testing.T) {
	mockLeases := new(MockLeaseRepository)
	mockInvoices := new(MockAccountingRepository)
	service := NewInvoiceGenerationService(mockLeases, mockInvoices, zap.NewNop())
	subscriptionID := uuid.New()
	asOf := time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC)

	l := monthlyLease(t, subscriptionID, valueobject.NewDate(2026, 1, 1))

	previous, err := accounting.NewInvoice(
		subscriptionID, l.ID, l.PropertyID, l.UnitID,
		valueobject.NewDate(2026, 2, 1), valueobject.NewDate(2026, 2, 28),
		valueobject.NewDate(2026, 2, 5),
		valueobject.NewMoneyFromInt(900),
	)
	require.NoError(t, err)
	template, err := accounting.NewCharge(subscriptionID, previous.ID, "Utilities", valueobject.NewMoneyFromInt(80), accounting.ChargeTypeRecurring)
	require.NoError(t, err)

	mockLeases.On("ListActive", mock.Anything, subscriptionID).Return([]leasing.Lease{*l}, nil)
	mockLeases.On("LatestInvoiceIntervalEnds", mock.Anything, subscriptionID, []uuid.UUID{l.ID}).
		Return(map[uuid.UUID]valueobject.Date{l.ID: valueobject.NewDate(2026, 2, 28)}, nil)

	mockInvoices.On("WithinTx", mock.Anything).Return(nil)
	mockInvoices.On("CreateInvoice", mock.Anything, mock.AnythingOfType("*accounting.Invoice")).Return(nil)
	mockInvoices.On("ListInvoicesByLease", mock.Anything, subscriptionID, l.ID).
		Return([]accounting.Invoice{*previous}, nil)
	mockInvoices.On("ListChargesByInvoice", mock.Anything, subscriptionID, previous.ID).
		Return([]accounting.Charge{*template}, nil)

	var charges []*accounting.Charge
	mockInvoices.On("CreateCharge", mock.Anything, mock.AnythingOfType("*accounting.Charge")).
		Run(func(args mock.Arguments) {
			charges = append(charges, args.Get(1).(*accounting.Charge))
		}).
		Return(nil)

	count, err := service.GenerateDueInvoices(context.Background(), subscriptionID, asOf)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	// One copied template plus its posted occurrence
	require.Len(t, charges, 2)
	assert.True(t, charges[0].IsTemplate())
	assert.False(t, charges[1].IsTemplate())
	assert.Equal(t, charges[0].ID, *charges[1].ParentChargeID)
	mockInvoices.AssertExpectations(t)
}
