package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rentdesk/backend/internal/infrastructure/config"
)

type stubSubscriptionProvider struct {
	ids []uuid.UUID
}

func (s *stubSubscriptionProvider) ListAllSubscriptionIDs(context.Context) ([]uuid.UUID, error) {
	return s.ids, nil
}

type stubGenerator struct {
	mu    sync.Mutex
	calls []uuid.UUID
}

func (g *stubGenerator) GenerateDueInvoices(_ context.Context, subscriptionID uuid.UUID, _ time.Time) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, subscriptionID)
	return 1, nil
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func newTestScheduler(t *testing.T, generator InvoiceGenerator, ids ...uuid.UUID) *InvoiceCronScheduler {
	t.Helper()
	s, err := NewInvoiceCronScheduler(
		config.InvoicingConfig{
			SchedulerEnabled:  true,
			DailyCronSchedule: "0 2 * * *",
			JobTimeout:        time.Minute,
		},
		&stubSubscriptionProvider{ids: ids},
		generator,
		zap.NewNop(),
	)
	require.NoError(t, err)
	return s
}

func TestNewInvoiceCronScheduler_ScheduleValidation(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{"default on empty", "", false},
		{"standard expression", "0 2 * * *", false},
		{"custom time", "30 5 * * *", false},
		{"hour out of range", "0 25 * * *", true},
		{"minute out of range", "75 2 * * *", true},
		{"garbage", "whenever", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInvoiceCronScheduler(
				config.InvoicingConfig{SchedulerEnabled: true, DailyCronSchedule: tt.schedule},
				&stubSubscriptionProvider{},
				&stubGenerator{},
				zap.NewNop(),
			)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestInvoiceCronScheduler_RunDailyGeneration(t *testing.T) {
	generator := &stubGenerator{}
	subA := uuid.New()
	subB := uuid.New()
	s := newTestScheduler(t, generator, subA, subB)

	s.runDailyGeneration(context.Background())

	assert.Equal(t, 2, generator.callCount())
	assert.NotNil(t, s.lastRunAt)
}

func TestInvoiceCronScheduler_TriggerManualRun_NotRunning(t *testing.T) {
	s := newTestScheduler(t, &stubGenerator{})

	err := s.TriggerManualRun(context.Background())

	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}

func TestInvoiceCronScheduler_StartStop(t *testing.T) {
	s := newTestScheduler(t, &stubGenerator{})

	require.NoError(t, s.Start(context.Background()))

	next := s.GetNextRunAt()
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))

	status := s.GetStatus()
	assert.Equal(t, true, status["is_running"])
	assert.Equal(t, "0 2 * * *", status["schedule"])

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.Nil(t, s.GetNextRunAt())
}

func TestInvoiceCronScheduler_StartTwiceIsIdempotent(t *testing.T) {
	s := newTestScheduler(t, &stubGenerator{})

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}

func TestInvoiceCronScheduler_DisabledIsNoOp(t *testing.T) {
	s, err := NewInvoiceCronScheduler(
		config.InvoicingConfig{SchedulerEnabled: false},
		&stubSubscriptionProvider{},
		&stubGenerator{},
		zap.NewNop(),
	)
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, false, s.GetStatus()["is_running"])
}
