// Package scheduler runs the recurring invoice generation job on a
// daily cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rentdesk/backend/internal/infrastructure/config"
)

// defaultCronSchedule runs the job at 02:00 every day
const defaultCronSchedule = "0 2 * * *"

var (
	ErrSchedulerNotRunning = errors.New("scheduler is not running")
	ErrInvalidConfig       = errors.New("invalid scheduler configuration")
)

// SubscriptionProvider lists the subscriptions the daily job iterates
type SubscriptionProvider interface {
	ListAllSubscriptionIDs(ctx context.Context) ([]uuid.UUID, error)
}

// InvoiceGenerator creates the invoices that have come due for one
// subscription. It returns the number of invoices created.
type InvoiceGenerator interface {
	GenerateDueInvoices(ctx context.Context, subscriptionID uuid.UUID, asOf time.Time) (int, error)
}

// InvoiceCronScheduler triggers invoice generation for every
// subscription once a day.
type InvoiceCronScheduler struct {
	schedule      string
	jobTimeout    time.Duration
	enabled       bool
	subscriptions SubscriptionProvider
	generator     InvoiceGenerator
	logger        *zap.Logger

	cron    *cron.Cron
	entryID cron.EntryID
	cancel  context.CancelFunc

	mu        sync.Mutex
	isRunning bool
	lastRunAt *time.Time
}

// NewInvoiceCronScheduler creates a new invoice cron scheduler. The
// schedule is a standard five-field cron expression.
func NewInvoiceCronScheduler(
	cfg config.InvoicingConfig,
	subscriptions SubscriptionProvider,
	generator InvoiceGenerator,
	logger *zap.Logger,
) (*InvoiceCronScheduler, error) {
	schedule := cfg.DailyCronSchedule
	if schedule == "" {
		schedule = defaultCronSchedule
	}

	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("%w: parse cron schedule %q: %v", ErrInvalidConfig, schedule, err)
	}

	return &InvoiceCronScheduler{
		schedule:      schedule,
		jobTimeout:    cfg.JobTimeout,
		enabled:       cfg.SchedulerEnabled,
		subscriptions: subscriptions,
		generator:     generator,
		logger:        logger,
		cron:          cron.New(),
	}, nil
}

// Start registers the daily job and starts the cron runner. Disabled
// schedulers start as a no-op.
func (s *InvoiceCronScheduler) Start(ctx context.Context) error {
	if !s.enabled {
		s.logger.Info("Invoice scheduler disabled")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return nil
	}

	jobCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runDailyGeneration(jobCtx)
	})
	if err != nil {
		cancel()
		return fmt.Errorf("register invoice generation job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	s.logger.Info("Invoice cron scheduler started",
		zap.String("schedule", s.schedule),
		zap.Time("next_run_at", s.cron.Entry(entryID).Next),
	)

	return nil
}

// Stop stops the cron runner and waits for an in-flight run to finish
func (s *InvoiceCronScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		s.logger.Info("Invoice cron scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Invoice cron scheduler stop timed out")
		return ctx.Err()
	}
}

// runDailyGeneration generates due invoices for every subscription
func (s *InvoiceCronScheduler) runDailyGeneration(ctx context.Context) {
	s.logger.Info("Starting daily invoice generation")

	now := time.Now()
	s.mu.Lock()
	s.lastRunAt = &now
	s.mu.Unlock()

	jobCtx := ctx
	if s.jobTimeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, s.jobTimeout)
		defer cancel()
	}

	subscriptionIDs, err := s.subscriptions.ListAllSubscriptionIDs(jobCtx)
	if err != nil {
		s.logger.Error("Failed to list subscriptions for invoice generation", zap.Error(err))
		return
	}

	total := 0
	for _, subscriptionID := range subscriptionIDs {
		created, err := s.generator.GenerateDueInvoices(jobCtx, subscriptionID, now)
		if err != nil {
			s.logger.Error("Invoice generation failed for subscription",
				zap.String("subscription_id", subscriptionID.String()),
				zap.Error(err),
			)
			continue
		}
		total += created
	}

	s.logger.Info("Daily invoice generation completed",
		zap.Int("subscription_count", len(subscriptionIDs)),
		zap.Int("invoices_created", total),
	)
}

// TriggerManualRun runs the daily generation outside the cron schedule.
// A background context keeps the run alive after the HTTP request ends.
func (s *InvoiceCronScheduler) TriggerManualRun(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.mu.Unlock()

	go s.runDailyGeneration(context.Background())
	return nil
}

// GetStatus returns the current status of the cron scheduler
func (s *InvoiceCronScheduler) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]any{
		"enabled":     s.enabled,
		"is_running":  s.isRunning,
		"schedule":    s.schedule,
		"last_run_at": s.lastRunAt,
	}
	if s.isRunning {
		status["next_run_at"] = s.cron.Entry(s.entryID).Next
	}
	return status
}

// GetNextRunAt returns when the next scheduled run will occur
func (s *InvoiceCronScheduler) GetNextRunAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}
