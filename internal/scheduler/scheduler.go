// Package scheduler runs the periodic settlement digest.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/robfig/cron/v3"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/models"
)

// ExpenseLister is the read side of the store the digest needs.
type ExpenseLister interface {
	ListExpenses(ctx context.Context) ([]models.Expense, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	store    ExpenseLister
	roster   models.Roster
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// New creates a scheduler that runs the digest on schedule, a standard
// 5-field cron expression. m and logger may be nil.
func New(schedule string, store ExpenseLister, roster models.Roster, m *metrics.Metrics, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:     cron.New(),
		schedule: schedule,
		store:    store,
		roster:   roster,
		metrics:  m,
		logger:   logger,
	}
}

// Start schedules the digest and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runDigest); err != nil {
		return fmt.Errorf("failed to schedule settlement digest %q: %w", s.schedule, err)
	}
	s.logger.Info("Starting scheduler", "digest_cron", s.schedule)
	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for a running digest to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.Digest(ctx); err != nil {
		s.logger.Error("Settlement digest failed", "error", err)
	}
}

// Digest computes the settlement of the live expenses, logs who is owed
// what, and updates the outstanding gauge.
func (s *Scheduler) Digest(ctx context.Context) (*calculator.Result, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	result, err := calculator.ComputeSettlement(expenses, s.roster)
	if err != nil {
		return nil, err
	}
	s.metrics.SetOutstanding(result.TotalExpense)

	s.logger.Info("Settlement digest",
		"expenses", len(expenses),
		"total", "Rp "+humanize.Comma(result.TotalExpense),
		"share_per_person", "Rp "+humanize.Comma(calculator.Round(result.SharePerPerson)),
	)
	for _, r := range result.Receivables {
		s.logger.Info("Everyone owes",
			"payer", r.Payer,
			"amount_per_user", "Rp "+humanize.Comma(calculator.Round(r.AmountPerUser)),
		)
	}
	return result, nil
}
