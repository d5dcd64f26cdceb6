package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/NasaVasa/stocky/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Notifier delivers trigger notifications to alert owners.
type Notifier interface {
	Notify(telegramUserID int64, text string) error
}

// Report summarizes one evaluation pass. FailedCommits lists alerts
// whose condition held but whose trigger write did not land; they stay
// pending and are retried on the next pass.
type Report struct {
	Candidates    int
	Triggered     []uint
	Expired       []uint
	Skipped       int
	FailedCommits []uint
}

// Evaluator runs one evaluation pass over all pending alerts: retire
// alerts whose deadline passed, look up prices (once per ticker), apply
// the trigger condition, and commit transitions independently per alert.
type Evaluator struct {
	users       domain.UserRepository
	alerts      domain.AlertRepository
	prices      domain.PriceSource
	notifier    Notifier
	logger      *zap.Logger
	concurrency int
	now         func() time.Time
}

func NewEvaluator(users domain.UserRepository, alerts domain.AlertRepository, prices domain.PriceSource, notifier Notifier, logger *zap.Logger, concurrency int) *Evaluator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Evaluator{
		users:       users,
		alerts:      alerts,
		prices:      prices,
		notifier:    notifier,
		logger:      logger,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Evaluate performs a single pass. Only a failure to list the candidates
// fails the pass as a whole; every other failure is scoped to one ticker
// or one alert and the pass continues. Re-running on an already-resolved
// alert set is a no-op.
func (e *Evaluator) Evaluate(ctx context.Context) (*Report, error) {
	candidates, err := e.alerts.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending alerts: %w", err)
	}

	report := &Report{Candidates: len(candidates)}
	now := e.now().UTC()

	// Retire overdue alerts before any price lookup so they never reach
	// the trigger condition.
	remaining := make([]domain.Alert, 0, len(candidates))
	for _, alert := range candidates {
		if !alert.DeadlinePassed(now) {
			remaining = append(remaining, alert)
			continue
		}
		if err := e.alerts.MarkExpired(ctx, alert.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Resolved by a concurrent pass.
				continue
			}
			e.logger.Warn("failed to expire alert", zap.Uint("alert_id", alert.ID), zap.Error(err))
			report.FailedCommits = append(report.FailedCommits, alert.ID)
			continue
		}
		report.Expired = append(report.Expired, alert.ID)
	}

	cache := newPriceCache(e.prices)
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.concurrency)
	for _, alert := range remaining {
		alert := alert
		group.Go(func() error {
			price, err := cache.Get(groupCtx, alert.Ticker)
			if err != nil {
				e.logger.Warn(
					"price lookup failed, skipping alert this cycle",
					zap.Uint("alert_id", alert.ID),
					zap.String("ticker", alert.Ticker),
					zap.Error(err),
				)
				mu.Lock()
				report.Skipped++
				mu.Unlock()
				return nil
			}

			if !alert.ShouldTrigger(price) {
				return nil
			}

			if err := e.alerts.MarkTriggered(groupCtx, alert.ID, now); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil
				}
				e.logger.Warn("failed to commit trigger", zap.Uint("alert_id", alert.ID), zap.Error(err))
				mu.Lock()
				report.FailedCommits = append(report.FailedCommits, alert.ID)
				mu.Unlock()
				return nil
			}

			mu.Lock()
			report.Triggered = append(report.Triggered, alert.ID)
			mu.Unlock()

			e.notifyTriggered(groupCtx, alert, price)
			return nil
		})
	}
	// Workers report everything through the pass report; none returns an
	// error.
	_ = group.Wait()

	e.logger.Info(
		"evaluation pass complete",
		zap.Int("candidates", report.Candidates),
		zap.Int("triggered", len(report.Triggered)),
		zap.Int("expired", len(report.Expired)),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed_commits", len(report.FailedCommits)),
	)

	return report, nil
}

func (e *Evaluator) notifyTriggered(ctx context.Context, alert domain.Alert, price decimal.Decimal) {
	if e.notifier == nil {
		return
	}
	user, err := e.users.GetByID(ctx, alert.UserID)
	if err != nil {
		e.logger.Warn("failed to load alert owner", zap.Uint("alert_id", alert.ID), zap.Uint("user_id", alert.UserID), zap.Error(err))
		return
	}
	text := fmt.Sprintf(
		"Alert #%d triggered: %s is %s your threshold of %s (current price %s)",
		alert.ID,
		alert.Ticker,
		alert.Direction,
		alert.Price.String(),
		price.String(),
	)
	if err := e.notifier.Notify(user.TelegramUserID, text); err != nil {
		e.logger.Warn("failed to send trigger notification", zap.Uint("alert_id", alert.ID), zap.Error(err))
	}
}
