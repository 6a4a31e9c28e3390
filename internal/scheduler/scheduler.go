package scheduler

import (
	"context"
	"log/slog"
	"time"

	"sportspulse/internal/domain"
)

// Ticker defines the interface for one round of live score work.
type Ticker interface {
	Tick(ctx context.Context) (*domain.TickStats, error)
}

type Scheduler struct {
	ticker       Ticker
	initialDelay time.Duration
	interval     time.Duration
	tickTimeout  time.Duration
	logger       *slog.Logger
}

func NewScheduler(ticker Ticker, initialDelay, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		ticker:       ticker,
		initialDelay: initialDelay,
		interval:     interval,
		tickTimeout:  interval,
		logger:       logger.With("component", "scheduler"),
	}
}

// Start waits for the initial delay, runs one tick, and then ticks on every
// interval until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "initial_delay", s.initialDelay, "interval", s.interval)

	delay := time.NewTimer(s.initialDelay)
	defer delay.Stop()

	select {
	case <-ctx.Done():
		s.logger.Info("scheduler stopped")
		return ctx.Err()
	case <-delay.C:
		s.runTick(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runTick(ctx)
		}
	}
}

func (s *Scheduler) runTick(ctx context.Context) {
	tickCtx, cancel := context.WithTimeout(ctx, s.tickTimeout)
	defer cancel()

	if _, err := s.ticker.Tick(tickCtx); err != nil {
		s.logger.Error("tick failed", "error", err)
	}
}
