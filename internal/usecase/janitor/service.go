// Package janitor removes chat sessions that have been idle too long.
package janitor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/campusbot/internal/metrics"
)

// Service sweeps idle sessions on a fixed interval.
type Service struct {
	sessions      Sessions
	interval      time.Duration
	inactiveAfter time.Duration
	now           func() time.Time
	logger        *zap.Logger
}

// New creates a janitor. A non-positive interval disables Run.
func New(s Sessions, interval, inactiveAfter time.Duration, logger *zap.Logger) *Service {
	return &Service{
		sessions:      s,
		interval:      interval,
		inactiveAfter: inactiveAfter,
		now:           time.Now,
		logger:        logger.Named("janitor"),
	}
}

// Run sweeps until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Warn("session sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep deletes every session idle longer than inactiveAfter and returns how
// many were removed. A failed delete is logged and skipped.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.inactiveAfter)
	ids, err := s.sessions.IdleSince(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := s.sessions.Delete(ctx, id); err != nil {
			s.logger.Warn("delete idle session", zap.String("session_id", id), zap.Error(err))
			continue
		}
		removed++
	}
	metrics.SessionsSweptTotal.Add(float64(removed))

	if removed > 0 {
		s.logger.Info("idle sessions removed", zap.Int("count", removed), zap.Time("cutoff", cutoff))
	}
	return removed, nil
}
