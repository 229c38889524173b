package classify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/campusbot/internal/domain"
	"github.com/kailas-cloud/campusbot/internal/domain/chat"
	"github.com/kailas-cloud/campusbot/internal/metrics"
)

// Defaults used when the config leaves them unset.
const (
	DefaultThreshold = 0.3
	DefaultTimeout   = 5 * time.Second
)

// Service wraps the NLU detector with a timeout and the confidence gate.
type Service struct {
	detector  Detector
	threshold float64
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a classifier. Zero threshold or timeout fall back to the defaults.
func New(detector Detector, threshold float64, timeout time.Duration, logger *zap.Logger) *Service {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		detector:  detector,
		threshold: threshold,
		timeout:   timeout,
		logger:    logger.Named("classify"),
	}
}

// Classify returns the NLU result, or nil when the service gave nothing usable.
// A nil result must be treated like a low-confidence one.
func (s *Service) Classify(ctx context.Context, message, sessionID string, history []chat.Turn) *chat.Classification {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	c, err := s.detector.Detect(ctx, message, sessionID, history)
	took := time.Since(start)

	if err != nil {
		metrics.ClassifyDuration.WithLabelValues("error").Observe(took.Seconds())
		s.logger.Warn("classification failed",
			zap.String("session_id", sessionID),
			zap.Error(fmt.Errorf("%w: %w", domain.ErrClassificationUnavailable, err)),
		)
		return nil
	}
	if c == nil || (c.Intent == "" && c.Action == "" && !c.HasCannedText()) {
		metrics.ClassifyDuration.WithLabelValues("empty").Observe(took.Seconds())
		s.logger.Info("classification empty", zap.String("session_id", sessionID))
		return nil
	}

	metrics.ClassifyDuration.WithLabelValues("ok").Observe(took.Seconds())
	return c
}

// Trusted reports whether c may drive domain dispatch.
func (s *Service) Trusted(c *chat.Classification) bool {
	return c != nil && c.Confidence >= s.threshold
}

// Threshold returns the confidence gate.
func (s *Service) Threshold() float64 { return s.threshold }
