package rephrase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/campusbot/internal/domain"
	"github.com/kailas-cloud/campusbot/internal/domain/chat"
)

// DefaultAttemptTimeout bounds one completion call.
const DefaultAttemptTimeout = 8 * time.Second

// Result is a rephrased answer and the credential that produced it.
type Result struct {
	Text     string
	KeyLabel string
}

// Service rephrases text with the generative model, rotating credentials.
type Service struct {
	ring    *KeyRing
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a rephraser. A zero timeout uses DefaultAttemptTimeout.
func New(ring *KeyRing, timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}
	return &Service{ring: ring, timeout: timeout, logger: logger.Named("rephrase")}
}

// Rephrase tries every key once, starting at the shared pointer, and returns the
// first success. When all keys fail it returns a *domain.ExhaustedError, which
// matches domain.ErrRephraseExhausted.
func (s *Service) Rephrase(ctx context.Context, prompt string, history []chat.Turn) (Result, error) {
	_, start := s.ring.Next()
	n := s.ring.Len()

	var last error
	attempts := 0
	for i := range n {
		if err := ctx.Err(); err != nil {
			last = err
			break
		}
		key := s.ring.At(start + i)
		attempts++

		text, err := s.attempt(ctx, key, prompt, history)
		if err == nil {
			return Result{Text: text, KeyLabel: key.Label()}, nil
		}
		last = err
		s.logger.Warn("rephrase attempt failed",
			zap.String("key", key.Label()),
			zap.Int("attempt", attempts),
			zap.Error(err),
		)
	}

	return Result{}, &domain.ExhaustedError{Attempts: attempts, Last: last}
}

func (s *Service) attempt(ctx context.Context, key Completer, prompt string, history []chat.Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return key.Complete(ctx, prompt, history) //nolint:wrapcheck // transport errors are already wrapped
}
