package rephrase

import (
	"context"

	"github.com/kailas-cloud/campusbot/internal/domain/chat"
)

// Completer is one credential's generative client.
type Completer interface {
	Label() string
	Complete(ctx context.Context, prompt string, history []chat.Turn) (string, error)
}
