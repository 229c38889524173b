package classify

import (
	"context"

	"github.com/kailas-cloud/campusbot/internal/domain/chat"
)

// Detector is the NLU transport.
type Detector interface {
	Detect(ctx context.Context, text, sessionID string, history []chat.Turn) (*chat.Classification, error)
}
