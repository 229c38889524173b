package janitor

import (
	"context"
	"time"
)

// Sessions lists and removes idle sessions.
type Sessions interface {
	IdleSince(ctx context.Context, t time.Time) ([]string, error)
	Delete(ctx context.Context, id string) error
}
