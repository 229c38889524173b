package router

import (
	"context"

	"github.com/kailas-cloud/campusbot/internal/domain/chat"
	"github.com/kailas-cloud/campusbot/internal/domain/params"
	"github.com/kailas-cloud/campusbot/internal/domain/route"
	"github.com/kailas-cloud/campusbot/internal/usecase/rephrase"
	"github.com/kailas-cloud/campusbot/internal/usecase/search"
)

// Classifier is the NLU stage.
type Classifier interface {
	Classify(ctx context.Context, message, sessionID string, history []chat.Turn) *chat.Classification
	Trusted(c *chat.Classification) bool
}

// Searcher runs domain searches.
type Searcher interface {
	Search(ctx context.Context, d route.Domain, p params.Params) search.Outcome
}

// Rephraser turns prompts into conversational text.
type Rephraser interface {
	Rephrase(ctx context.Context, prompt string, history []chat.Turn) (rephrase.Result, error)
}

// Recorder persists per-query bookkeeping.
type Recorder interface {
	Record(ctx context.Context, rec chat.QueryRecord) error
}
