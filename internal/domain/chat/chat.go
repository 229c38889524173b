// Package chat holds the per-query conversation types.
package chat

import (
	"strings"
	"time"

	"github.com/kailas-cloud/campusbot/internal/domain/params"
)

// DefaultHistoryWindow is how many prior turns accompany a query.
const DefaultHistoryWindow = 6

// Turn is one prior question/answer pair.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// InboundQuery is one user message plus the conversation window that precedes it.
type InboundQuery struct {
	SessionID string
	UserID    string
	Text      string
	History   []Turn
}

// Window returns the last n turns of h.
func Window(h []Turn, n int) []Turn {
	if n <= 0 || len(h) <= n {
		return h
	}
	return h[len(h)-n:]
}

// Classification is the normalized NLU result.
type Classification struct {
	Intent          string
	Action          string
	Confidence      float64
	FulfillmentText string
	Parameters      params.Params
}

// HasCannedText reports whether the NLU attached a non-empty fulfillment.
func (c *Classification) HasCannedText() bool {
	return c != nil && strings.TrimSpace(c.FulfillmentText) != ""
}

// Source tags where an answer came from. Diagnostic only.
type Source string

// Answer sources.
const (
	SourceDialogflowDirect   Source = "dialogflow-direct"
	SourceDatabaseSearch     Source = "database-search"
	SourceDatabaseDirect     Source = "database-direct"
	SourceGenerativeFallback Source = "generative-fallback"
	SourceGenerativeMain     Source = "generative-main"
	SourceErrorHandler       Source = "error-handler"
	SourceErrorGenerative    Source = "error-generative"
	SourceErrorFatal         Source = "error-fatal"
)

// GenerativeSource returns the source tag for a rephrased search result in the given style.
func GenerativeSource(style string) Source {
	return Source("generative-" + style)
}

// IsGenerative reports whether s came from the generative model.
func (s Source) IsGenerative() bool { return strings.HasPrefix(string(s), "generative-") }

// IsError reports whether s is one of the error tags.
func (s Source) IsError() bool { return strings.HasPrefix(string(s), "error-") }

// ComposedAnswer is the final reply for one query.
type ComposedAnswer struct {
	QueryID      string
	Text         string
	Source       Source
	Domain       string
	Style        string
	KeyLabel     string
	ResponseTime time.Duration
}

// QueryRecord is the bookkeeping row written once per query.
type QueryRecord struct {
	ID           string        `json:"id"`
	SessionID    string        `json:"session_id"`
	Text         string        `json:"text"`
	Answer       string        `json:"answer"`
	Source       Source        `json:"source"`
	ResponseTime time.Duration `json:"response_time"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Session is the aggregate kept per chat session.
type Session struct {
	ID         string
	UserID     string
	CreatedAt  time.Time
	LastActive time.Time
	QueryCount int64
}
