// Package router answers user messages: classify, dispatch to a domain search,
// pick a presentation style and rephrase, falling back to the generative model
// when classification is weak or unmapped.
package router

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/campusbot/internal/domain"
	"github.com/kailas-cloud/campusbot/internal/domain/chat"
	"github.com/kailas-cloud/campusbot/internal/domain/route"
	"github.com/kailas-cloud/campusbot/internal/metrics"
	"github.com/kailas-cloud/campusbot/internal/usecase/style"
)

const (
	generativeApology = "I'm having trouble answering that right now. Please try again in a moment."
	fatalApology      = "Sorry, we're experiencing technical difficulties. Please try again later."

	recordTimeout = 3 * time.Second
)

// Options tune the router.
type Options struct {
	// HistoryWindow is how many prior turns reach the NLU and the model.
	HistoryWindow int
	// Rephrase sends search results through the generative model.
	Rephrase bool
}

// Router is the query pipeline. It never returns an error.
type Router struct {
	classifier Classifier
	searcher   Searcher
	rephraser  Rephraser
	recorder   Recorder
	opts       Options
	logger     *zap.Logger
}

// New creates a router. A nil recorder skips bookkeeping.
func New(
	classifier Classifier, searcher Searcher, rephraser Rephraser, recorder Recorder,
	opts Options, logger *zap.Logger,
) *Router {
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = chat.DefaultHistoryWindow
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Router{
		classifier: classifier,
		searcher:   searcher,
		rephraser:  rephraser,
		recorder:   recorder,
		opts:       opts,
		logger:     logger.Named("router"),
	}
}

type resolver func(c *chat.Classification) (route.Target, bool)

// Answer runs the top-level router: action table first, intent keywords second.
func (r *Router) Answer(ctx context.Context, q chat.InboundQuery) chat.ComposedAnswer {
	return r.run(ctx, q, func(c *chat.Classification) (route.Target, bool) {
		return route.Resolve(c.Action, c.Intent)
	})
}

// AnswerIn runs the router of one domain: only that domain's actions dispatch.
func (r *Router) AnswerIn(ctx context.Context, d route.Domain, q chat.InboundQuery) chat.ComposedAnswer {
	return r.run(ctx, q, func(c *chat.Classification) (route.Target, bool) {
		return route.ResolveAction(d, c.Action)
	})
}

func (r *Router) run(ctx context.Context, q chat.InboundQuery, resolve resolver) (ans chat.ComposedAnswer) {
	start := time.Now()
	id := uuid.NewString()
	history := chat.Window(q.History, r.opts.HistoryWindow)

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("query pipeline panicked",
				zap.String("query_id", id),
				zap.Any("panic", p),
				zap.Stack("stack"),
			)
			ans = chat.ComposedAnswer{Text: fatalApology, Source: chat.SourceErrorFatal}
		}
		ans.QueryID = id
		ans.ResponseTime = time.Since(start)
		r.finalize(ctx, q, ans)
	}()

	return r.compose(ctx, q.Text, q.SessionID, history, resolve)
}

func (r *Router) compose(
	ctx context.Context, message, sessionID string, history []chat.Turn, resolve resolver,
) chat.ComposedAnswer {
	c := r.classifier.Classify(ctx, message, sessionID, history)
	if !r.classifier.Trusted(c) {
		return r.generate(ctx, message, history, chat.SourceGenerativeFallback)
	}
	if c.HasCannedText() {
		return chat.ComposedAnswer{Text: c.FulfillmentText, Source: chat.SourceDialogflowDirect}
	}

	target, ok := resolve(c)
	if !ok {
		r.logger.Debug("unmapped classification",
			zap.String("action", c.Action),
			zap.String("intent", c.Intent),
			zap.Error(fmt.Errorf("%w: %s", domain.ErrUnmappedAction, c.Action)),
		)
		return r.generate(ctx, message, history, chat.SourceGenerativeMain)
	}

	out := r.searcher.Search(ctx, target.Domain, target.Action.Params(c.Parameters))
	ans := chat.ComposedAnswer{Domain: string(target.Domain)}
	if out.Failed() {
		ans.Text, ans.Source = out.Text, chat.SourceErrorHandler
		return ans
	}
	if !r.opts.Rephrase {
		ans.Text, ans.Source = out.Text, chat.SourceDatabaseDirect
		return ans
	}

	tmpl := style.Pick(out.Text, c.Action)
	ans.Style = string(tmpl.Name)

	res, err := r.rephraser.Rephrase(ctx, tmpl.Render(message, out.Text), history)
	if err != nil {
		r.logger.Warn("rephrase failed, answering with search text",
			zap.String("domain", ans.Domain),
			zap.Error(err),
		)
		ans.Text, ans.Source = out.Text, chat.SourceDatabaseSearch
		return ans
	}
	ans.Text, ans.KeyLabel = res.Text, res.KeyLabel
	ans.Source = chat.GenerativeSource(ans.Style)
	return ans
}

func (r *Router) generate(ctx context.Context, message string, history []chat.Turn, src chat.Source) chat.ComposedAnswer {
	res, err := r.rephraser.Rephrase(ctx, style.Open(message), history)
	if err != nil {
		r.logger.Error("generative answer failed",
			zap.String("source", string(src)),
			zap.Error(err),
		)
		return chat.ComposedAnswer{Text: generativeApology, Source: chat.SourceErrorGenerative}
	}
	return chat.ComposedAnswer{Text: res.Text, Source: src, KeyLabel: res.KeyLabel}
}

// finalize runs exactly once per query. Failures are logged and never change the answer.
func (r *Router) finalize(ctx context.Context, q chat.InboundQuery, ans chat.ComposedAnswer) {
	metrics.AnswersTotal.WithLabelValues(string(ans.Source)).Inc()
	metrics.AnswerDuration.WithLabelValues(string(ans.Source)).Observe(ans.ResponseTime.Seconds())

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("query bookkeeping panicked", zap.String("query_id", ans.QueryID), zap.Any("panic", p))
		}
	}()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	err := r.recorder.Record(ctx, chat.QueryRecord{
		ID:           ans.QueryID,
		SessionID:    q.SessionID,
		Text:         q.Text,
		Answer:       ans.Text,
		Source:       ans.Source,
		ResponseTime: ans.ResponseTime,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		r.logger.Warn("query bookkeeping failed",
			zap.String("query_id", ans.QueryID),
			zap.String("session_id", q.SessionID),
			zap.Error(fmt.Errorf("record query: %w", err)),
		)
	}

	r.logger.Info("query answered",
		zap.String("query_id", ans.QueryID),
		zap.String("source", string(ans.Source)),
		zap.String("domain", ans.Domain),
		zap.Duration("took", ans.ResponseTime),
	)
}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, chat.QueryRecord) error { return nil }
