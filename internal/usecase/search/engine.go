package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/campusbot/internal/domain"
	"github.com/kailas-cloud/campusbot/internal/domain/params"
	"github.com/kailas-cloud/campusbot/internal/domain/route"
	"github.com/kailas-cloud/campusbot/internal/domain/search/filter"
	"github.com/kailas-cloud/campusbot/internal/format"
)

// emptyPolicy decides what a search with no criteria does.
type emptyPolicy int

const (
	listAll emptyPolicy = iota
	askDetail
	firstRecord
)

const defaultThreshold = 3

// view is one single-record rendering, selected when its predicate holds.
// A view that renders "" falls through to the next one.
type view[T any] struct {
	name   string
	when   func(params.Params) bool
	render func(T) string
}

// spec describes one domain search service.
type spec[T any] struct {
	domain  route.Domain
	plural  string
	sort    string
	filters []string
	// scalar params take only their first value.
	scalar    []string
	empty     emptyPolicy
	askHint   string
	views     []view[T]
	// summary renders many rows. When nil, each row goes through the
	// selected view and brief names it above the threshold.
	summary   func([]T, int) string
	brief     func(T) string
	threshold int
	apology   string
}

func (s *spec[T]) run(ctx context.Context, find Finder[T], p params.Params, logger *zap.Logger) Outcome {
	p = p.Collapse(s.scalar...)

	expr, err := filter.NewBuilder().FromParams(p, s.filters...).Build()
	if err != nil {
		return s.fail(logger, err)
	}

	if expr.IsEmpty() {
		switch s.empty {
		case askDetail:
			return Outcome{Domain: s.domain, Text: format.NeedDetail(s.askHint), Status: StatusNeedsDetail}
		case firstRecord:
			rec, ferr := find.FindFirst(ctx, expr, s.sort)
			if errors.Is(ferr, domain.ErrNotFound) {
				return s.notFound("")
			}
			if ferr != nil {
				return s.fail(logger, ferr)
			}
			return s.found([]T{rec}, p)
		}
	}

	rows, err := find.FindMany(ctx, expr, s.sort)
	if err != nil {
		return s.fail(logger, err)
	}
	if len(rows) == 0 {
		return s.notFound(p.Describe(s.filters...))
	}
	return s.found(rows, p)
}

func (s *spec[T]) found(rows []T, p params.Params) Outcome {
	out := Outcome{Domain: s.domain, Status: StatusFound, Count: len(rows)}
	if len(rows) > 1 {
		if s.summary != nil {
			out.Text = s.summary(rows, s.threshold)
			return out
		}
		out.Text = format.Summary(s.plural, rows, s.threshold,
			func(rec T) string { return s.single(rec, p) },
			s.brief,
		)
		return out
	}
	out.Text = s.single(rows[0], p)
	return out
}

func (s *spec[T]) single(rec T, p params.Params) string {
	for _, v := range s.views {
		if v.when != nil && !v.when(p) {
			continue
		}
		if text := v.render(rec); text != "" {
			return text
		}
	}
	return ""
}

func (s *spec[T]) notFound(criteria string) Outcome {
	return Outcome{Domain: s.domain, Text: format.NotFound(s.plural, criteria), Status: StatusEmpty}
}

func (s *spec[T]) fail(logger *zap.Logger, err error) Outcome {
	logger.Error("domain search failed",
		zap.String("domain", string(s.domain)),
		zap.Error(fmt.Errorf("%w: %w", domain.ErrLookupFailed, err)),
	)
	return Outcome{Domain: s.domain, Text: s.apology, Status: StatusFailed}
}

// has selects a view when any of the named params is supplied.
func has(names ...string) func(params.Params) bool {
	return func(p params.Params) bool { return p.Any(names...) }
}

// kindOf selects a view either by a param named like the view or by the
// value of the field param naming it.
func kindOf(field, name string) func(params.Params) bool {
	return func(p params.Params) bool {
		if p.Has(name) {
			return true
		}
		kind := strings.ToLower(p.Text(field))
		kind = strings.NewReplacer("-", "_", " ", "_").Replace(kind)
		return kind != "" && strings.Contains(kind, name)
	}
}

// detail selects a school view by detail_type.
func detail(name string) func(params.Params) bool { return kindOf("detail_type", name) }

// infoType selects an enrollment view by info_type.
func infoType(name string) func(params.Params) bool { return kindOf("info_type", name) }

func always(params.Params) bool { return true }
