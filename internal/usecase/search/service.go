package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/campusbot/internal/domain/params"
	"github.com/kailas-cloud/campusbot/internal/domain/route"
	"github.com/kailas-cloud/campusbot/internal/metrics"
)

const unknownDomainApology = "Sorry, I don't have information on that topic yet."

type runner func(ctx context.Context, p params.Params) Outcome

// Service answers domain queries from the entity store. It never returns an
// error: lookup failures become the domain's apology text.
type Service struct {
	logger  *zap.Logger
	runners map[route.Domain]runner
}

// New creates a search service over the given tables.
func New(f Finders, logger *zap.Logger) *Service {
	logger = logger.Named("search")
	return &Service{
		logger: logger,
		runners: map[route.Domain]runner{
			route.Offices:       bind(offices, f.Offices, logger),
			route.Departments:   bind(departments, f.Departments, logger),
			route.Scholarships:  bind(scholarships, f.Scholarships, logger),
			route.Courses:       bind(courses, f.Courses, logger),
			route.Contacts:      bind(contacts, f.Contacts, logger),
			route.Organizations: bind(organizations, f.Organizations, logger),
			route.Programs:      bind(programs, f.Programs, logger),
			route.School:        bind(school, f.School, logger),
			route.Officials:     bind(officials, f.Officials, logger),
			route.Enrollment:    bind(enrollment, f.Enrollment, logger),
			route.Navigation:    bind(navigation, f.Navigation, logger),
			route.Developers:    bind(developers, f.Developers, logger),
		},
	}
}

func bind[T any](s *spec[T], find Finder[T], logger *zap.Logger) runner {
	return func(ctx context.Context, p params.Params) Outcome {
		return s.run(ctx, find, p, logger)
	}
}

// Search runs the search service of d with domain-named parameters.
func (s *Service) Search(ctx context.Context, d route.Domain, p params.Params) Outcome {
	run, ok := s.runners[d]
	if !ok {
		s.logger.Warn("no search service for domain", zap.String("domain", string(d)))
		return Outcome{Domain: d, Text: unknownDomainApology, Status: StatusFailed}
	}
	out := run(ctx, p)
	metrics.SearchOutcomesTotal.WithLabelValues(string(d), string(out.Status)).Inc()
	return out
}
