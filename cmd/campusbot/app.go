package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/campusbot/internal/config"
	"github.com/kailas-cloud/campusbot/internal/db/migrations"
	"github.com/kailas-cloud/campusbot/internal/db/sqldb"
	domentity "github.com/kailas-cloud/campusbot/internal/domain/entity"
	entityrepo "github.com/kailas-cloud/campusbot/internal/repository/entity"
	"github.com/kailas-cloud/campusbot/internal/transport/dialogflow"
	openaigen "github.com/kailas-cloud/campusbot/internal/transport/openai"
	cataloguc "github.com/kailas-cloud/campusbot/internal/usecase/catalog"
	classifyuc "github.com/kailas-cloud/campusbot/internal/usecase/classify"
	rephraseuc "github.com/kailas-cloud/campusbot/internal/usecase/rephrase"
	routeruc "github.com/kailas-cloud/campusbot/internal/usecase/router"
	searchuc "github.com/kailas-cloud/campusbot/internal/usecase/search"
)

// openEntityStore opens the relational database, applying migrations when
// migrate_on_start is set.
func openEntityStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*sqldb.DB, error) {
	db, err := sqldb.Open(ctx, sqldb.Config{
		Driver:          sqldb.Dialect(cfg.Driver),
		DSN:             cfg.DSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: config.Seconds(cfg.ConnMaxLifetimeSec),
	})
	if err != nil {
		return nil, fmt.Errorf("open entity store: %w", err)
	}

	if cfg.MigrateOnStart {
		m, err := migrations.New(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		if err := m.Up(); err != nil {
			db.Close()
			return nil, err
		}
		v, _, _ := m.Version()
		logger.Info("Entity schema migrated", zap.Uint("version", v))
	}
	return db, nil
}

// pipeline is the assembled query path and the clients it owns.
type pipeline struct {
	router     *routeruc.Router
	generative generativeHealth
	nlu        *dialogflow.Client
}

func (p *pipeline) Close() {
	if p.nlu != nil {
		_ = p.nlu.Close()
	}
}

// buildPipeline wires NLU -> search -> rephrase into a router.
// A nil recorder skips bookkeeping.
func buildPipeline(
	ctx context.Context,
	cfg config.Config,
	tables *entityrepo.Tables,
	recorder routeruc.Recorder,
	logger *zap.Logger,
) (*pipeline, error) {
	nlu, err := dialogflow.New(ctx, &dialogflow.Config{
		ProjectID:       cfg.NLU.ProjectID,
		LanguageCode:    cfg.NLU.LanguageCode,
		CredentialsFile: cfg.NLU.CredentialsFile,
		Endpoint:        cfg.NLU.Endpoint,
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("dialogflow client: %w", err)
	}
	classifier := classifyuc.New(nlu, cfg.NLU.ConfidenceThreshold, config.Seconds(cfg.NLU.TimeoutSec), logger)

	gens := openaigen.NewGenerators(&openaigen.Config{
		APIKeys:     cfg.Generative.APIKeys,
		BaseURL:     cfg.Generative.BaseURL,
		Model:       cfg.Generative.Model,
		Temperature: cfg.Generative.Temperature,
		MaxTokens:   cfg.Generative.MaxTokens,
		Logger:      logger,
	})
	completers := make([]rephraseuc.Completer, len(gens))
	for i, g := range gens {
		completers[i] = g
	}
	ring, err := rephraseuc.NewKeyRing(completers...)
	if err != nil {
		_ = nlu.Close()
		return nil, fmt.Errorf("generative keys: %w", err)
	}
	rephraser := rephraseuc.New(ring, config.Seconds(cfg.Generative.AttemptTimeoutSec), logger)

	searcher := searchuc.New(finders(tables), logger)

	r := routeruc.New(classifier, searcher, rephraser, recorder, routeruc.Options{
		HistoryWindow: cfg.Router.HistoryWindow,
		Rephrase:      cfg.Router.Rephrase,
	}, logger)

	logger.Info("Query pipeline ready",
		zap.String("nlu_project", cfg.NLU.ProjectID),
		zap.Float64("confidence_threshold", cfg.NLU.ConfidenceThreshold),
		zap.String("model", cfg.Generative.Model),
		zap.Int("generative_keys", ring.Len()),
	)
	return &pipeline{router: r, generative: gens, nlu: nlu}, nil
}

func finders(t *entityrepo.Tables) searchuc.Finders {
	return searchuc.Finders{
		Offices:       t.Offices,
		Departments:   t.Departments,
		Scholarships:  t.Scholarships,
		Courses:       t.Courses,
		Contacts:      t.Contacts,
		Organizations: t.Organizations,
		Programs:      t.Programs,
		School:        t.School,
		Officials:     t.Officials,
		Enrollment:    t.Enrollment,
		Navigation:    t.Navigation,
		Developers:    t.Developers,
	}
}

// registerCatalog exposes every table to the admin API under its table name.
func registerCatalog(c *cataloguc.Service, t *entityrepo.Tables) {
	cataloguc.Register[domentity.Office](c, t.Offices.Name(), t.Offices)
	cataloguc.Register[domentity.Department](c, t.Departments.Name(), t.Departments)
	cataloguc.Register[domentity.Scholarship](c, t.Scholarships.Name(), t.Scholarships)
	cataloguc.Register[domentity.Course](c, t.Courses.Name(), t.Courses)
	cataloguc.Register[domentity.Contact](c, t.Contacts.Name(), t.Contacts)
	cataloguc.Register[domentity.StudentOrg](c, t.Organizations.Name(), t.Organizations)
	cataloguc.Register[domentity.Program](c, t.Programs.Name(), t.Programs)
	cataloguc.Register[domentity.SchoolDetail](c, t.School.Name(), t.School)
	cataloguc.Register[domentity.SchoolOfficial](c, t.Officials.Name(), t.Officials)
	cataloguc.Register[domentity.Enrollment](c, t.Enrollment.Name(), t.Enrollment)
	cataloguc.Register[domentity.Navigation](c, t.Navigation.Name(), t.Navigation)
	cataloguc.Register[domentity.DevInfo](c, t.Developers.Name(), t.Developers)
}

// generativeHealth is healthy while at least one key answers.
type generativeHealth []*openaigen.Generator

func (g generativeHealth) HealthCheck(ctx context.Context) error {
	if len(g) == 0 {
		return errors.New("no generative keys configured")
	}
	errs := make([]error, 0, len(g))
	for _, gen := range g {
		err := gen.HealthCheck(ctx)
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", gen.Label(), err))
	}
	return errors.Join(errs...)
}
