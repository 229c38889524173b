package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/campusbot/internal/domain/chat"
	"github.com/kailas-cloud/campusbot/internal/domain/route"
	entityrepo "github.com/kailas-cloud/campusbot/internal/repository/entity"
)

type askOptions struct {
	domain  string
	verbose bool
}

func newAskCmd(env *string) *cobra.Command {
	var opts askOptions

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Answer one message without recording a session",
		Example: `  campusbot ask "Where is the registrar?"
  campusbot ask --domain scholarships "What scholarships are available?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answer, err := runAsk(cmd.Context(), *env, strings.Join(args, " "), opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer.Text)
			if opts.verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "\nsource=%s domain=%s style=%s time=%s\n",
					answer.Source, answer.Domain, answer.Style, answer.ResponseTime.Round(time.Millisecond))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.domain, "domain", "", "route through one domain's router (e.g. offices)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "print answer metadata")
	return cmd
}

func runAsk(ctx context.Context, env, text string, opts askOptions) (chat.ComposedAnswer, error) {
	var d route.Domain
	if opts.domain != "" {
		var ok bool
		if d, ok = route.Parse(opts.domain); !ok {
			return chat.ComposedAnswer{}, fmt.Errorf("unknown domain %q", opts.domain)
		}
	}

	cfg, logger, err := bootstrap(env)
	if err != nil {
		return chat.ComposedAnswer{}, err
	}
	defer func() { _ = logger.Sync() }()
	if !opts.verbose {
		logger = zap.NewNop()
	}

	db, err := openEntityStore(ctx, cfg.Database, logger)
	if err != nil {
		return chat.ComposedAnswer{}, err
	}
	defer db.Close()

	tables, err := entityrepo.NewTables(db)
	if err != nil {
		return chat.ComposedAnswer{}, fmt.Errorf("map entity tables: %w", err)
	}

	p, err := buildPipeline(ctx, cfg, tables, nil, logger)
	if err != nil {
		return chat.ComposedAnswer{}, err
	}
	defer p.Close()

	q := chat.InboundQuery{Text: text}
	if d != "" {
		return p.router.AnswerIn(ctx, d, q), nil
	}
	return p.router.Answer(ctx, q), nil
}
