package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/campusbot/internal/db/migrations"
)

func newMigrateCmd(env *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the entity database schema",
	}

	run := func(action func(*migrations.Migrator, *cobra.Command) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			m, done, err := openMigrator(cmd.Context(), *env)
			if err != nil {
				return err
			}
			defer done()
			return action(m, cmd)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: run(func(m *migrations.Migrator, cmd *cobra.Command) error {
				if err := m.Up(); err != nil {
					return err
				}
				return printVersion(m, cmd)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert all migrations",
			Args:  cobra.NoArgs,
			RunE: run(func(m *migrations.Migrator, cmd *cobra.Command) error {
				if err := m.Down(); err != nil {
					return err
				}
				return printVersion(m, cmd)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE:  run(printVersion),
		},
	)
	return cmd
}

func openMigrator(ctx context.Context, env string) (*migrations.Migrator, func(), error) {
	cfg, logger, err := bootstrap(env)
	if err != nil {
		return nil, nil, err
	}

	// the command itself migrates
	dbCfg := cfg.Database
	dbCfg.MigrateOnStart = false

	db, err := openEntityStore(ctx, dbCfg, logger)
	if err != nil {
		return nil, nil, err
	}
	m, err := migrations.New(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	logger.Debug("Migrator ready", zap.String("driver", dbCfg.Driver))
	return m, func() {
		db.Close()
		_ = logger.Sync()
	}, nil
}

func printVersion(m *migrations.Migrator, cmd *cobra.Command) error {
	v, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	state := "clean"
	if dirty {
		state = "dirty"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (%s)\n", v, state)
	return nil
}
