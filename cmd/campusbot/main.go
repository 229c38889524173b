// Command campusbot serves the school information chatbot.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/campusbot/internal/config"
	logpkg "github.com/kailas-cloud/campusbot/internal/logger"
	"github.com/kailas-cloud/campusbot/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var env string

	root := &cobra.Command{
		Use:   "campusbot",
		Short: "School information chatbot",
		Long: `campusbot answers questions about offices, programs, scholarships and other
school information. Messages are classified by Dialogflow, answered from the
entity database and rephrased by a generative model.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&env, "env", config.GetEnv(), "config environment (local, dev, prod)")

	root.AddCommand(
		newServeCmd(&env),
		newAskCmd(&env),
		newMigrateCmd(&env),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprint(cmd.OutOrStdout(), version.String())
			},
		},
	)
	return root
}

// bootstrap loads the environment's config and builds its logger.
func bootstrap(env string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}
