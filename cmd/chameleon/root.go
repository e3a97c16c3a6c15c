package main

import (
	"github.com/spf13/cobra"

	"github.com/muzin/chameleon"
	"github.com/muzin/chameleon/config"
	"github.com/muzin/chameleon/logger"
)

type rootOptions struct {
	logLevel string
	logJSON  bool
}

func newRootCommand() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "chameleon",
		Short:         "Derive and run conversions between Go types",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = opts.logLevel
			}

			if cmd.Flags().Changed("log-json") {
				cfg.Log.JSON = opts.logJSON
			}

			if err := config.Validate(cfg); err != nil {
				return err
			}

			log := logger.NewLogger(&logger.Config{
				Level:      logger.LogLevel(cfg.Log.Level),
				Output:     cmd.ErrOrStderr(),
				JSON:       cfg.Log.JSON,
				TimeFormat: logger.DefaultConfig().TimeFormat,
			})

			ctx := logger.ContextWithLogger(cmd.Context(), log)
			ctx = withRegistry(ctx, chameleon.NewFromConfig(cfg, chameleon.WithLogger(log)))
			cmd.SetContext(ctx)

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error, disabled)")
	cmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "Emit logs as JSON")

	cmd.AddCommand(newPlanCommand())
	cmd.AddCommand(newConvertCommand())

	return cmd
}
