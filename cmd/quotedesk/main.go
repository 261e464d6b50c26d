package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mwd-interiors/quotedesk/internal/app"
	"mwd-interiors/quotedesk/internal/app/config"
	"mwd-interiors/quotedesk/internal/app/logger"
	"mwd-interiors/quotedesk/internal/domain/quote"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quotedesk",
		Short:         "Interior-fit-out quotation desk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newWordsCmd())
	return root
}

// setup loads configuration and builds the logger shared by every command.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.Environment)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if addr != "" {
				cfg.HTTPAddr = addr
			}
			log.Info("starting quotedesk",
				zap.String("env", cfg.Environment),
				zap.String("storage", cfg.StorageDriver),
			)
			return app.Run(cmd.Context(), cfg, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|version]",
		Short:     "Run database migrations against DATABASE_URL",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return app.Migrate(cmd.Context(), cfg, args[0], log)
		},
	}
}

func newWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words <amount>",
		Short: "Print an amount in Indian-system words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(strings.ReplaceAll(args[0], ",", ""))
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			if err := quote.CheckMagnitude(amount); err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), quote.FormatINR(amount))
			fmt.Fprintln(cmd.OutOrStdout(), quote.RupeesInWords(amount))
			return nil
		},
	}
}
