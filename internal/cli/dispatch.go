package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// NewDispatchCommand creates the dispatch-outbox command, a one-shot drain for cron-style deployments.
func NewDispatchCommand(rootOpts *RootOptions) *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "dispatch-outbox",
		Short: "Send one batch of pending notifications and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(rootOpts)
			cfg, err := loadConfig(logger)
			if err != nil {
				return err
			}
			if batchSize <= 0 {
				batchSize = cfg.OutboxBatchSize
			}

			repos, closeRepos, err := openRepositories(cmd.Context(), cfg, logger, false)
			if err != nil {
				return err
			}
			defer closeRepos()

			container, err := buildServices(cfg, repos, logger)
			if err != nil {
				return err
			}
			sent, err := container.Dispatcher.DispatchPending(cmd.Context(), batchSize)
			if err != nil {
				logger.Error("Outbox dispatch failed", slog.String("error", err.Error()))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %d notification(s)\n", sent)
			return nil
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "messages to attempt (0 = OUTBOX_BATCH_SIZE)")

	return cmd
}
