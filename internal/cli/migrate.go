package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SscSPs/commerce_lifecycle_app/internal/platform/config"
	"github.com/SscSPs/commerce_lifecycle_app/pkg/database"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back schema migrations",
		Long:      "Apply (up) or roll back (down) migrations from MIGRATIONS_PATH. --steps limits how many are applied.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(rootOpts)
			cfg, err := loadConfig(logger)
			if err != nil {
				return err
			}
			if cfg.StoreDriver != config.StoreDriverPgsql {
				return fmt.Errorf("migrations require STORE_DRIVER=%s, got %q", config.StoreDriverPgsql, cfg.StoreDriver)
			}
			if steps < 0 {
				return fmt.Errorf("--steps must not be negative")
			}
			return database.RunMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath, database.MigrationDirection(args[0]), steps)
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 0, "number of migrations to apply (0 = all)")

	return cmd
}
