package commands

import (
	"context"
	"fmt"

	"github.com/signcast/signcast/internal/logger"
	"github.com/signcast/signcast/pkg/config"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run database migrations for the signage database.

This command applies pending database migrations to the configured signage
database (SQLite or PostgreSQL). It is required after upgrading SignCast when
schema changes have been made.

Examples:
  # Run migrations with default config
  signcast migrate

  # Run migrations with custom config
  signcast migrate --config /etc/signcast/config.yaml`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	// Initialize the structured logger
	if err := InitLogger(cfg); err != nil {
		return err
	}

	logger.Info("Running database migrations", "type", cfg.Database.Type)

	// Create the signage store (this triggers auto-migration)
	ctx := context.Background()
	st, err := config.CreateStore(cfg.Database)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	defer func() { _ = st.Close() }()

	// Verify the migration worked by checking if we can query tenants
	_, err = st.ListTenants(ctx)
	if err != nil {
		return fmt.Errorf("migration verification failed: %w", err)
	}

	fmt.Printf("Migrations completed successfully (database type: %s)\n", cfg.Database.Type)
	return nil
}
