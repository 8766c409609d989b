package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetmind/internal/infrastructure/database"
	"github.com/johnquangdev/meetmind/pkg/config"
)

var (
	migrationsDir string
	migrateLimit  int
)

func init() {
	migrateCmd.PersistentFlags().StringVar(&migrationsDir, "dir", "", "Read migrations from this directory instead of the embedded set")
	migrateCmd.PersistentFlags().IntVar(&migrateLimit, "limit", 0, "Apply at most this many migrations (0 = all)")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
	Long: `Apply or roll back the SQL migrations using the DB_* settings.

Examples:
  # Apply all pending migrations
  meetmindctl migrate up

  # Roll back the most recent migration
  meetmindctl migrate down --limit 1`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd, database.Up)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back applied migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd, database.Down)
	},
}

func runMigrate(cmd *cobra.Command, direction database.Direction) error {
	cfg, err := config.LoadEnv()
	if err != nil {
		return err
	}
	if !cfg.HistoryEnabled() {
		return fmt.Errorf("DB_HOST is not set")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		return err
	}
	defer database.CloseDB(db)

	dir := migrationsDir
	if dir == "" {
		dir = cfg.Database.MigrationsDir
	}

	n, err := database.Migrate(db, database.MigrationSource(dir), direction, migrateLimit, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d migration(s) applied\n", direction, n)
	return nil
}
