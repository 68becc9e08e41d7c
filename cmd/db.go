package cmd

import (
	"fmt"

	"github.com/beiju/blarser-go/internal/db"
	"github.com/beiju/blarser-go/internal/echo"
	"github.com/spf13/cobra"
)

// DbCmd creates the db command group.
func DbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database operations",
		Long:  "Run schema migrations and inspect migration status.",
	}
	cmd.AddCommand(DbMigrateCmd())
	cmd.AddCommand(DbStatusCmd())
	return cmd
}

// DbMigrateCmd creates the db migrate command.
func DbMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE:  migrate,
	}
}

// DbStatusCmd creates the db status command.
func DbStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List applied schema migrations",
		RunE:  dbStatus,
	}
}

func migrate(cmd *cobra.Command, args []string) error {
	echo.Header("Database Migration")
	echo.Info("Connecting to database...")

	database, err := db.Connect("")
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}
	defer database.Close()

	echo.Success("✓ Connected to database")
	echo.Info("Running migrations...")

	ctx := cmd.Context()
	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("error: %w", err)
	}

	echo.Success("✓ All migrations applied successfully")
	return nil
}

func dbStatus(cmd *cobra.Command, args []string) error {
	echo.Header("Migration Status")

	database, err := db.Connect("")
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}
	defer database.Close()

	ctx := cmd.Context()
	applied, err := database.AppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}

	if len(applied) == 0 {
		echo.Info("No migrations applied yet")
		return nil
	}

	echo.Infof("Applied migrations (%d):", len(applied))
	for _, name := range applied {
		echo.Successf("  ✓ %s", name)
	}
	return nil
}
