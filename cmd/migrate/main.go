// Command migrate applies or rolls back the journal database schema outside
// the API server.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"book-journal/internal/infra/db"
	"book-journal/internal/observability/logging"
)

// migrator is the part of the db package the commands drive.
type migrator struct {
	open    func(ctx context.Context) (*sql.DB, error)
	up      func(*sql.DB) error
	down    func(*sql.DB) error
	version func(*sql.DB) (uint, bool, error)
}

func defaultMigrator() migrator {
	return migrator{
		open:    db.Open,
		up:      db.MigrateUp,
		down:    db.MigrateDown,
		version: db.MigrationVersion,
	}
}

func main() {
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := newRootCommand(defaultMigrator(), logger).Execute(); err != nil {
		logger.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func newRootCommand(m migrator, logger *slog.Logger) *cobra.Command {
	var timeout time.Duration

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Database migration commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "how long to wait for the database")

	withDB := func(run func(*cobra.Command, *sql.DB) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			database, err := m.open(ctx)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() {
				if err := database.Close(); err != nil {
					logger.Error("failed to close database", slog.Any("error", err))
				}
			}()
			return run(cmd, database)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: withDB(func(_ *cobra.Command, database *sql.DB) error {
				return m.up(database)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			Args:  cobra.NoArgs,
			RunE: withDB(func(_ *cobra.Command, database *sql.DB) error {
				if err := m.down(database); err != nil {
					return err
				}
				logger.Warn("rolled back one migration")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Show the applied schema version",
			Args:  cobra.NoArgs,
			RunE: withDB(func(cmd *cobra.Command, database *sql.DB) error {
				version, dirty, err := m.version(database)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return err
			}),
		},
	)
	return root
}
