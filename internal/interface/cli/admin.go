package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campus-hub/campus-registry/internal/infrastructure/persistence/postgres"
)

func newMigrateCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations (postgres backend)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Conn == nil {
				return errors.New("migrate: the configured backend has no migrations")
			}

			migrator := postgres.NewMigrator(app.Conn)
			if err := migrator.Up(cmd.Context()); err != nil {
				return err
			}

			status, err := migrator.Status(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "schema up to date, %d migrations applied\n", len(status))
			return nil
		},
	}

	return cmd
}

func newRefreshCacheCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-cache",
		Short: "Rebuild the roster cache from the repositories",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Cache == nil {
				return errors.New("refresh-cache: no cache configured")
			}

			if err := app.Cache.Refresh(cmd.Context(), app.Repos); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "roster cache refreshed")
			return nil
		},
	}
}
