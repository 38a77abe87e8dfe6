package cmd

import (
	"freight/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			deps, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer deps.close()

			if err = postgres.Migrate(deps.db); err != nil {
				return err
			}
			deps.logger.Info("schema migrated")
			return nil
		},
	}
}
