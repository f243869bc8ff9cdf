package cli

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"performance_backend/internals/configs"
	database "performance_backend/internals/databases"
	"performance_backend/internals/features/performances/repository"
)

// NewMigrateCommand runs only the schema evolution step and exits.
func NewMigrateCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the performances table",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := database.NewBackend(configs.DBDriver)
			if err != nil {
				return err
			}
			db, err := database.ConnectDB(backend)
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			if err := repository.NewPerformanceRepository(db, backend).Migrate(ctx); err != nil {
				return err
			}
			log.Println("✅ Migration finished")
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "migration timeout")
	return cmd
}
