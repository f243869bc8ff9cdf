package cli

import (
	"context"

	"github.com/spf13/cobra"

	"performance_backend/internals/configs"
	database "performance_backend/internals/databases"
	"performance_backend/internals/features/performances/repository"
	"performance_backend/internals/features/performances/service"
	"performance_backend/internals/seeds"
)

// NewSeedCommand loads development fixtures into the configured backend.
func NewSeedCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert fixture performances (existing ids are skipped)",
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

			repo := repository.NewPerformanceRepository(db, backend)
			if err := repo.Migrate(ctx); err != nil {
				return err
			}
			svc := service.NewPerformanceService(configs.Location(), nil)
			return repo.Scoped(ctx, func(store repository.Store) error {
				return seeds.RunAllSeeds(ctx, store, svc, file)
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", seeds.DefaultPerformancesFile, "JSON fixture file")
	return cmd
}
