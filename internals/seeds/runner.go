package seeds

import (
	"context"

	"performance_backend/internals/features/performances/repository"
	"performance_backend/internals/features/performances/service"
	perfSeed "performance_backend/internals/seeds/performances"
)

const DefaultPerformancesFile = "internals/seeds/performances/data_performances.json"

// RunAllSeeds loads every fixture file. Only performances exist today.
func RunAllSeeds(ctx context.Context, store repository.Store, svc service.PerformanceService, performancesFile string) error {
	if performancesFile == "" {
		performancesFile = DefaultPerformancesFile
	}

	//* Performances
	if _, err := perfSeed.SeedPerformancesFromJSON(ctx, store, svc, performancesFile); err != nil {
		return err
	}
	return nil
}
