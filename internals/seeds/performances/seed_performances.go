package performances

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/bytedance/sonic"

	"performance_backend/internals/features/performances/repository"
	"performance_backend/internals/features/performances/service"
)

type PerformanceSeed struct {
	ID        string `json:"id"`
	Location  string `json:"location"`
	Category  string `json:"category"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Venue     string `json:"venue"`
	TeamSetup string `json:"team_setup"`
	Notes     string `json:"notes"`
	Status    string `json:"status"`
}

// SeedPerformancesFromJSON inserts fixture rows through the service, so the
// same validation applies. Existing ids are skipped.
func SeedPerformancesFromJSON(ctx context.Context, store repository.Store, svc service.PerformanceService, filePath string) (int, error) {
	log.Println("📥 Reading performances file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filePath, err)
	}

	var inputs []PerformanceSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}

	inserted := 0
	for _, data := range inputs {
		_, err := svc.CreateRecord(ctx, store, service.CreateInput{
			ID:            data.ID,
			Location:      data.Location,
			Category:      data.Category,
			Title:         data.Title,
			Date:          data.Date,
			Venue:         data.Venue,
			TeamSetup:     data.TeamSetup,
			Notes:         data.Notes,
			InitialStatus: data.Status,
		})
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, service.ErrDuplicateIdentifier):
			log.Printf("ℹ️ Performance '%s' already exists, skipped.", data.ID)
		case errors.Is(err, service.ErrValidation):
			log.Printf("⚠️ Performance '%s' invalid, skipped: %v", data.ID, err)
		default:
			return inserted, err
		}
	}

	log.Printf("✅ Seeded %d of %d performances", inserted, len(inputs))
	return inserted, nil
}
