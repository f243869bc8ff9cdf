// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	perfRoute "performance_backend/internals/features/performances/route"
	"performance_backend/internals/features/performances/repository"
	"performance_backend/internals/features/performances/service"
)

var startTime time.Time

type Deps struct {
	DB      *gorm.DB
	Backend string
	Repo    *repository.PerformanceRepository
	Svc     service.PerformanceService
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, d.DB, d.Backend)

	api := app.Group("/api")

	log.Println("[INFO] Mounting Performance routes...")
	perfRoute.PerformanceRoutes(api, d.Repo, d.Svc)
}
