// file: internals/features/performances/route/all_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	perfCtl "performance_backend/internals/features/performances/controller"
	"performance_backend/internals/features/performances/service"
)

// =========================
// /performances
// =========================
func PerformanceRoutes(r fiber.Router, stores perfCtl.StoreProvider, svc service.PerformanceService) {
	ctl := perfCtl.NewPerformanceController(stores, svc)

	grp := r.Group("/performances")
	grp.Get("/", ctl.List)
	grp.Get("/next-id", ctl.NextID)
	grp.Get("/:id", ctl.Get)
	grp.Post("/", ctl.Create)
	grp.Post("/:id/actions", ctl.Action)
}
