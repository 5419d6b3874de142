// file: internals/features/scholarships/rankings/route/admin_route.go
package route

import (
	rankingController "beasiswaku_backend/internals/features/scholarships/rankings/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/*
Admin routes: siklus hidup ranking penuh
Mount contoh: RankingAdminRoutes(app.Group("/api/a"), db)
*/
func RankingAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := rankingController.NewRankingController(db, nil)

	rankings := r.Group("/rankings")
	rankings.Post("/", ctl.Create)                 // POST   /api/a/rankings
	rankings.Get("/", ctl.List)                    // GET    /api/a/rankings
	rankings.Get("/:id", ctl.Detail)               // GET    /api/a/rankings/:id
	rankings.Patch("/:id/order", ctl.UpdateOrder)  // PATCH  /api/a/rankings/:id/order
	rankings.Post("/:id/finalize", ctl.Finalize)   // POST   /api/a/rankings/:id/finalize
	rankings.Post("/:id/unfinalize", ctl.Unfinalize)
	rankings.Post("/:id/distribute", ctl.Distribute) // POST /api/a/rankings/:id/distribute
	rankings.Delete("/:id", ctl.Delete)              // DELETE /api/a/rankings/:id (hard delete + audit)

	// redistribusi manual untuk satu aplikasi (jalur yang sama dengan trigger review)
	rankings.Post("/redistribute/:application_id", ctl.Redistribute)
}
