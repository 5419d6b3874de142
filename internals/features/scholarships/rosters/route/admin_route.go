// file: internals/features/scholarships/rosters/route/admin_route.go
package route

import (
	rosterController "beasiswaku_backend/internals/features/scholarships/rosters/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func PaymentRosterAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := rosterController.NewPaymentRosterController(db, nil)

	rosters := r.Group("/payment-rosters")
	rosters.Post("/", ctl.Create)                  // POST  /api/a/payment-rosters
	rosters.Get("/", ctl.ListByRanking)            // GET   /api/a/payment-rosters?ranking_id=
	rosters.Patch("/:id/status", ctl.UpdateStatus) // PATCH /api/a/payment-rosters/:id/status
}
