// file: internals/features/scholarships/scholarship_configs/route/admin_route.go
package route

import (
	configController "beasiswaku_backend/internals/features/scholarships/scholarship_configs/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ScholarshipConfigAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := configController.NewScholarshipConfigController(db, nil)

	configs := r.Group("/scholarship-configs")
	configs.Post("/", ctl.Upsert)                 // POST /api/a/scholarship-configs
	configs.Get("/", ctl.GetByPeriod)             // GET  /api/a/scholarship-configs?scholarship_type_id=&academic_year=&semester=
	configs.Get("/quota-status", ctl.QuotaStatus) // GET  /api/a/scholarship-configs/quota-status
}
