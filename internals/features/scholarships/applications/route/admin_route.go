// file: internals/features/scholarships/applications/route/admin_route.go
package route

import (
	applicationController "beasiswaku_backend/internals/features/scholarships/applications/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ApplicationAdminRoutes: ingest snapshot aplikasi (admin pusat)
func ApplicationAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := applicationController.NewApplicationReviewController(db, nil)

	apps := r.Group("/scholarship-applications")
	apps.Post("/", ctl.CreateApplication) // POST /api/a/scholarship-applications
}

// ApplicationReviewerRoutes: kesimpulan review (reviewer fakultas / admin)
func ApplicationReviewerRoutes(r fiber.Router, db *gorm.DB) {
	ctl := applicationController.NewApplicationReviewController(db, nil)

	reviews := r.Group("/application-reviews")
	reviews.Post("/", ctl.ConcludeReview) // POST /api/r/application-reviews
}
