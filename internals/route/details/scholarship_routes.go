// file: internals/route/details/scholarship_routes.go
package details

import (
	ApplicationRoute "beasiswaku_backend/internals/features/scholarships/applications/route"
	RankingRoute "beasiswaku_backend/internals/features/scholarships/rankings/route"
	RosterRoute "beasiswaku_backend/internals/features/scholarships/rosters/route"
	ConfigRoute "beasiswaku_backend/internals/features/scholarships/scholarship_configs/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ScholarshipAdminRoutes(r fiber.Router, db *gorm.DB) {
	ConfigRoute.ScholarshipConfigAdminRoutes(r, db)
	ApplicationRoute.ApplicationAdminRoutes(r, db)
	RankingRoute.RankingAdminRoutes(r, db)
	RosterRoute.PaymentRosterAdminRoutes(r, db)
}

func ScholarshipReviewerRoutes(r fiber.Router, db *gorm.DB) {
	ApplicationRoute.ApplicationReviewerRoutes(r, db)
}
