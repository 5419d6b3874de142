// file: internals/route/index.go
package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"beasiswaku_backend/internals/constants"
	authMiddleware "beasiswaku_backend/internals/middlewares/auth"
	routeDetails "beasiswaku_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		authMiddleware.OnlyRoles(
			constants.RoleErrorAdmin("mengelola ranking beasiswa"),
			constants.AdminAndAbove...,
		),
	)

	// ===================== REVIEWER =====================
	log.Println("[INFO] Setting up REVIEWER group (Auth + RoleCheck)...")
	reviewer := app.Group("/api/r",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		authMiddleware.OnlyRoles(
			constants.RoleErrorReviewer("menyimpulkan review"),
			constants.ReviewerAndAbove...,
		),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Scholarship routes...")
	routeDetails.ScholarshipAdminRoutes(admin, db)
	routeDetails.ScholarshipReviewerRoutes(reviewer, db)
}
