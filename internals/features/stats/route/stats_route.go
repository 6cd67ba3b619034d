// internals/features/stats/route/stats_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surfschool_backend/internals/constants"
	statsController "surfschool_backend/internals/features/stats/controller"
	authMiddleware "surfschool_backend/internals/middlewares/auth"
)

// StatsRoutes: /api/stats
func StatsRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := statsController.NewStatsController(db)

	api.Get("/stats",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("estadísticas"), constants.RoleAdmin, constants.RoleSchoolAdmin),
		ctrl.Dashboard)
}
