// internals/features/schools/route/school_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surfschool_backend/internals/constants"
	schoolController "surfschool_backend/internals/features/schools/controller"
	authMiddleware "surfschool_backend/internals/middlewares/auth"
)

// SchoolRoutes: /api/schools/* (todas autenticadas; el alcance fino lo decide
// la tabla de políticas, el gate de rol solo corta lo obvio temprano)
func SchoolRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := schoolController.NewSchoolController(db)

	schools := api.Group("/schools")
	schools.Get("/", ctrl.List)
	schools.Get("/:id", ctrl.GetByID)
	schools.Post("/",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("escuelas"), constants.RoleAdmin, constants.RoleSchoolAdmin),
		ctrl.Create)
	schools.Put("/:id",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("escuelas"), constants.RoleAdmin, constants.RoleSchoolAdmin),
		ctrl.Update)
	schools.Delete("/:id",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("escuelas"), constants.RoleAdmin, constants.RoleSchoolAdmin),
		ctrl.Delete)
}
