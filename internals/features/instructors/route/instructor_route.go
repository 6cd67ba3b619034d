// internals/features/instructors/route/instructor_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surfschool_backend/internals/constants"
	instructorController "surfschool_backend/internals/features/instructors/controller"
	authMiddleware "surfschool_backend/internals/middlewares/auth"
)

// InstructorRoutes: /api/instructors/*
func InstructorRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := instructorController.NewInstructorController(db)

	instructors := api.Group("/instructors")
	instructors.Get("/", ctrl.List)
	instructors.Get("/:id", ctrl.GetByID)
	instructors.Post("/",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("instructores"), constants.RoleAdmin, constants.RoleSchoolAdmin),
		ctrl.Create)
	instructors.Put("/:id", ctrl.Update) // INSTRUCTOR edita su propio perfil
	instructors.Delete("/:id",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("instructores"), constants.RoleAdmin, constants.RoleSchoolAdmin),
		ctrl.Delete)
}
