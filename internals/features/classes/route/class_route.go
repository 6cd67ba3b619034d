// internals/features/classes/route/class_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surfschool_backend/internals/constants"
	classController "surfschool_backend/internals/features/classes/controller"
	authMiddleware "surfschool_backend/internals/middlewares/auth"
)

// ClassRoutes: /api/classes/*
func ClassRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := classController.NewClassController(db)

	classes := api.Group("/classes")
	classes.Get("/", ctrl.List)
	classes.Get("/:id", ctrl.GetByID)
	classes.Post("/",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("clases"), constants.RoleAdmin, constants.RoleSchoolAdmin),
		ctrl.Create)
	classes.Put("/:id",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("clases"), constants.RoleAdmin, constants.RoleSchoolAdmin),
		ctrl.Update)
	classes.Delete("/:id",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("clases"), constants.RoleAdmin, constants.RoleSchoolAdmin),
		ctrl.Delete)
}
