// internals/features/students/route/student_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "surfschool_backend/internals/features/students/controller"
)

// StudentRoutes: /api/students/*. Sin gate grueso de rol: la tabla de
// políticas ya reduce a cada rol a su alcance (un INSTRUCTOR listará vacío).
func StudentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := studentController.NewStudentController(db)

	students := api.Group("/students")
	students.Get("/", ctrl.List)
	students.Get("/:id", ctrl.GetByID)
	students.Post("/", ctrl.Create)
	students.Put("/:id", ctrl.Update)
	students.Delete("/:id", ctrl.Delete)
}
