// internals/features/reservations/route/reservation_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surfschool_backend/internals/constants"
	reservationController "surfschool_backend/internals/features/reservations/controller"
	authMiddleware "surfschool_backend/internals/middlewares/auth"
)

// ReservationRoutes: /api/reservations/*
func ReservationRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := reservationController.NewReservationController(db)

	reservations := api.Group("/reservations")
	reservations.Get("/", ctrl.List)
	// OJO: /all antes de /:id para que Fiber no lo matchee como parámetro
	reservations.Get("/all",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("reservas globales"), constants.RoleAdmin),
		ctrl.ListAll)
	reservations.Get("/:id", ctrl.GetByID)
	reservations.Post("/", ctrl.Create)
	reservations.Put("/:id", ctrl.Update)
	reservations.Delete("/:id", ctrl.Delete)
}
