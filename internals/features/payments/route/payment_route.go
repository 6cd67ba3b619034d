// internals/features/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "surfschool_backend/internals/features/payments/controller"
)

// PaymentRoutes: /api/payments/*. Sin gate grueso: la tabla de políticas
// niega a INSTRUCTOR por completo y reduce a STUDENT a sus propios pagos.
func PaymentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentController(db)

	payments := api.Group("/payments")
	payments.Get("/", ctrl.List)
	payments.Get("/:id", ctrl.GetByID)
	payments.Post("/", ctrl.Create)
	payments.Put("/:id", ctrl.Update)
	payments.Delete("/:id", ctrl.Delete)
}
