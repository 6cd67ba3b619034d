// internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classRoute "surfschool_backend/internals/features/classes/route"
	instructorRoute "surfschool_backend/internals/features/instructors/route"
	paymentRoute "surfschool_backend/internals/features/payments/route"
	reservationRoute "surfschool_backend/internals/features/reservations/route"
	schoolRoute "surfschool_backend/internals/features/schools/route"
	statsRoute "surfschool_backend/internals/features/stats/route"
	studentRoute "surfschool_backend/internals/features/students/route"
	authRoute "surfschool_backend/internals/features/users/auth/route"
	authMiddleware "surfschool_backend/internals/middlewares/auth"
)

// SetupRoutes monta todo el árbol bajo /api. Auth es pública (con sus rate
// limiters propios); el resto exige JWT. El alcance por tenant NO se decide
// acá: cada handler pasa por la tabla de políticas con la identidad resuelta.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	// público
	authRoute.AuthRoutes(api, db)

	// autenticado
	protected := api.Group("", authMiddleware.AuthMiddleware())
	schoolRoute.SchoolRoutes(protected, db)
	instructorRoute.InstructorRoutes(protected, db)
	studentRoute.StudentRoutes(protected, db)
	classRoute.ClassRoutes(protected, db)
	reservationRoute.ReservationRoutes(protected, db)
	paymentRoute.PaymentRoutes(protected, db)
	statsRoute.StatsRoutes(protected, db)
}
