// internals/features/stats/controller/stats_controller.go
package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"gorm.io/gorm"

	classModel "surfschool_backend/internals/features/classes/model"
	instructorModel "surfschool_backend/internals/features/instructors/model"
	paymentModel "surfschool_backend/internals/features/payments/model"
	reservationModel "surfschool_backend/internals/features/reservations/model"
	studentModel "surfschool_backend/internals/features/students/model"
	helper "surfschool_backend/internals/helpers"
	helperAuth "surfschool_backend/internals/helpers/auth"
	"surfschool_backend/internals/tenancy"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// =============================
// GET /api/stats
//
// Dashboard del tenant. Cada agregado corre sobre el MISMO predicado que los
// listados: un SCHOOL_ADMIN ve números de su escuela, un ADMIN del sistema
// completo. No hay parámetro school_id: el alcance sale de la sesión.
// =============================
func (ctrl *StatsController) Dashboard(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpRead)
	}
	if ident.Role != tenancy.RoleAdmin && ident.Role != tenancy.RoleSchoolAdmin {
		return helperAuth.TenancyError(c, tenancy.ErrScopeDenied, tenancy.OpRead)
	}

	db := ctrl.DB.WithContext(c.UserContext())

	var totalClasses, upcomingClasses int64
	if err := tenancy.ScopedQuery(db.Model(&classModel.ClassModel{}), ident, tenancy.EntityClass).
		Count(&totalClasses).Error; err != nil {
		log.Printf("[ERROR] stats clases: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}
	if err := tenancy.ScopedQuery(db.Model(&classModel.ClassModel{}), ident, tenancy.EntityClass).
		Where("classes.class_date >= ?", time.Now()).
		Count(&upcomingClasses).Error; err != nil {
		log.Printf("[ERROR] stats clases próximas: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	var instructors, students int64
	if err := tenancy.ScopedQuery(db.Model(&instructorModel.InstructorModel{}), ident, tenancy.EntityInstructor).
		Count(&instructors).Error; err != nil {
		log.Printf("[ERROR] stats instructores: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}
	if err := tenancy.ScopedQuery(db.Model(&studentModel.StudentModel{}), ident, tenancy.EntityStudent).
		Count(&students).Error; err != nil {
		log.Printf("[ERROR] stats estudiantes: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	var byStatus []statusCount
	if err := tenancy.ScopedQuery(db.Model(&reservationModel.ReservationModel{}), ident, tenancy.EntityReservation).
		Select("reservations.reservation_status AS status, COUNT(*) AS count").
		Group("reservations.reservation_status").
		Scan(&byStatus).Error; err != nil {
		log.Printf("[ERROR] stats reservas: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}
	totalReservations := lo.SumBy(byStatus, func(s statusCount) int64 { return s.Count })
	reservationsByStatus := lo.SliceToMap(byStatus, func(s statusCount) (string, int64) {
		return s.Status, s.Count
	})

	var revenue float64
	if err := tenancy.ScopedQuery(db.Model(&paymentModel.PaymentModel{}), ident, tenancy.EntityPayment).
		Where("payments.payment_status = ?", paymentModel.PaymentStatusPaid).
		Select("COALESCE(SUM(payments.payment_amount), 0)").
		Scan(&revenue).Error; err != nil {
		log.Printf("[ERROR] stats ingresos: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	resp := fiber.Map{
		"classes": fiber.Map{
			"total":    totalClasses,
			"upcoming": upcomingClasses,
		},
		"instructors": instructors,
		"students":    students,
		"reservations": fiber.Map{
			"total":     totalReservations,
			"by_status": reservationsByStatus,
		},
		"revenue": fiber.Map{
			"total_paid": revenue,
			"currency":   "USD",
		},
	}
	if ident.SchoolID != nil {
		resp["school_id"] = *ident.SchoolID
	}
	return helper.JsonOK(c, "Dashboard", resp)
}
