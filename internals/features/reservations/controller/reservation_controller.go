// internals/features/reservations/controller/reservation_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	classModel "surfschool_backend/internals/features/classes/model"
	"surfschool_backend/internals/features/reservations/dto"
	reservationModel "surfschool_backend/internals/features/reservations/model"
	helper "surfschool_backend/internals/helpers"
	helperAuth "surfschool_backend/internals/helpers/auth"
	"surfschool_backend/internals/tenancy"
)

type ReservationController struct {
	DB *gorm.DB
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db}
}

var validate = validator.New()

var reservationSortColumns = map[string]string{
	"created_at": "reservations.reservation_created_at",
	"status":     "reservations.reservation_status",
}

var errClassFull = errors.New("clase sin cupos")

// =============================
// GET /api/reservations
// =============================
func (ctrl *ReservationController) List(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpRead)
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	order, _ := p.SafeOrderClause(reservationSortColumns, "created_at")

	// el alcance del staff se propaga por el JOIN a la clase, nunca por una
	// copia de school_id en la reserva
	base := tenancy.ScopedQuery(
		ctrl.DB.WithContext(c.UserContext()).Model(&reservationModel.ReservationModel{}),
		ident, tenancy.EntityReservation,
	)

	if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" {
		base = base.Where("reservations.reservation_status = ?", status)
	}
	if raw := strings.TrimSpace(c.Query("class_id")); raw != "" {
		classID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id inválido")
		}
		base = base.Where("reservations.reservation_class_id = ?", classID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		log.Printf("[ERROR] contar reservas: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	var rows []reservationModel.ReservationModel
	if err := base.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		log.Printf("[ERROR] listar reservas: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	resp := lo.Map(rows, func(m reservationModel.ReservationModel, _ int) dto.ReservationResponse {
		return dto.ToReservationResponse(m)
	})
	return helper.JsonList(c, "Reservas", resp, helper.BuildMeta(total, p))
}

// =============================
// GET /api/reservations/all  (solo ADMIN, paginación ancha)
// =============================
func (ctrl *ReservationController) ListAll(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpRead)
	}
	if ident.Role != tenancy.RoleAdmin {
		// el gate de rol en la ruta ya corta esto; doble cierre
		return helperAuth.TenancyError(c, tenancy.ErrScopeDenied, tenancy.OpRead)
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	order, _ := p.SafeOrderClause(reservationSortColumns, "created_at")

	base := ctrl.DB.WithContext(c.UserContext()).Model(&reservationModel.ReservationModel{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}
	var rows []reservationModel.ReservationModel
	if err := base.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	resp := lo.Map(rows, func(m reservationModel.ReservationModel, _ int) dto.ReservationResponse {
		return dto.ToReservationResponse(m)
	})
	return helper.JsonList(c, "Todas las reservas", resp, helper.BuildMeta(total, p))
}

// =============================
// GET /api/reservations/:id
// =============================
func (ctrl *ReservationController) GetByID(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpRead)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var row reservationModel.ReservationModel
	err = tenancy.ScopedQuery(
		ctrl.DB.WithContext(c.UserContext()).Model(&reservationModel.ReservationModel{}),
		ident, tenancy.EntityReservation,
	).Where("reservations.reservation_id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// reserva ajena e inexistente responden igual
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	return helper.JsonOK(c, "ok", dto.ToReservationResponse(row))
}

// =============================
// POST /api/reservations
// =============================
func (ctrl *ReservationController) Create(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpCreate)
	}

	var req dto.CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}
	participants := req.ReservationParticipants
	if participants == 0 {
		participants = 1
	}

	db := ctrl.DB.WithContext(c.UserContext())
	guard := tenancy.NewGuard(tenancy.NewResolver(tenancy.NewGormStore(db)))

	fields, err := guard.AuthorizeCreate(ident, tenancy.EntityReservation,
		tenancy.TenantFields{UserID: req.ReservationUserID})
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpCreate)
	}
	if fields.UserID == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "reservation_user_id es requerido")
	}

	var row reservationModel.ReservationModel
	txErr := db.Transaction(func(tx *gorm.DB) error {
		// lock de la clase: el chequeo de cupos y el insert ven el mismo estado
		var class classModel.ClassModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("class_id = ?", req.ReservationClassID).
			First(&class).Error; err != nil {
			return err
		}

		// el staff solo reserva en clases de SU escuela
		if fields.SchoolID != nil && class.ClassSchoolID != *fields.SchoolID {
			return tenancy.ErrScopeDenied
		}
		if class.ClassDate.Before(time.Now()) {
			return fiber.NewError(fiber.StatusConflict, "La clase ya pasó")
		}

		var taken int
		if err := tx.Table("reservations").
			Where("reservation_class_id = ?", class.ClassID).
			Where("reservation_status <> 'CANCELED'").
			Where("reservation_deleted_at IS NULL").
			Select("COALESCE(SUM(reservation_participants), 0)").
			Scan(&taken).Error; err != nil {
			return err
		}
		if taken+participants > class.ClassCapacity {
			return errClassFull
		}

		row = reservationModel.ReservationModel{
			ReservationClassID:        class.ClassID,
			ReservationUserID:         *fields.UserID,
			ReservationStatus:         reservationModel.ReservationStatusPending,
			ReservationParticipants:   participants,
			ReservationSpecialRequest: req.ReservationSpecialRequest,
		}
		return tx.Create(&row).Error
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		case errors.Is(txErr, tenancy.ErrScopeDenied):
			return helperAuth.TenancyError(c, txErr, tenancy.OpCreate)
		case errors.Is(txErr, errClassFull):
			return helper.JsonError(c, fiber.StatusConflict, "La clase no tiene cupos disponibles")
		default:
			var fe *fiber.Error
			if errors.As(txErr, &fe) {
				return helper.JsonError(c, fe.Code, fe.Message)
			}
			log.Printf("[ERROR] crear reserva: %v", txErr)
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo crear la reserva")
		}
	}

	log.Printf("✅ reserva creada: %s (clase %s)", row.ReservationID, row.ReservationClassID)
	return helper.JsonCreated(c, "Reserva creada", dto.ToReservationResponse(row))
}

// =============================
// PUT /api/reservations/:id
// =============================
func (ctrl *ReservationController) Update(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpUpdate)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := ctrl.DB.WithContext(c.UserContext())

	var row reservationModel.ReservationModel
	if err := db.Where("reservation_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	// el tenant efectivo se re-resuelve vía la clase; el chequeo va ANTES de
	// validar campos
	guard := tenancy.NewGuard(tenancy.NewResolver(tenancy.NewGormStore(db)))
	if err := guard.AuthorizeMutate(c.UserContext(), ident, tenancy.EntityReservation, tenancy.OpUpdate,
		tenancy.Row{ClassID: &row.ReservationClassID, OwnerUserID: &row.ReservationUserID}); err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpUpdate)
	}

	var req dto.UpdateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	updates := map[string]any{}
	if req.ReservationStatus != nil && *req.ReservationStatus != row.ReservationStatus {
		next := *req.ReservationStatus
		// un estudiante solo cancela; confirmar/completar es del staff
		if ident.Role == tenancy.RoleStudent && next != reservationModel.ReservationStatusCanceled {
			return helperAuth.TenancyError(c, tenancy.ErrScopeDenied, tenancy.OpUpdate)
		}
		if !reservationModel.ValidTransition(row.ReservationStatus, next) {
			return helper.JsonError(c, fiber.StatusConflict, "Transición de estado inválida")
		}
		updates["reservation_status"] = next
	}
	if req.ReservationParticipants != nil {
		updates["reservation_participants"] = *req.ReservationParticipants
	}
	if req.ReservationSpecialRequest != nil {
		updates["reservation_special_request"] = *req.ReservationSpecialRequest
	}

	if len(updates) > 0 {
		if err := db.Model(&row).Updates(updates).Error; err != nil {
			log.Printf("[ERROR] actualizar reserva %s: %v", id, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar la reserva")
		}
	}
	return helper.JsonUpdated(c, "Reserva actualizada", dto.ToReservationResponse(row))
}

// =============================
// DELETE /api/reservations/:id
// =============================
func (ctrl *ReservationController) Delete(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpDelete)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := ctrl.DB.WithContext(c.UserContext())

	var row reservationModel.ReservationModel
	if err := db.Where("reservation_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	guard := tenancy.NewGuard(tenancy.NewResolver(tenancy.NewGormStore(db)))
	if err := guard.AuthorizeMutate(c.UserContext(), ident, tenancy.EntityReservation, tenancy.OpDelete,
		tenancy.Row{ClassID: &row.ReservationClassID, OwnerUserID: &row.ReservationUserID}); err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpDelete)
	}

	if err := db.Delete(&row).Error; err != nil {
		log.Printf("[ERROR] eliminar reserva %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo eliminar la reserva")
	}
	return helper.JsonDeleted(c, "Reserva eliminada", fiber.Map{"reservation_id": id})
}
