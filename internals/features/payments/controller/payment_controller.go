// internals/features/payments/controller/payment_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"surfschool_backend/internals/features/payments/dto"
	paymentModel "surfschool_backend/internals/features/payments/model"
	reservationModel "surfschool_backend/internals/features/reservations/model"
	helper "surfschool_backend/internals/helpers"
	helperAuth "surfschool_backend/internals/helpers/auth"
	"surfschool_backend/internals/tenancy"
)

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

var validate = validator.New()

var paymentSortColumns = map[string]string{
	"created_at": "payments.payment_created_at",
	"amount":     "payments.payment_amount",
}

// =============================
// GET /api/payments
// =============================
func (ctrl *PaymentController) List(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpRead)
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	order, _ := p.SafeOrderClause(paymentSortColumns, "created_at")

	// dos saltos de JOIN (pago→reserva→clase); un INSTRUCTOR lista vacío
	base := tenancy.ScopedQuery(
		ctrl.DB.WithContext(c.UserContext()).Model(&paymentModel.PaymentModel{}),
		ident, tenancy.EntityPayment,
	)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		log.Printf("[ERROR] contar pagos: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	var rows []paymentModel.PaymentModel
	if err := base.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		log.Printf("[ERROR] listar pagos: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	resp := lo.Map(rows, func(m paymentModel.PaymentModel, _ int) dto.PaymentResponse {
		return dto.ToPaymentResponse(m)
	})
	return helper.JsonList(c, "Pagos", resp, helper.BuildMeta(total, p))
}

// =============================
// GET /api/payments/:id
// =============================
func (ctrl *PaymentController) GetByID(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpRead)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var row paymentModel.PaymentModel
	err = tenancy.ScopedQuery(
		ctrl.DB.WithContext(c.UserContext()).Model(&paymentModel.PaymentModel{}),
		ident, tenancy.EntityPayment,
	).Where("payments.payment_id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	return helper.JsonOK(c, "ok", dto.ToPaymentResponse(row))
}

// =============================
// POST /api/payments
// =============================
func (ctrl *PaymentController) Create(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpCreate)
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	db := ctrl.DB.WithContext(c.UserContext())
	guard := tenancy.NewGuard(tenancy.NewResolver(tenancy.NewGormStore(db)))

	// el pago no tiene tenant propio: la autorización corre contra la reserva
	// destino (dueño para STUDENT, escuela de la clase para SCHOOL_ADMIN)
	if err := guard.AuthorizeMutate(c.UserContext(), ident, tenancy.EntityPayment, tenancy.OpCreate,
		tenancy.Row{ReservationID: &req.PaymentReservationID}); err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpCreate)
	}

	method := "manual"
	if req.PaymentMethod != nil {
		method = *req.PaymentMethod
	}

	var row paymentModel.PaymentModel
	txErr := db.Transaction(func(tx *gorm.DB) error {
		var res reservationModel.ReservationModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("reservation_id = ?", req.PaymentReservationID).
			First(&res).Error; err != nil {
			return err
		}
		if res.ReservationStatus != reservationModel.ReservationStatusConfirmed {
			return fiber.NewError(fiber.StatusConflict, "La reserva debe estar CONFIRMED para pagarse")
		}

		row = paymentModel.PaymentModel{
			PaymentReservationID: res.ReservationID,
			PaymentAmount:        req.PaymentAmount,
			PaymentStatus:        paymentModel.PaymentStatusPaid,
			PaymentMethod:        method,
			PaymentTransactionID: req.PaymentTransactionID,
			PaymentMetadata:      dto.ToJSONMap(req.PaymentMetadata),
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		// el pago exitoso avanza la reserva CONFIRMED → PAID
		return tx.Model(&res).
			Update("reservation_status", reservationModel.ReservationStatusPaid).Error
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		default:
			var fe *fiber.Error
			if errors.As(txErr, &fe) {
				return helper.JsonError(c, fe.Code, fe.Message)
			}
			log.Printf("[ERROR] crear pago: %v", txErr)
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo registrar el pago")
		}
	}

	log.Printf("✅ pago registrado: %s (reserva %s)", row.PaymentID, row.PaymentReservationID)
	return helper.JsonCreated(c, "Pago registrado", dto.ToPaymentResponse(row))
}

// =============================
// PUT /api/payments/:id
// =============================
func (ctrl *PaymentController) Update(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpUpdate)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := ctrl.DB.WithContext(c.UserContext())

	var row paymentModel.PaymentModel
	if err := db.Where("payment_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	guard := tenancy.NewGuard(tenancy.NewResolver(tenancy.NewGormStore(db)))
	if err := guard.AuthorizeMutate(c.UserContext(), ident, tenancy.EntityPayment, tenancy.OpUpdate,
		tenancy.Row{ReservationID: &row.PaymentReservationID}); err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpUpdate)
	}

	var req dto.UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	updates := map[string]any{}
	if req.PaymentStatus != nil {
		updates["payment_status"] = *req.PaymentStatus
	}
	if req.PaymentMethod != nil {
		updates["payment_method"] = *req.PaymentMethod
	}
	if req.PaymentTransactionID != nil {
		updates["payment_transaction_id"] = *req.PaymentTransactionID
	}
	if req.PaymentMetadata != nil {
		updates["payment_metadata"] = dto.ToJSONMap(req.PaymentMetadata)
	}

	if len(updates) > 0 {
		if err := db.Model(&row).Updates(updates).Error; err != nil {
			log.Printf("[ERROR] actualizar pago %s: %v", id, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar el pago")
		}
	}
	return helper.JsonUpdated(c, "Pago actualizado", dto.ToPaymentResponse(row))
}

// =============================
// DELETE /api/payments/:id
// =============================
func (ctrl *PaymentController) Delete(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpDelete)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := ctrl.DB.WithContext(c.UserContext())

	var row paymentModel.PaymentModel
	if err := db.Where("payment_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	guard := tenancy.NewGuard(tenancy.NewResolver(tenancy.NewGormStore(db)))
	if err := guard.AuthorizeMutate(c.UserContext(), ident, tenancy.EntityPayment, tenancy.OpDelete,
		tenancy.Row{ReservationID: &row.PaymentReservationID}); err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpDelete)
	}

	if err := db.Delete(&row).Error; err != nil {
		log.Printf("[ERROR] eliminar pago %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo eliminar el pago")
	}
	return helper.JsonDeleted(c, "Pago eliminado", fiber.Map{"payment_id": id})
}
