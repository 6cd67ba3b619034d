// internals/features/classes/controller/class_controller.go
package controller

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"surfschool_backend/internals/features/classes/dto"
	classModel "surfschool_backend/internals/features/classes/model"
	helper "surfschool_backend/internals/helpers"
	helperAuth "surfschool_backend/internals/helpers/auth"
	"surfschool_backend/internals/tenancy"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

var validate = validator.New()

var classSortColumns = map[string]string{
	"date":       "classes.class_date",
	"price":      "classes.class_price",
	"created_at": "classes.class_created_at",
}

// =============================
// GET /api/classes
// =============================
func (ctrl *ClassController) List(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpRead)
	}

	p := helper.ParseFiber(c, "date", "asc", helper.DefaultOpts)
	order, _ := p.SafeOrderClause(classSortColumns, "date")

	// catálogo: un STUDENT ve clases de TODAS las escuelas (es el marketplace)
	base := tenancy.ScopedQuery(
		ctrl.DB.WithContext(c.UserContext()).Model(&classModel.ClassModel{}),
		ident, tenancy.EntityClass,
	)

	// filtros de catálogo (refinan DENTRO del alcance, nunca lo amplían)
	if raw := strings.TrimSpace(c.Query("school_id")); raw != "" {
		schoolID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "school_id inválido")
		}
		base = base.Where("classes.class_school_id = ?", schoolID)
	}
	if level := strings.ToUpper(strings.TrimSpace(c.Query("level"))); level != "" {
		base = base.Where("classes.class_level = ?", level)
	}
	if c.QueryBool("upcoming", false) {
		base = base.Where("classes.class_date >= ?", time.Now())
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		log.Printf("[ERROR] contar clases: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	var rows []classModel.ClassModel
	if err := base.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		log.Printf("[ERROR] listar clases: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	resp := lo.Map(rows, func(m classModel.ClassModel, _ int) dto.ClassResponse {
		return dto.ToClassResponse(m)
	})
	return helper.JsonList(c, "Clases", resp, helper.BuildMeta(total, p))
}

// =============================
// GET /api/classes/:id
// =============================
func (ctrl *ClassController) GetByID(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpRead)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := ctrl.DB.WithContext(c.UserContext())

	var row classModel.ClassModel
	err = tenancy.ScopedQuery(db.Model(&classModel.ClassModel{}), ident, tenancy.EntityClass).
		Where("classes.class_id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	resp := dto.ToClassResponse(row)
	if taken, err := reservedSpots(c.UserContext(), db, row.ClassID); err == nil {
		free := row.ClassCapacity - taken
		if free < 0 {
			free = 0
		}
		resp.ClassAvailableSpots = &free
	}
	return helper.JsonOK(c, "ok", resp)
}

// =============================
// POST /api/classes
// =============================
func (ctrl *ClassController) Create(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpCreate)
	}

	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	db := ctrl.DB.WithContext(c.UserContext())
	guard := tenancy.NewGuard(tenancy.NewResolver(tenancy.NewGormStore(db)))

	fields, err := guard.AuthorizeCreate(ident, tenancy.EntityClass,
		tenancy.TenantFields{SchoolID: req.ClassSchoolID})
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpCreate)
	}
	if fields.SchoolID == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_school_id es requerido")
	}

	// el instructor asignado debe pertenecer a la MISMA escuela
	if req.ClassInstructorID != nil {
		ok, err := instructorInSchool(c.UserContext(), db, *req.ClassInstructorID, *fields.SchoolID)
		if err != nil {
			log.Printf("[ERROR] validar instructor: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
		}
		if !ok {
			return helper.JsonError(c, fiber.StatusBadRequest, "El instructor no pertenece a la escuela")
		}
	}

	row := classModel.ClassModel{
		ClassSchoolID:     *fields.SchoolID,
		ClassInstructorID: req.ClassInstructorID,
		ClassTitle:        strings.TrimSpace(req.ClassTitle),
		ClassDescription:  req.ClassDescription,
		ClassDate:         req.ClassDate,
		ClassDurationMin:  req.ClassDurationMin,
		ClassCapacity:     req.ClassCapacity,
		ClassPrice:        req.ClassPrice,
		ClassLevel:        req.ClassLevel,
	}
	if err := db.Create(&row).Error; err != nil {
		log.Printf("[ERROR] crear clase: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo crear la clase")
	}

	log.Printf("✅ clase creada: %s (%s)", row.ClassTitle, row.ClassID)
	return helper.JsonCreated(c, "Clase creada", dto.ToClassResponse(row))
}

// =============================
// PUT /api/classes/:id
// =============================
func (ctrl *ClassController) Update(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpUpdate)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := ctrl.DB.WithContext(c.UserContext())

	var row classModel.ClassModel
	if err := db.Where("class_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	// alcance ANTES de validar campos: un update cross-tenant no llega a saber
	// qué campos hubieran sido válidos
	guard := tenancy.NewGuard(tenancy.NewResolver(tenancy.NewGormStore(db)))
	if err := guard.AuthorizeMutate(c.UserContext(), ident, tenancy.EntityClass, tenancy.OpUpdate,
		tenancy.Row{SchoolID: &row.ClassSchoolID}); err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpUpdate)
	}

	var req dto.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	targetSchool := row.ClassSchoolID
	updates := map[string]any{}

	if req.ClassSchoolID != nil {
		if err := guard.AuthorizeSchoolReassign(ident, row.ClassSchoolID, *req.ClassSchoolID); err != nil {
			return helperAuth.TenancyError(c, err, tenancy.OpUpdate)
		}
		targetSchool = *req.ClassSchoolID
		updates["class_school_id"] = *req.ClassSchoolID
	}
	if req.ClassInstructorID != nil {
		ok, err := instructorInSchool(c.UserContext(), db, *req.ClassInstructorID, targetSchool)
		if err != nil {
			log.Printf("[ERROR] validar instructor: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
		}
		if !ok {
			return helper.JsonError(c, fiber.StatusBadRequest, "El instructor no pertenece a la escuela")
		}
		updates["class_instructor_id"] = *req.ClassInstructorID
	}
	if req.ClassTitle != nil {
		updates["class_title"] = strings.TrimSpace(*req.ClassTitle)
	}
	if req.ClassDescription != nil {
		updates["class_description"] = *req.ClassDescription
	}
	if req.ClassDate != nil {
		updates["class_date"] = *req.ClassDate
	}
	if req.ClassDurationMin != nil {
		updates["class_duration_min"] = *req.ClassDurationMin
	}
	if req.ClassCapacity != nil {
		updates["class_capacity"] = *req.ClassCapacity
	}
	if req.ClassPrice != nil {
		updates["class_price"] = *req.ClassPrice
	}
	if req.ClassLevel != nil {
		updates["class_level"] = *req.ClassLevel
	}

	if len(updates) > 0 {
		if err := db.Model(&row).Updates(updates).Error; err != nil {
			log.Printf("[ERROR] actualizar clase %s: %v", id, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar la clase")
		}
	}
	return helper.JsonUpdated(c, "Clase actualizada", dto.ToClassResponse(row))
}

// =============================
// DELETE /api/classes/:id
// =============================
func (ctrl *ClassController) Delete(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpDelete)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := ctrl.DB.WithContext(c.UserContext())

	var row classModel.ClassModel
	if err := db.Where("class_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	guard := tenancy.NewGuard(tenancy.NewResolver(tenancy.NewGormStore(db)))
	if err := guard.AuthorizeMutate(c.UserContext(), ident, tenancy.EntityClass, tenancy.OpDelete,
		tenancy.Row{SchoolID: &row.ClassSchoolID}); err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpDelete)
	}

	if err := db.Delete(&row).Error; err != nil {
		log.Printf("[ERROR] eliminar clase %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo eliminar la clase")
	}
	return helper.JsonDeleted(c, "Clase eliminada", fiber.Map{"class_id": id})
}

// reservedSpots: participantes activos (no cancelados) de una clase.
func reservedSpots(ctx context.Context, db *gorm.DB, classID uuid.UUID) (int, error) {
	var taken int
	err := db.WithContext(ctx).
		Table("reservations").
		Where("reservation_class_id = ?", classID).
		Where("reservation_status <> 'CANCELED'").
		Where("reservation_deleted_at IS NULL").
		Select("COALESCE(SUM(reservation_participants), 0)").
		Scan(&taken).Error
	return taken, err
}

func instructorInSchool(ctx context.Context, db *gorm.DB, instructorID, schoolID uuid.UUID) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Table("instructors").
		Where("instructor_id = ?", instructorID).
		Where("instructor_school_id = ?", schoolID).
		Where("instructor_deleted_at IS NULL").
		Count(&n).Error
	return n > 0, err
}
