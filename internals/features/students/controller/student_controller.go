// internals/features/students/controller/student_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"surfschool_backend/internals/features/students/dto"
	studentModel "surfschool_backend/internals/features/students/model"
	helper "surfschool_backend/internals/helpers"
	helperAuth "surfschool_backend/internals/helpers/auth"
	"surfschool_backend/internals/tenancy"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

var validate = validator.New()

var studentSortColumns = map[string]string{
	"created_at": "students.student_created_at",
	"level":      "students.student_level",
}

// =============================
// GET /api/students
// =============================
func (ctrl *StudentController) List(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpRead)
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	order, _ := p.SafeOrderClause(studentSortColumns, "created_at")

	// un STUDENT ve exactamente su propio perfil; un INSTRUCTOR nada
	base := tenancy.ScopedQuery(
		ctrl.DB.WithContext(c.UserContext()).Model(&studentModel.StudentModel{}),
		ident, tenancy.EntityStudent,
	)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		log.Printf("[ERROR] contar estudiantes: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	var rows []studentModel.StudentModel
	if err := base.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		log.Printf("[ERROR] listar estudiantes: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	resp := lo.Map(rows, func(m studentModel.StudentModel, _ int) dto.StudentResponse {
		return dto.ToStudentResponse(m)
	})
	return helper.JsonList(c, "Estudiantes", resp, helper.BuildMeta(total, p))
}

// =============================
// GET /api/students/:id
// =============================
func (ctrl *StudentController) GetByID(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpRead)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var row studentModel.StudentModel
	err = tenancy.ScopedQuery(
		ctrl.DB.WithContext(c.UserContext()).Model(&studentModel.StudentModel{}),
		ident, tenancy.EntityStudent,
	).Where("students.student_id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	return helper.JsonOK(c, "ok", dto.ToStudentResponse(row))
}

// =============================
// POST /api/students
// =============================
func (ctrl *StudentController) Create(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpCreate)
	}

	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	db := ctrl.DB.WithContext(c.UserContext())
	guard := tenancy.NewGuard(tenancy.NewResolver(tenancy.NewGormStore(db)))

	fields, err := guard.AuthorizeCreate(ident, tenancy.EntityStudent,
		tenancy.TenantFields{SchoolID: req.StudentSchoolID, UserID: req.StudentUserID})
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpCreate)
	}
	if fields.UserID == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_user_id es requerido")
	}

	row := studentModel.StudentModel{
		StudentUserID:   *fields.UserID,
		StudentSchoolID: fields.SchoolID,
		StudentLevel:    req.StudentLevel,
		StudentNotes:    req.StudentNotes,
	}
	if err := db.Create(&row).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return helper.JsonError(c, fiber.StatusConflict, "Ese usuario ya tiene perfil de estudiante")
		}
		log.Printf("[ERROR] crear estudiante: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo crear el estudiante")
	}

	return helper.JsonCreated(c, "Estudiante creado", dto.ToStudentResponse(row))
}

// =============================
// PUT /api/students/:id
// =============================
func (ctrl *StudentController) Update(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpUpdate)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := ctrl.DB.WithContext(c.UserContext())

	var row studentModel.StudentModel
	if err := db.Where("student_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	guard := tenancy.NewGuard(tenancy.NewResolver(tenancy.NewGormStore(db)))
	if err := guard.AuthorizeMutate(c.UserContext(), ident, tenancy.EntityStudent, tenancy.OpUpdate,
		tenancy.Row{SchoolID: row.StudentSchoolID, OwnerUserID: &row.StudentUserID}); err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpUpdate)
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	updates := map[string]any{}
	if req.StudentSchoolID != nil {
		current := uuid.Nil
		if row.StudentSchoolID != nil {
			current = *row.StudentSchoolID
		}
		if err := guard.AuthorizeSchoolReassign(ident, current, *req.StudentSchoolID); err != nil {
			return helperAuth.TenancyError(c, err, tenancy.OpUpdate)
		}
		updates["student_school_id"] = *req.StudentSchoolID
	}
	if req.StudentLevel != nil {
		updates["student_level"] = *req.StudentLevel
	}
	if req.StudentNotes != nil {
		updates["student_notes"] = *req.StudentNotes
	}

	if len(updates) > 0 {
		if err := db.Model(&row).Updates(updates).Error; err != nil {
			log.Printf("[ERROR] actualizar estudiante %s: %v", id, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar el estudiante")
		}
	}
	return helper.JsonUpdated(c, "Estudiante actualizado", dto.ToStudentResponse(row))
}

// =============================
// DELETE /api/students/:id
// =============================
func (ctrl *StudentController) Delete(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpDelete)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := ctrl.DB.WithContext(c.UserContext())

	var row studentModel.StudentModel
	if err := db.Where("student_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	guard := tenancy.NewGuard(tenancy.NewResolver(tenancy.NewGormStore(db)))
	if err := guard.AuthorizeMutate(c.UserContext(), ident, tenancy.EntityStudent, tenancy.OpDelete,
		tenancy.Row{SchoolID: row.StudentSchoolID, OwnerUserID: &row.StudentUserID}); err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpDelete)
	}

	if err := db.Delete(&row).Error; err != nil {
		log.Printf("[ERROR] eliminar estudiante %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo eliminar el estudiante")
	}
	return helper.JsonDeleted(c, "Estudiante eliminado", fiber.Map{"student_id": id})
}
