// internals/features/instructors/controller/instructor_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"surfschool_backend/internals/features/instructors/dto"
	instructorModel "surfschool_backend/internals/features/instructors/model"
	helper "surfschool_backend/internals/helpers"
	helperAuth "surfschool_backend/internals/helpers/auth"
	"surfschool_backend/internals/tenancy"
)

type InstructorController struct {
	DB *gorm.DB
}

func NewInstructorController(db *gorm.DB) *InstructorController {
	return &InstructorController{DB: db}
}

var validate = validator.New()

var instructorSortColumns = map[string]string{
	"created_at": "instructors.instructor_created_at",
	"rating":     "instructors.instructor_rating",
	"experience": "instructors.instructor_years_experience",
}

// =============================
// GET /api/instructors
// =============================
func (ctrl *InstructorController) List(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpRead)
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	order, _ := p.SafeOrderClause(instructorSortColumns, "created_at")

	// para un STUDENT el predicado es insatisfacible: lista vacía, sin error
	base := tenancy.ScopedQuery(
		ctrl.DB.WithContext(c.UserContext()).Model(&instructorModel.InstructorModel{}),
		ident, tenancy.EntityInstructor,
	)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		log.Printf("[ERROR] contar instructores: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	var rows []instructorModel.InstructorModel
	if err := base.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		log.Printf("[ERROR] listar instructores: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	resp := lo.Map(rows, func(m instructorModel.InstructorModel, _ int) dto.InstructorResponse {
		return dto.ToInstructorResponse(m)
	})
	return helper.JsonList(c, "Instructores", resp, helper.BuildMeta(total, p))
}

// =============================
// GET /api/instructors/:id
// =============================
func (ctrl *InstructorController) GetByID(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpRead)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var row instructorModel.InstructorModel
	err = tenancy.ScopedQuery(
		ctrl.DB.WithContext(c.UserContext()).Model(&instructorModel.InstructorModel{}),
		ident, tenancy.EntityInstructor,
	).Where("instructors.instructor_id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	return helper.JsonOK(c, "ok", dto.ToInstructorResponse(row))
}

// =============================
// POST /api/instructors
// =============================
func (ctrl *InstructorController) Create(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpCreate)
	}

	var req dto.CreateInstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	db := ctrl.DB.WithContext(c.UserContext())
	guard := tenancy.NewGuard(tenancy.NewResolver(tenancy.NewGormStore(db)))

	fields, err := guard.AuthorizeCreate(ident, tenancy.EntityInstructor,
		tenancy.TenantFields{SchoolID: req.InstructorSchoolID})
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpCreate)
	}
	if fields.SchoolID == nil {
		// ADMIN sin escuela explícita
		return helper.JsonError(c, fiber.StatusBadRequest, "instructor_school_id es requerido")
	}

	row := instructorModel.InstructorModel{
		InstructorUserID:         req.InstructorUserID,
		InstructorSchoolID:       *fields.SchoolID,
		InstructorBio:            req.InstructorBio,
		InstructorSpecialties:    pq.StringArray(req.InstructorSpecialties),
		InstructorCertifications: pq.StringArray(req.InstructorCertifications),
	}
	if req.InstructorYearsExperience != nil {
		row.InstructorYearsExperience = *req.InstructorYearsExperience
	}

	if err := db.Create(&row).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return helper.JsonError(c, fiber.StatusConflict, "Ese usuario ya es instructor")
		}
		log.Printf("[ERROR] crear instructor: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo crear el instructor")
	}

	return helper.JsonCreated(c, "Instructor creado", dto.ToInstructorResponse(row))
}

// =============================
// PUT /api/instructors/:id
// =============================
func (ctrl *InstructorController) Update(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpUpdate)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := ctrl.DB.WithContext(c.UserContext())

	var row instructorModel.InstructorModel
	if err := db.Where("instructor_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	guard := tenancy.NewGuard(tenancy.NewResolver(tenancy.NewGormStore(db)))
	if err := guard.AuthorizeMutate(c.UserContext(), ident, tenancy.EntityInstructor, tenancy.OpUpdate,
		tenancy.Row{SchoolID: &row.InstructorSchoolID, OwnerUserID: &row.InstructorUserID}); err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpUpdate)
	}

	var req dto.UpdateInstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	updates := map[string]any{}
	if req.InstructorSchoolID != nil {
		if err := guard.AuthorizeSchoolReassign(ident, row.InstructorSchoolID, *req.InstructorSchoolID); err != nil {
			return helperAuth.TenancyError(c, err, tenancy.OpUpdate)
		}
		updates["instructor_school_id"] = *req.InstructorSchoolID
	}
	if req.InstructorBio != nil {
		updates["instructor_bio"] = *req.InstructorBio
	}
	if req.InstructorYearsExperience != nil {
		updates["instructor_years_experience"] = *req.InstructorYearsExperience
	}
	if req.InstructorSpecialties != nil {
		updates["instructor_specialties"] = pq.StringArray(req.InstructorSpecialties)
	}
	if req.InstructorCertifications != nil {
		updates["instructor_certifications"] = pq.StringArray(req.InstructorCertifications)
	}

	if len(updates) > 0 {
		if err := db.Model(&row).Updates(updates).Error; err != nil {
			log.Printf("[ERROR] actualizar instructor %s: %v", id, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar el instructor")
		}
	}
	return helper.JsonUpdated(c, "Instructor actualizado", dto.ToInstructorResponse(row))
}

// =============================
// DELETE /api/instructors/:id
// =============================
func (ctrl *InstructorController) Delete(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpDelete)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := ctrl.DB.WithContext(c.UserContext())

	var row instructorModel.InstructorModel
	if err := db.Where("instructor_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	guard := tenancy.NewGuard(tenancy.NewResolver(tenancy.NewGormStore(db)))
	if err := guard.AuthorizeMutate(c.UserContext(), ident, tenancy.EntityInstructor, tenancy.OpDelete,
		tenancy.Row{SchoolID: &row.InstructorSchoolID, OwnerUserID: &row.InstructorUserID}); err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpDelete)
	}

	if err := db.Delete(&row).Error; err != nil {
		log.Printf("[ERROR] eliminar instructor %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo eliminar el instructor")
	}
	return helper.JsonDeleted(c, "Instructor eliminado", fiber.Map{"instructor_id": id})
}
