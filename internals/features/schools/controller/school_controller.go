// internals/features/schools/controller/school_controller.go
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

	"surfschool_backend/internals/features/schools/dto"
	schoolModel "surfschool_backend/internals/features/schools/model"
	helper "surfschool_backend/internals/helpers"
	helperAuth "surfschool_backend/internals/helpers/auth"
	"surfschool_backend/internals/tenancy"
)

type SchoolController struct {
	DB *gorm.DB
}

func NewSchoolController(db *gorm.DB) *SchoolController {
	return &SchoolController{DB: db}
}

var validate = validator.New()

var schoolSortColumns = map[string]string{
	"name":       "schools.school_name",
	"location":   "schools.school_location",
	"created_at": "schools.school_created_at",
}

// =============================
// GET /api/schools
// =============================
func (ctrl *SchoolController) List(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpRead)
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	order, _ := p.SafeOrderClause(schoolSortColumns, "created_at")

	base := tenancy.ScopedQuery(
		ctrl.DB.WithContext(c.UserContext()).Model(&schoolModel.SchoolModel{}),
		ident, tenancy.EntitySchool,
	)

	if loc := strings.TrimSpace(c.Query("location")); loc != "" {
		base = base.Where("schools.school_location ILIKE ?", "%"+loc+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		log.Printf("[ERROR] contar escuelas: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	var rows []schoolModel.SchoolModel
	if err := base.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		log.Printf("[ERROR] listar escuelas: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	resp := lo.Map(rows, func(m schoolModel.SchoolModel, _ int) dto.SchoolResponse {
		return dto.ToSchoolResponse(m)
	})
	return helper.JsonList(c, "Escuelas", resp, helper.BuildMeta(total, p))
}

// =============================
// GET /api/schools/:id
// =============================
func (ctrl *SchoolController) GetByID(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpRead)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	// mismo predicado que el listado: fuera de alcance == inexistente
	var school schoolModel.SchoolModel
	err = tenancy.ScopedQuery(
		ctrl.DB.WithContext(c.UserContext()).Model(&schoolModel.SchoolModel{}),
		ident, tenancy.EntitySchool,
	).Where("schools.school_id = ?", id).First(&school).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	return helper.JsonOK(c, "ok", dto.ToSchoolResponse(school))
}

// =============================
// POST /api/schools
// =============================
func (ctrl *SchoolController) Create(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpCreate)
	}

	var req dto.CreateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	// Caso especial de bootstrap: crear la escuela es lo que le DA escuela a un
	// SCHOOL_ADMIN, así que no pasa por AuthorizeCreate (que exige escuela ya
	// resuelta). El dueño sale de la sesión salvo para ADMIN.
	var ownerID uuid.UUID
	switch ident.Role {
	case tenancy.RoleAdmin:
		if req.SchoolOwnerUserID == nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "school_owner_user_id es requerido")
		}
		ownerID = *req.SchoolOwnerUserID
	case tenancy.RoleSchoolAdmin:
		if req.SchoolOwnerUserID != nil && *req.SchoolOwnerUserID != ident.UserID {
			return helperAuth.TenancyError(c, tenancy.ErrTenantFieldConflict, tenancy.OpCreate)
		}
		if ident.SchoolID != nil {
			return helper.JsonError(c, fiber.StatusConflict, "Ya tienes una escuela registrada")
		}
		ownerID = ident.UserID
	default:
		return helperAuth.TenancyError(c, tenancy.ErrScopeDenied, tenancy.OpCreate)
	}

	school := schoolModel.SchoolModel{
		SchoolOwnerUserID: ownerID,
		SchoolName:        strings.TrimSpace(req.SchoolName),
		SchoolLocation:    strings.TrimSpace(req.SchoolLocation),
		SchoolDescription: req.SchoolDescription,
		SchoolPhone:       req.SchoolPhone,
		SchoolEmail:       req.SchoolEmail,
		SchoolWebsite:     req.SchoolWebsite,
		SchoolInstagram:   req.SchoolInstagram,
		SchoolAddress:     req.SchoolAddress,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&school).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return helper.JsonError(c, fiber.StatusConflict, "Ese usuario ya tiene una escuela")
		}
		log.Printf("[ERROR] crear escuela: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo crear la escuela")
	}

	log.Printf("✅ escuela creada: %s (%s)", school.SchoolName, school.SchoolID)
	return helper.JsonCreated(c, "Escuela creada", dto.ToSchoolResponse(school))
}

// =============================
// PUT /api/schools/:id
// =============================
func (ctrl *SchoolController) Update(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpUpdate)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := ctrl.DB.WithContext(c.UserContext())

	var school schoolModel.SchoolModel
	if err := db.Where("school_id = ?", id).First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	// alcance ANTES de validar campos
	guard := tenancy.NewGuard(tenancy.NewResolver(tenancy.NewGormStore(db)))
	if err := guard.AuthorizeMutate(c.UserContext(), ident, tenancy.EntitySchool, tenancy.OpUpdate,
		tenancy.Row{SchoolID: &school.SchoolID}); err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpUpdate)
	}

	var req dto.UpdateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	updates := map[string]any{}
	if req.SchoolName != nil {
		updates["school_name"] = strings.TrimSpace(*req.SchoolName)
	}
	if req.SchoolLocation != nil {
		updates["school_location"] = strings.TrimSpace(*req.SchoolLocation)
	}
	if req.SchoolDescription != nil {
		updates["school_description"] = *req.SchoolDescription
	}
	if req.SchoolPhone != nil {
		updates["school_phone"] = *req.SchoolPhone
	}
	if req.SchoolEmail != nil {
		updates["school_email"] = *req.SchoolEmail
	}
	if req.SchoolWebsite != nil {
		updates["school_website"] = *req.SchoolWebsite
	}
	if req.SchoolInstagram != nil {
		updates["school_instagram"] = *req.SchoolInstagram
	}
	if req.SchoolAddress != nil {
		updates["school_address"] = *req.SchoolAddress
	}

	if len(updates) > 0 {
		if err := db.Model(&school).Updates(updates).Error; err != nil {
			log.Printf("[ERROR] actualizar escuela %s: %v", id, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar la escuela")
		}
	}
	return helper.JsonUpdated(c, "Escuela actualizada", dto.ToSchoolResponse(school))
}

// =============================
// DELETE /api/schools/:id
// =============================
func (ctrl *SchoolController) Delete(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpDelete)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := ctrl.DB.WithContext(c.UserContext())

	var school schoolModel.SchoolModel
	if err := db.Where("school_id = ?", id).First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recurso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	guard := tenancy.NewGuard(tenancy.NewResolver(tenancy.NewGormStore(db)))
	if err := guard.AuthorizeMutate(c.UserContext(), ident, tenancy.EntitySchool, tenancy.OpDelete,
		tenancy.Row{SchoolID: &school.SchoolID}); err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpDelete)
	}

	if err := db.Delete(&school).Error; err != nil {
		log.Printf("[ERROR] eliminar escuela %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo eliminar la escuela")
	}
	return helper.JsonDeleted(c, "Escuela eliminada", fiber.Map{"school_id": id})
}
