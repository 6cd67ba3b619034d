// internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"surfschool_backend/internals/configs"
	"surfschool_backend/internals/constants"
	"surfschool_backend/internals/features/users/auth/dto"
	userModel "surfschool_backend/internals/features/users/model"
	helper "surfschool_backend/internals/helpers"
	helperAuth "surfschool_backend/internals/helpers/auth"
	"surfschool_backend/internals/tenancy"
)

const accessTokenTTL = 24 * time.Hour

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

var validate = validator.New()

// =============================
// POST /api/auth/register
// =============================
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	email := strings.ToLower(strings.TrimSpace(req.UserEmail))

	// Rol por defecto STUDENT. ADMIN jamás por self-register: el oneof del DTO
	// ya lo excluye, esto solo cubre el default.
	role := strings.ToUpper(strings.TrimSpace(req.UserRole))
	if role == "" {
		role = constants.RoleStudent
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[ERROR] bcrypt: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo registrar el usuario")
	}

	user := userModel.UserModel{
		UserName:     strings.TrimSpace(req.UserName),
		UserEmail:    email,
		UserPassword: string(hash),
		UserRole:     role,
		UserAge:      req.UserAge,
		UserPhone:    req.UserPhone,
	}
	if req.UserCanSwim != nil {
		user.UserCanSwim = *req.UserCanSwim
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&user).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") ||
			strings.Contains(strings.ToLower(err.Error()), "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "El email ya está registrado")
		}
		log.Printf("[ERROR] registrar usuario: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo registrar el usuario")
	}

	log.Printf("✅ usuario registrado: %s (%s)", user.UserEmail, user.UserRole)
	return helper.JsonCreated(c, "Usuario registrado", dto.ToAuthUserResponse(user))
}

// =============================
// POST /api/auth/login
// =============================
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	email := strings.ToLower(strings.TrimSpace(req.UserEmail))

	var user userModel.UserModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("user_email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// mismo mensaje que password malo: no confirmar qué emails existen
			return helper.JsonError(c, fiber.StatusUnauthorized, "Credenciales inválidas")
		}
		log.Printf("[ERROR] login lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Cuenta desactivada")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(req.UserPassword)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Credenciales inválidas")
	}

	token, err := signAccessToken(user)
	if err != nil {
		log.Printf("[ERROR] firmar token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo iniciar sesión")
	}

	return helper.JsonOK(c, "Sesión iniciada", dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(accessTokenTTL.Seconds()),
		User:        dto.ToAuthUserResponse(user),
	})
}

// =============================
// GET /api/auth/me
// =============================
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	ident, err := helperAuth.CurrentIdentity(c, ctrl.DB)
	if err != nil {
		return helperAuth.TenancyError(c, err, tenancy.OpRead)
	}

	var user userModel.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("user_id = ?", ident.UserID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "No autenticado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	resp := fiber.Map{
		"user": dto.ToAuthUserResponse(user),
	}
	// contexto de tenant resuelto server-side (útil para el frontend)
	if ident.SchoolID != nil {
		resp["school_id"] = *ident.SchoolID
	}
	if ident.InstructorID != nil {
		resp["instructor_id"] = *ident.InstructorID
	}
	if ident.StudentID != nil {
		resp["student_id"] = *ident.StudentID
	}
	return helper.JsonOK(c, "ok", resp)
}

// signAccessToken emite el JWT HS256. El claim `role` es la ÚNICA fuente de
// rol del request; los handlers nunca lo leen del body.
func signAccessToken(user userModel.UserModel) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"typ":       "access",
		"sub":       user.UserID.String(),
		"id":        user.UserID.String(),
		"role":      user.UserRole,
		"user_name": user.UserName,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
