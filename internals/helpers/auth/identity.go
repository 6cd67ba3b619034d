// internals/helpers/auth/identity.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "surfschool_backend/internals/helpers"
	"surfschool_backend/internals/tenancy"
)

/* ============================================
   Locals keys (los setea el middleware de auth)
   ============================================ */

const (
	LocUserID   = "user_id"
	LocRole     = "role"
	LocIdentity = "__identity" // Identity ya resuelta, cacheada por request
)

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id no encontrado en el token")
	}
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id inválido en el token")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id inválido en el token")
	}
	return id, nil
}

func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	v := c.Locals(LocRole)
	if v == nil {
		return "", fiber.NewError(fiber.StatusUnauthorized, "role no encontrado en el token")
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "role inválido en el token")
	}
	return s, nil
}

/* ============================================
   Identity del request (una sola resolución)
   ============================================ */

// CurrentIdentity resuelve la Identity del caller y la cachea en locals: la
// decisión de alcance se computa una vez por request y no se re-deriva después
// desde estado controlado por el cliente.
func CurrentIdentity(c *fiber.Ctx, db *gorm.DB) (tenancy.Identity, error) {
	if v := c.Locals(LocIdentity); v != nil {
		if ident, ok := v.(tenancy.Identity); ok {
			return ident, nil
		}
	}

	userID, err := GetUserIDFromToken(c)
	if err != nil {
		return tenancy.Identity{}, tenancy.ErrIdentityMissing
	}
	role, err := GetRoleFromToken(c)
	if err != nil {
		return tenancy.Identity{}, tenancy.ErrIdentityMissing
	}

	store := tenancy.NewGormStore(db)
	ident, err := tenancy.ResolveIdentity(c.UserContext(), store, role, userID)
	if err != nil {
		return tenancy.Identity{}, err
	}

	c.Locals(LocIdentity, ident)
	return ident, nil
}

// TenancyError traduce un error del motor a la respuesta JSON uniforme.
func TenancyError(c *fiber.Ctx, err error, op tenancy.Operation) error {
	return helper.JsonError(c, tenancy.HTTPStatus(err, op), tenancy.HTTPMessage(err, op))
}
