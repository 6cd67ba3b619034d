// internals/tenancy/errors.go
package tenancy

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

/* ============================================
   Errores del motor de scoping.
   Siempre fail-closed: ante cualquier duda se niega el acceso.
   ============================================ */

var (
	// ErrIdentityMissing: credencial sin rol válido o sin user_id. HTTP 401.
	ErrIdentityMissing = errors.New("identity missing or unresolved")

	// ErrScopeDenied: la identidad quedó resuelta pero el predicado de alcance
	// no se cumple para esta entidad/operación. Lecturas → 404 (no confirmar
	// existencia a un extraño), escrituras → 403.
	ErrScopeDenied = errors.New("scope denied")

	// ErrTenantFieldConflict: el cliente mandó un campo de tenant (school_id,
	// user_id) distinto al que el servidor inyectaría. HTTP 400, sin revelar
	// identificadores del otro tenant.
	ErrTenantFieldConflict = errors.New("tenant field conflict")

	// ErrRelationUnresolvable: falta la fila padre al propagar el tenant
	// (reserva sin clase, pago sin reserva). Falla de integridad, HTTP 500,
	// nunca se trata como "dentro de alcance".
	ErrRelationUnresolvable = errors.New("relation unresolvable")
)

// HTTPStatus mapea un error del motor al status HTTP uniforme de la política
// de errores. Las lecturas denegadas se ven idénticas a "no encontrado".
func HTTPStatus(err error, op Operation) int {
	switch {
	case errors.Is(err, ErrIdentityMissing):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrScopeDenied):
		if op == OpRead {
			return fiber.StatusNotFound
		}
		return fiber.StatusForbidden
	case errors.Is(err, ErrTenantFieldConflict):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrRelationUnresolvable):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// HTTPMessage: mensaje genérico por error, sin datos del otro tenant.
func HTTPMessage(err error, op Operation) string {
	switch {
	case errors.Is(err, ErrIdentityMissing):
		return "No autenticado"
	case errors.Is(err, ErrScopeDenied):
		if op == OpRead {
			return "Recurso no encontrado"
		}
		return "Acceso denegado"
	case errors.Is(err, ErrTenantFieldConflict):
		return "El campo de escuela/usuario no coincide con tu sesión"
	case errors.Is(err, ErrRelationUnresolvable):
		return "Error interno"
	default:
		return "Error interno"
	}
}
