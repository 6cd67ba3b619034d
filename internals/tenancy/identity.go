// internals/tenancy/identity.go
package tenancy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleSchoolAdmin Role = "SCHOOL_ADMIN"
	RoleInstructor  Role = "INSTRUCTOR"
	RoleStudent     Role = "STUDENT"
)

// ParseRole: el rol viene tal cual del claim verificado, NUNCA del body.
// Rol vacío o desconocido corta el request sin aplicar ningún alcance parcial.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleSchoolAdmin:
		return RoleSchoolAdmin, nil
	case RoleInstructor:
		return RoleInstructor, nil
	case RoleStudent:
		return RoleStudent, nil
	default:
		return "", fmt.Errorf("%w: rol %q no reconocido", ErrIdentityMissing, raw)
	}
}

// Identity es el principal ya resuelto para UN request. Se pasa siempre como
// parámetro explícito (nada de estado global) para que filtro y guard sean
// testeables con un valor directo.
type Identity struct {
	UserID uuid.UUID
	Role   Role

	// SchoolID se resuelve contra la fila propia (School.owner / Instructor),
	// jamás desde un query param. Para STUDENT puede venir de su perfil pero
	// NO amplía su alcance: un estudiante siempre es OWN_RECORD.
	SchoolID     *uuid.UUID
	InstructorID *uuid.UUID
	StudentID    *uuid.UUID
}

// ErrProfileNotFound lo devuelven los stores cuando no existe la fila de
// perfil buscada. No es un error de identidad: un SCHOOL_ADMIN sin escuela
// simplemente queda con SchoolID nil y sus predicados OWN_SCHOOL no se
// satisfacen nunca (fail-closed vía alcance vacío).
var ErrProfileNotFound = errors.New("profile not found")

// ProfileStore: lo que el resolver necesita del storage para completar la
// identidad. La implementación GORM vive en store.go.
type ProfileStore interface {
	SchoolIDByOwner(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	InstructorByUser(ctx context.Context, userID uuid.UUID) (instructorID, schoolID uuid.UUID, err error)
	StudentByUser(ctx context.Context, userID uuid.UUID) (studentID uuid.UUID, schoolID *uuid.UUID, err error)
}

// ResolveIdentity convierte el par verificado {role, userId} en una Identity.
// Función pura respecto al request: una sola vez por request, el resultado se
// cachea aguas arriba y no se vuelve a derivar de estado controlado por el
// cliente.
func ResolveIdentity(ctx context.Context, store ProfileStore, rawRole string, userID uuid.UUID) (Identity, error) {
	if userID == uuid.Nil {
		return Identity{}, fmt.Errorf("%w: user_id vacío", ErrIdentityMissing)
	}
	role, err := ParseRole(rawRole)
	if err != nil {
		return Identity{}, err
	}

	ident := Identity{UserID: userID, Role: role}

	switch role {
	case RoleAdmin:
		// alcance global, nada que resolver

	case RoleSchoolAdmin:
		schoolID, err := store.SchoolIDByOwner(ctx, userID)
		switch {
		case err == nil:
			ident.SchoolID = &schoolID
		case errors.Is(err, ErrProfileNotFound):
			// admin de escuela sin escuela todavía: alcance vacío
		default:
			return Identity{}, err
		}

	case RoleInstructor:
		instructorID, schoolID, err := store.InstructorByUser(ctx, userID)
		switch {
		case err == nil:
			ident.InstructorID = &instructorID
			ident.SchoolID = &schoolID
		case errors.Is(err, ErrProfileNotFound):
			// sin perfil de instructor: alcance vacío
		default:
			return Identity{}, err
		}

	case RoleStudent:
		studentID, schoolID, err := store.StudentByUser(ctx, userID)
		switch {
		case err == nil:
			ident.StudentID = &studentID
			ident.SchoolID = schoolID // informativo, no amplía alcance
		case errors.Is(err, ErrProfileNotFound):
			// estudiante sin perfil extendido: sigue siendo OWN_RECORD por user_id
		default:
			return Identity{}, err
		}
	}

	return ident, nil
}
