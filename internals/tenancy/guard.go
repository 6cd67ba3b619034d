// internals/tenancy/guard.go
package tenancy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

/* ============================================
   Guard de escrituras.

   Create: los campos que definen el tenant se calculan desde la identidad;
   un valor explícito del cliente que no coincide es error duro (400), no se
   corrige en silencio.

   Update/Delete: se re-resuelve la clave de tenant efectiva del target y se
   chequea ANTES de cualquier validación de campos, para que un update
   cross-tenant no filtre qué campos hubieran sido válidos.
   ============================================ */

// TenantFields: los campos que definen el tenant de una fila nueva.
type TenantFields struct {
	SchoolID *uuid.UUID // Class / Instructor / Student / School
	UserID   *uuid.UUID // Reservation / Payment (dueño)
}

type Guard struct {
	Resolver *Resolver
}

func NewGuard(resolver *Resolver) *Guard {
	return &Guard{Resolver: resolver}
}

// AuthorizeCreate valida y completa los campos de tenant de un create.
// Devuelve los campos finales que el handler DEBE persistir (los del cliente
// nunca se usan directo).
func (g *Guard) AuthorizeCreate(ident Identity, entity Entity, proposed TenantFields) (TenantFields, error) {
	kind := ScopeFor(ident, entity, OpCreate)

	switch kind {
	case ScopeDeny:
		return TenantFields{}, fmt.Errorf("%w: create %s como %s", ErrScopeDenied, entity, ident.Role)

	case ScopeAll:
		// ADMIN fija el tenant que quiera; el DTO valida presencia
		return proposed, nil

	case ScopeOwnSchool:
		if ident.SchoolID == nil {
			return TenantFields{}, fmt.Errorf("%w: identidad sin escuela", ErrScopeDenied)
		}
		if proposed.SchoolID != nil && *proposed.SchoolID != *ident.SchoolID {
			// error explícito, sin ecoar el school_id ajeno
			return TenantFields{}, fmt.Errorf("%w: school_id no coincide con tu escuela", ErrTenantFieldConflict)
		}
		final := proposed
		final.SchoolID = ident.SchoolID
		// el staff puede crear a nombre de un estudiante: UserID pasa tal cual
		if final.UserID == nil {
			uid := ident.UserID
			final.UserID = &uid
		}
		return final, nil

	case ScopeOwnRecord:
		if proposed.UserID != nil && *proposed.UserID != ident.UserID {
			return TenantFields{}, fmt.Errorf("%w: user_id no coincide con tu sesión", ErrTenantFieldConflict)
		}
		uid := ident.UserID
		final := proposed
		final.UserID = &uid
		final.SchoolID = nil // un estudiante jamás fija escuela
		return final, nil
	}

	return TenantFields{}, fmt.Errorf("%w: alcance desconocido", ErrScopeDenied)
}

// AuthorizeMutate autoriza un update/delete contra la fila target. El tenant
// efectivo se recalcula vía Resolver (mismo snapshot del request); la fila
// fuera de alcance nunca llega a la validación de campos.
func (g *Guard) AuthorizeMutate(ctx context.Context, ident Identity, entity Entity, op Operation, target Row) error {
	if !op.IsWrite() {
		return fmt.Errorf("%w: AuthorizeMutate con operación de lectura", ErrScopeDenied)
	}
	p := PredicateFor(ident, entity, op)

	switch p.Kind {
	case ScopeAll:
		return nil
	case ScopeDeny:
		return fmt.Errorf("%w: %s %s como %s", ErrScopeDenied, op, entity, ident.Role)
	}

	effSchool, err := g.Resolver.EffectiveSchoolID(ctx, entity, target)
	if err != nil {
		return err
	}
	effOwner, err := g.Resolver.EffectiveOwnerID(ctx, entity, target)
	if err != nil {
		return err
	}
	if !p.Allows(effSchool, effOwner) {
		return fmt.Errorf("%w: %s %s fuera de alcance", ErrScopeDenied, op, entity)
	}
	return nil
}

// AuthorizeSchoolReassign: mover una clase a otra escuela cambia en cascada
// el alcance efectivo de todas sus reservas y pagos, así que queda gateado a
// ADMIN aunque la clase sea propia.
func (g *Guard) AuthorizeSchoolReassign(ident Identity, currentSchoolID, newSchoolID uuid.UUID) error {
	if newSchoolID == uuid.Nil || newSchoolID == currentSchoolID {
		return nil
	}
	if ident.Role != RoleAdmin {
		return fmt.Errorf("%w: reasignar de escuela requiere ADMIN", ErrScopeDenied)
	}
	return nil
}
