// internals/tenancy/relation.go
package tenancy

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

/* ============================================
   Propagación transitiva del tenant.

   Reservation y Payment no guardan school_id propio: su escuela efectiva
   se recalcula SIEMPRE siguiendo la FK (Reservation→Class,
   Payment→Reservation→Class). Nunca se confía en una copia desnormalizada
   en la fila hija, porque queda obsoleta si reasignan la clase.
   ============================================ */

// Row lleva las claves que una fila tiene almacenadas de forma directa.
// El resolver decide cuáles usar según la entidad.
type Row struct {
	SchoolID      *uuid.UUID // entidades con tenant directo
	OwnerUserID   *uuid.UUID // reservation_user_id, instructor_user_id, ...
	ClassID       *uuid.UUID // FK de Reservation
	ReservationID *uuid.UUID // FK de Payment
}

// RelationStore: el único acceso a storage que necesita la propagación.
// Debe ejecutar dentro del mismo handle/tx del request, de modo que filtro y
// guard observen un solo snapshot aunque reasignen la clase en paralelo.
type RelationStore interface {
	ClassSchoolID(ctx context.Context, classID uuid.UUID) (uuid.UUID, error)
	ReservationRefs(ctx context.Context, reservationID uuid.UUID) (classID, userID uuid.UUID, err error)
}

type Resolver struct {
	Store RelationStore
}

func NewResolver(store RelationStore) *Resolver {
	return &Resolver{Store: store}
}

// EffectiveSchoolID: school_id que gobierna la visibilidad de la fila.
// Un salto de FK por nivel; si el destino también es indirecto se recurre una
// vez más (Payment→Reservation→Class).
func (r *Resolver) EffectiveSchoolID(ctx context.Context, entity Entity, row Row) (*uuid.UUID, error) {
	switch entity {
	case EntitySchool:
		return row.SchoolID, nil // la escuela es su propio tenant
	case EntityInstructor, EntityStudent, EntityClass:
		return row.SchoolID, nil
	case EntityReservation:
		if row.ClassID == nil || *row.ClassID == uuid.Nil {
			return nil, fmt.Errorf("%w: reserva sin clase", ErrRelationUnresolvable)
		}
		schoolID, err := r.Store.ClassSchoolID(ctx, *row.ClassID)
		if err != nil {
			return nil, wrapRelationErr("clase", *row.ClassID, err)
		}
		return &schoolID, nil
	case EntityPayment:
		if row.ReservationID == nil || *row.ReservationID == uuid.Nil {
			return nil, fmt.Errorf("%w: pago sin reserva", ErrRelationUnresolvable)
		}
		classID, _, err := r.Store.ReservationRefs(ctx, *row.ReservationID)
		if err != nil {
			return nil, wrapRelationErr("reserva", *row.ReservationID, err)
		}
		return r.EffectiveSchoolID(ctx, EntityReservation, Row{ClassID: &classID})
	default:
		return nil, fmt.Errorf("%w: entidad %q", ErrRelationUnresolvable, entity)
	}
}

// EffectiveOwnerID: user_id dueño de la fila, para predicados OWN_RECORD.
func (r *Resolver) EffectiveOwnerID(ctx context.Context, entity Entity, row Row) (*uuid.UUID, error) {
	switch entity {
	case EntityInstructor, EntityStudent, EntityReservation:
		return row.OwnerUserID, nil
	case EntityPayment:
		if row.ReservationID == nil || *row.ReservationID == uuid.Nil {
			return nil, fmt.Errorf("%w: pago sin reserva", ErrRelationUnresolvable)
		}
		_, userID, err := r.Store.ReservationRefs(ctx, *row.ReservationID)
		if err != nil {
			return nil, wrapRelationErr("reserva", *row.ReservationID, err)
		}
		return &userID, nil
	case EntitySchool, EntityClass:
		return nil, nil // no tienen dueño a nivel de usuario
	default:
		return nil, fmt.Errorf("%w: entidad %q", ErrRelationUnresolvable, entity)
	}
}

func wrapRelationErr(parent string, id uuid.UUID, err error) error {
	if errors.Is(err, ErrRelationUnresolvable) {
		return err
	}
	return fmt.Errorf("%w: %s %s: %v", ErrRelationUnresolvable, parent, id, err)
}
