// internals/tenancy/scope.go
package tenancy

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ============================================
   Filtro de queries.

   scope(identity, entity, op) → predicado que TODA query de lectura debe
   satisfacer, idéntico para list y detail. Un detail que no pasa el
   predicado es "no encontrado" para el caller, nunca un 403 con detalles.
   ============================================ */

// Predicate: forma en memoria del predicado, usada por el guard y por los
// detail-fetch cuando la fila ya está cargada.
type Predicate struct {
	Kind     ScopeKind
	SchoolID *uuid.UUID // requerido cuando Kind == ScopeOwnSchool
	UserID   uuid.UUID  // requerido cuando Kind == ScopeOwnRecord
}

// PredicateFor deriva el predicado desde la tabla de políticas.
func PredicateFor(ident Identity, entity Entity, op Operation) Predicate {
	kind := ScopeFor(ident, entity, op)
	p := Predicate{Kind: kind, UserID: ident.UserID}
	if kind == ScopeOwnSchool {
		if ident.SchoolID == nil {
			// identidad sin escuela: OWN_SCHOOL es insatisfacible
			p.Kind = ScopeDeny
		} else {
			p.SchoolID = ident.SchoolID
		}
	}
	return p
}

// Allows evalúa el predicado contra las claves EFECTIVAS de una fila
// (calculadas por el Resolver si la entidad es indirecta).
func (p Predicate) Allows(effSchoolID, effOwnerID *uuid.UUID) bool {
	switch p.Kind {
	case ScopeAll:
		return true
	case ScopeOwnSchool:
		return p.SchoolID != nil && effSchoolID != nil && *effSchoolID == *p.SchoolID
	case ScopeOwnRecord:
		return effOwnerID != nil && *effOwnerID == p.UserID
	default:
		return false
	}
}

/* ============================================
   Condiciones SQL por (entidad, alcance).
   Separadas de *gorm.DB para poder testearlas sin base.
   ============================================ */

const (
	joinReservationClass = "JOIN classes ON classes.class_id = reservations.reservation_class_id AND classes.class_deleted_at IS NULL"
	joinPaymentChain     = "JOIN reservations ON reservations.reservation_id = payments.payment_reservation_id AND reservations.reservation_deleted_at IS NULL"
)

type scopeSQL struct {
	joins []string
	where string
	args  []any
}

// unsatisfiable: lista vacía sin error (evita el side channel error-vs-vacío).
var unsatisfiable = scopeSQL{where: "1 = 0"}

func scopeSQLFor(ident Identity, entity Entity) scopeSQL {
	p := PredicateFor(ident, entity, OpRead)

	switch p.Kind {
	case ScopeAll:
		return scopeSQL{}

	case ScopeOwnSchool:
		schoolID := *p.SchoolID
		switch entity {
		case EntitySchool:
			return scopeSQL{where: "schools.school_id = ?", args: []any{schoolID}}
		case EntityInstructor:
			return scopeSQL{where: "instructors.instructor_school_id = ?", args: []any{schoolID}}
		case EntityStudent:
			return scopeSQL{where: "students.student_school_id = ?", args: []any{schoolID}}
		case EntityClass:
			return scopeSQL{where: "classes.class_school_id = ?", args: []any{schoolID}}
		case EntityReservation:
			// tenant indirecto: un salto hasta la clase, nunca una copia local
			return scopeSQL{
				joins: []string{joinReservationClass},
				where: "classes.class_school_id = ?",
				args:  []any{schoolID},
			}
		case EntityPayment:
			return scopeSQL{
				joins: []string{joinPaymentChain, joinReservationClass},
				where: "classes.class_school_id = ?",
				args:  []any{schoolID},
			}
		}

	case ScopeOwnRecord:
		switch entity {
		case EntityInstructor:
			return scopeSQL{where: "instructors.instructor_user_id = ?", args: []any{p.UserID}}
		case EntityStudent:
			return scopeSQL{where: "students.student_user_id = ?", args: []any{p.UserID}}
		case EntityReservation:
			return scopeSQL{where: "reservations.reservation_user_id = ?", args: []any{p.UserID}}
		case EntityPayment:
			return scopeSQL{
				joins: []string{joinPaymentChain},
				where: "reservations.reservation_user_id = ?",
				args:  []any{p.UserID},
			}
		}
	}

	return unsatisfiable
}

// ScopedQuery aplica el predicado de lectura a una query GORM sobre la tabla
// base de la entidad. Se usa igual para list y para detail fetch.
func ScopedQuery(db *gorm.DB, ident Identity, entity Entity) *gorm.DB {
	s := scopeSQLFor(ident, entity)
	q := db
	for _, j := range s.joins {
		q = q.Joins(j)
	}
	if s.where != "" {
		q = q.Where(s.where, s.args...)
	}
	return q
}

// Scoped: versión gorm-scope para encadenar con .Scopes(...).
func Scoped(ident Identity, entity Entity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return ScopedQuery(db, ident, entity)
	}
}
