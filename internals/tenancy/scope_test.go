package tenancy

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicateFor(t *testing.T) {
	schoolID := uuid.New()
	userID := uuid.New()

	t.Run("own_school lleva la escuela de la sesión", func(t *testing.T) {
		ident := Identity{UserID: userID, Role: RoleSchoolAdmin, SchoolID: &schoolID}
		p := PredicateFor(ident, EntityClass, OpRead)
		assert.Equal(t, ScopeOwnSchool, p.Kind)
		assert.Equal(t, schoolID, *p.SchoolID)
	})

	t.Run("own_school sin escuela degrada a deny", func(t *testing.T) {
		ident := Identity{UserID: userID, Role: RoleSchoolAdmin}
		p := PredicateFor(ident, EntityClass, OpRead)
		assert.Equal(t, ScopeDeny, p.Kind)
	})
}

func TestPredicate_Allows(t *testing.T) {
	schoolID := uuid.New()
	otherSchool := uuid.New()
	userID := uuid.New()
	otherUser := uuid.New()

	tests := []struct {
		name      string
		p         Predicate
		effSchool *uuid.UUID
		effOwner  *uuid.UUID
		want      bool
	}{
		{"all permite siempre", Predicate{Kind: ScopeAll}, nil, nil, true},
		{"own_school misma escuela", Predicate{Kind: ScopeOwnSchool, SchoolID: &schoolID}, &schoolID, nil, true},
		{"own_school otra escuela", Predicate{Kind: ScopeOwnSchool, SchoolID: &schoolID}, &otherSchool, nil, false},
		{"own_school sin clave efectiva", Predicate{Kind: ScopeOwnSchool, SchoolID: &schoolID}, nil, nil, false},
		{"own_record mismo dueño", Predicate{Kind: ScopeOwnRecord, UserID: userID}, nil, &userID, true},
		{"own_record otro dueño", Predicate{Kind: ScopeOwnRecord, UserID: userID}, nil, &otherUser, false},
		{"deny nunca", Predicate{Kind: ScopeDeny}, &schoolID, &userID, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Allows(tt.effSchool, tt.effOwner))
		})
	}
}

func TestScopeSQLFor(t *testing.T) {
	schoolID := uuid.New()
	userID := uuid.New()

	admin := Identity{UserID: uuid.New(), Role: RoleAdmin}
	schoolAdmin := Identity{UserID: uuid.New(), Role: RoleSchoolAdmin, SchoolID: &schoolID}
	student := Identity{UserID: userID, Role: RoleStudent}
	instructor := Identity{UserID: uuid.New(), Role: RoleInstructor, SchoolID: &schoolID}

	t.Run("all no filtra", func(t *testing.T) {
		s := scopeSQLFor(admin, EntityPayment)
		assert.Empty(t, s.joins)
		assert.Empty(t, s.where)
	})

	t.Run("own_school directo filtra por columna", func(t *testing.T) {
		s := scopeSQLFor(schoolAdmin, EntityClass)
		assert.Empty(t, s.joins)
		assert.Equal(t, "classes.class_school_id = ?", s.where)
		require.Len(t, s.args, 1)
		assert.Equal(t, schoolID, s.args[0])
	})

	t.Run("reserva de staff viaja por el JOIN a la clase", func(t *testing.T) {
		s := scopeSQLFor(schoolAdmin, EntityReservation)
		require.Len(t, s.joins, 1)
		assert.Contains(t, s.joins[0], "classes.class_id = reservations.reservation_class_id")
		assert.Equal(t, "classes.class_school_id = ?", s.where)
	})

	t.Run("pago de staff encadena dos JOINs", func(t *testing.T) {
		s := scopeSQLFor(schoolAdmin, EntityPayment)
		require.Len(t, s.joins, 2)
		assert.Contains(t, s.joins[0], "reservations.reservation_id = payments.payment_reservation_id")
		assert.Contains(t, s.joins[1], "classes.class_id = reservations.reservation_class_id")
		assert.Equal(t, "classes.class_school_id = ?", s.where)
	})

	t.Run("student filtra reservas por dueño sin JOIN", func(t *testing.T) {
		s := scopeSQLFor(student, EntityReservation)
		assert.Empty(t, s.joins)
		assert.Equal(t, "reservations.reservation_user_id = ?", s.where)
		require.Len(t, s.args, 1)
		assert.Equal(t, userID, s.args[0])
	})

	t.Run("student ve el catálogo de clases sin filtro", func(t *testing.T) {
		s := scopeSQLFor(student, EntityClass)
		assert.Empty(t, s.where)
	})

	t.Run("deny es lista vacía, no error", func(t *testing.T) {
		s := scopeSQLFor(instructor, EntityPayment)
		assert.Equal(t, "1 = 0", s.where)

		s = scopeSQLFor(student, EntityInstructor)
		assert.Equal(t, "1 = 0", s.where)
	})

	t.Run("school_admin sin escuela lista vacío", func(t *testing.T) {
		orphan := Identity{UserID: uuid.New(), Role: RoleSchoolAdmin}
		s := scopeSQLFor(orphan, EntityClass)
		assert.Equal(t, "1 = 0", s.where)
	})
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		op   Operation
		want int
	}{
		{"identidad faltante", ErrIdentityMissing, OpRead, fiber.StatusUnauthorized},
		{"lectura denegada parece not found", ErrScopeDenied, OpRead, fiber.StatusNotFound},
		{"escritura denegada es forbidden", ErrScopeDenied, OpUpdate, fiber.StatusForbidden},
		{"delete denegado es forbidden", ErrScopeDenied, OpDelete, fiber.StatusForbidden},
		{"conflicto de campo de tenant", ErrTenantFieldConflict, OpCreate, fiber.StatusBadRequest},
		{"relación rota es interno", ErrRelationUnresolvable, OpRead, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err, tt.op))
		})
	}
}
