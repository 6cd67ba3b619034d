package tenancy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestScopeFor_Table(t *testing.T) {
	tests := []struct {
		name   string
		role   Role
		entity Entity
		op     Operation
		want   ScopeKind
	}{
		{"admin lee todo", RoleAdmin, EntityPayment, OpRead, ScopeAll},
		{"admin escribe todo", RoleAdmin, EntitySchool, OpDelete, ScopeAll},

		{"school_admin lee su escuela", RoleSchoolAdmin, EntityClass, OpRead, ScopeOwnSchool},
		{"school_admin escribe reservas de su escuela", RoleSchoolAdmin, EntityReservation, OpUpdate, ScopeOwnSchool},
		{"school_admin lee pagos vía cadena", RoleSchoolAdmin, EntityPayment, OpRead, ScopeOwnSchool},

		{"instructor lee clases de su escuela", RoleInstructor, EntityClass, OpRead, ScopeOwnSchool},
		{"instructor no escribe clases", RoleInstructor, EntityClass, OpCreate, ScopeDeny},
		{"instructor no ve pagos", RoleInstructor, EntityPayment, OpRead, ScopeDeny},
		{"instructor solo su perfil", RoleInstructor, EntityInstructor, OpUpdate, ScopeOwnRecord},

		{"student ve catálogo de clases completo", RoleStudent, EntityClass, OpRead, ScopeAll},
		{"student ve catálogo de escuelas", RoleStudent, EntitySchool, OpRead, ScopeAll},
		{"student no escribe clases", RoleStudent, EntityClass, OpUpdate, ScopeDeny},
		{"student solo sus reservas", RoleStudent, EntityReservation, OpRead, ScopeOwnRecord},
		{"student solo sus pagos", RoleStudent, EntityPayment, OpCreate, ScopeOwnRecord},
		{"student no ve instructores", RoleStudent, EntityInstructor, OpRead, ScopeDeny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident := Identity{UserID: uuid.New(), Role: tt.role}
			assert.Equal(t, tt.want, ScopeFor(ident, tt.entity, tt.op))
		})
	}
}

func TestScopeFor_FailClosed(t *testing.T) {
	ident := Identity{UserID: uuid.New(), Role: Role("SUPERVISOR")}
	assert.Equal(t, ScopeDeny, ScopeFor(ident, EntityClass, OpRead))

	ident.Role = RoleAdmin
	assert.Equal(t, ScopeDeny, ScopeFor(ident, Entity("review"), OpRead),
		"entidad no listada resuelve a Deny, nunca a permitir")
}
