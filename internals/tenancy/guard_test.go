package tenancy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_AuthorizeCreate(t *testing.T) {
	schoolID := uuid.New()
	otherSchoolID := uuid.New()
	userID := uuid.New()
	otherUserID := uuid.New()

	g := NewGuard(NewResolver(&fakeRelationStore{}))

	t.Run("deny corta antes de todo", func(t *testing.T) {
		ident := Identity{UserID: userID, Role: RoleInstructor}
		_, err := g.AuthorizeCreate(ident, EntityClass, TenantFields{})
		assert.ErrorIs(t, err, ErrScopeDenied)
	})

	t.Run("admin fija el tenant que quiera", func(t *testing.T) {
		ident := Identity{UserID: userID, Role: RoleAdmin}
		fields, err := g.AuthorizeCreate(ident, EntityClass, TenantFields{SchoolID: &otherSchoolID})
		require.NoError(t, err)
		assert.Equal(t, otherSchoolID, *fields.SchoolID)
	})

	t.Run("own_school inyecta la escuela de la sesión", func(t *testing.T) {
		ident := Identity{UserID: userID, Role: RoleSchoolAdmin, SchoolID: &schoolID}
		fields, err := g.AuthorizeCreate(ident, EntityClass, TenantFields{})
		require.NoError(t, err)
		assert.Equal(t, schoolID, *fields.SchoolID)
	})

	t.Run("school_id ajeno es conflicto, no corrección silenciosa", func(t *testing.T) {
		ident := Identity{UserID: userID, Role: RoleSchoolAdmin, SchoolID: &schoolID}
		_, err := g.AuthorizeCreate(ident, EntityClass, TenantFields{SchoolID: &otherSchoolID})
		assert.ErrorIs(t, err, ErrTenantFieldConflict)
	})

	t.Run("school_admin sin escuela no crea nada", func(t *testing.T) {
		ident := Identity{UserID: userID, Role: RoleSchoolAdmin}
		_, err := g.AuthorizeCreate(ident, EntityClass, TenantFields{})
		assert.ErrorIs(t, err, ErrScopeDenied)
	})

	t.Run("staff crea a nombre de un estudiante", func(t *testing.T) {
		ident := Identity{UserID: userID, Role: RoleSchoolAdmin, SchoolID: &schoolID}
		fields, err := g.AuthorizeCreate(ident, EntityReservation, TenantFields{UserID: &otherUserID})
		require.NoError(t, err)
		assert.Equal(t, otherUserID, *fields.UserID)
		assert.Equal(t, schoolID, *fields.SchoolID)
	})

	t.Run("own_record fuerza el user de la sesión", func(t *testing.T) {
		ident := Identity{UserID: userID, Role: RoleStudent}
		fields, err := g.AuthorizeCreate(ident, EntityReservation, TenantFields{})
		require.NoError(t, err)
		assert.Equal(t, userID, *fields.UserID)
		assert.Nil(t, fields.SchoolID)
	})

	t.Run("student con user_id ajeno es conflicto", func(t *testing.T) {
		ident := Identity{UserID: userID, Role: RoleStudent}
		_, err := g.AuthorizeCreate(ident, EntityReservation, TenantFields{UserID: &otherUserID})
		assert.ErrorIs(t, err, ErrTenantFieldConflict)
	})
}

func TestGuard_AuthorizeMutate(t *testing.T) {
	ctx := context.Background()

	limaID := uuid.New()
	trujilloID := uuid.New()
	limaClassID := uuid.New()
	trujilloClassID := uuid.New()
	limaResID := uuid.New()
	trujilloResID := uuid.New()
	anaID := uuid.New()
	jorgeID := uuid.New()

	g := NewGuard(NewResolver(&fakeRelationStore{
		classSchool: map[uuid.UUID]uuid.UUID{
			limaClassID:     limaID,
			trujilloClassID: trujilloID,
		},
		reservationRefs: map[uuid.UUID][2]uuid.UUID{
			limaResID:     {limaClassID, anaID},
			trujilloResID: {trujilloClassID, jorgeID},
		},
	}))

	limaAdmin := Identity{UserID: uuid.New(), Role: RoleSchoolAdmin, SchoolID: &limaID}
	ana := Identity{UserID: anaID, Role: RoleStudent}

	t.Run("admin pasa sin resolver nada", func(t *testing.T) {
		ident := Identity{UserID: uuid.New(), Role: RoleAdmin}
		assert.NoError(t, g.AuthorizeMutate(ctx, ident, EntityClass, OpDelete, Row{}))
	})

	t.Run("clase propia editable", func(t *testing.T) {
		err := g.AuthorizeMutate(ctx, limaAdmin, EntityClass, OpUpdate, Row{SchoolID: &limaID})
		assert.NoError(t, err)
	})

	t.Run("clase ajena denegada antes de validar campos", func(t *testing.T) {
		err := g.AuthorizeMutate(ctx, limaAdmin, EntityClass, OpUpdate, Row{SchoolID: &trujilloID})
		assert.ErrorIs(t, err, ErrScopeDenied)
	})

	t.Run("reserva de su escuela vía la clase", func(t *testing.T) {
		err := g.AuthorizeMutate(ctx, limaAdmin, EntityReservation, OpUpdate,
			Row{ClassID: &limaClassID, OwnerUserID: &anaID})
		assert.NoError(t, err)
	})

	t.Run("reserva de otra escuela denegada", func(t *testing.T) {
		err := g.AuthorizeMutate(ctx, limaAdmin, EntityReservation, OpUpdate,
			Row{ClassID: &trujilloClassID, OwnerUserID: &jorgeID})
		assert.ErrorIs(t, err, ErrScopeDenied)
	})

	t.Run("student cancela su reserva", func(t *testing.T) {
		err := g.AuthorizeMutate(ctx, ana, EntityReservation, OpUpdate,
			Row{ClassID: &limaClassID, OwnerUserID: &anaID})
		assert.NoError(t, err)
	})

	t.Run("student no toca reservas ajenas", func(t *testing.T) {
		err := g.AuthorizeMutate(ctx, ana, EntityReservation, OpUpdate,
			Row{ClassID: &trujilloClassID, OwnerUserID: &jorgeID})
		assert.ErrorIs(t, err, ErrScopeDenied)
	})

	t.Run("pago autorizado por la cadena reserva→clase", func(t *testing.T) {
		err := g.AuthorizeMutate(ctx, limaAdmin, EntityPayment, OpUpdate,
			Row{ReservationID: &limaResID})
		assert.NoError(t, err)

		err = g.AuthorizeMutate(ctx, limaAdmin, EntityPayment, OpUpdate,
			Row{ReservationID: &trujilloResID})
		assert.ErrorIs(t, err, ErrScopeDenied)
	})

	t.Run("pago con reserva rota es 500, nunca permitido", func(t *testing.T) {
		missing := uuid.New()
		err := g.AuthorizeMutate(ctx, limaAdmin, EntityPayment, OpUpdate,
			Row{ReservationID: &missing})
		assert.ErrorIs(t, err, ErrRelationUnresolvable)
	})

	t.Run("operación de lectura es mal uso", func(t *testing.T) {
		err := g.AuthorizeMutate(ctx, limaAdmin, EntityClass, OpRead, Row{SchoolID: &limaID})
		assert.ErrorIs(t, err, ErrScopeDenied)
	})
}

func TestGuard_AuthorizeSchoolReassign(t *testing.T) {
	limaID := uuid.New()
	trujilloID := uuid.New()

	g := NewGuard(NewResolver(&fakeRelationStore{}))

	limaAdmin := Identity{UserID: uuid.New(), Role: RoleSchoolAdmin, SchoolID: &limaID}
	admin := Identity{UserID: uuid.New(), Role: RoleAdmin}

	// sin cambio: siempre pasa
	assert.NoError(t, g.AuthorizeSchoolReassign(limaAdmin, limaID, limaID))
	assert.NoError(t, g.AuthorizeSchoolReassign(limaAdmin, limaID, uuid.Nil))

	// mover de escuela cambia en cascada reservas y pagos: solo ADMIN
	assert.ErrorIs(t, g.AuthorizeSchoolReassign(limaAdmin, limaID, trujilloID), ErrScopeDenied)
	assert.NoError(t, g.AuthorizeSchoolReassign(admin, limaID, trujilloID))
}
