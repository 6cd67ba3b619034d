package tenancy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixture de dos tenants (Lima y Trujillo) recorrido con el rol de cada
// actor, como lo haría el smoke de aislamiento contra el API real.
func TestTwoSchoolIsolation(t *testing.T) {
	ctx := context.Background()

	limaID := uuid.New()
	trujilloID := uuid.New()

	limaOwnerID := uuid.New()
	trujilloOwnerID := uuid.New()
	limaCoachUserID := uuid.New()
	anaID := uuid.New()   // estudiante afiliada a Lima
	jorgeID := uuid.New() // estudiante de Trujillo

	limaClassID := uuid.New()
	trujilloClassID := uuid.New()
	anaResID := uuid.New()   // reserva de Ana en Lima
	jorgeResID := uuid.New() // reserva de Jorge en Trujillo

	relations := &fakeRelationStore{
		classSchool: map[uuid.UUID]uuid.UUID{
			limaClassID:     limaID,
			trujilloClassID: trujilloID,
		},
		reservationRefs: map[uuid.UUID][2]uuid.UUID{
			anaResID:   {limaClassID, anaID},
			jorgeResID: {trujilloClassID, jorgeID},
		},
	}
	profiles := &fakeProfileStore{
		schoolByOwner: map[uuid.UUID]uuid.UUID{
			limaOwnerID:     limaID,
			trujilloOwnerID: trujilloID,
		},
		instructors: map[uuid.UUID][2]uuid.UUID{
			limaCoachUserID: {uuid.New(), limaID},
		},
	}

	resolver := NewResolver(relations)
	guard := NewGuard(resolver)

	limaAdmin, err := ResolveIdentity(ctx, profiles, "SCHOOL_ADMIN", limaOwnerID)
	require.NoError(t, err)
	trujilloAdmin, err := ResolveIdentity(ctx, profiles, "SCHOOL_ADMIN", trujilloOwnerID)
	require.NoError(t, err)
	limaCoach, err := ResolveIdentity(ctx, profiles, "INSTRUCTOR", limaCoachUserID)
	require.NoError(t, err)
	ana, err := ResolveIdentity(ctx, profiles, "STUDENT", anaID)
	require.NoError(t, err)

	t.Run("contención: el filtro de cada staff apunta SOLO a su escuela", func(t *testing.T) {
		s := scopeSQLFor(limaAdmin, EntityReservation)
		require.Len(t, s.args, 1)
		assert.Equal(t, limaID, s.args[0])

		s = scopeSQLFor(trujilloAdmin, EntityReservation)
		require.Len(t, s.args, 1)
		assert.Equal(t, trujilloID, s.args[0])
	})

	t.Run("lima no escribe reservas de trujillo y viceversa", func(t *testing.T) {
		assert.NoError(t, guard.AuthorizeMutate(ctx, limaAdmin, EntityReservation, OpUpdate,
			Row{ClassID: &limaClassID, OwnerUserID: &anaID}))
		assert.ErrorIs(t, guard.AuthorizeMutate(ctx, limaAdmin, EntityReservation, OpUpdate,
			Row{ClassID: &trujilloClassID, OwnerUserID: &jorgeID}), ErrScopeDenied)
		assert.ErrorIs(t, guard.AuthorizeMutate(ctx, trujilloAdmin, EntityReservation, OpUpdate,
			Row{ClassID: &limaClassID, OwnerUserID: &anaID}), ErrScopeDenied)
	})

	t.Run("el instructor ve la escuela pero jamás los pagos", func(t *testing.T) {
		assert.Equal(t, ScopeOwnSchool, ScopeFor(limaCoach, EntityClass, OpRead))
		assert.Equal(t, "1 = 0", scopeSQLFor(limaCoach, EntityPayment).where)
		assert.ErrorIs(t, guard.AuthorizeMutate(ctx, limaCoach, EntityReservation, OpUpdate,
			Row{ClassID: &limaClassID, OwnerUserID: &anaID}), ErrScopeDenied)
	})

	t.Run("ana ve el catálogo completo pero solo SUS reservas y pagos", func(t *testing.T) {
		assert.Empty(t, scopeSQLFor(ana, EntityClass).where)

		p := PredicateFor(ana, EntityPayment, OpRead)
		owner, err := resolver.EffectiveOwnerID(ctx, EntityPayment, Row{ReservationID: &anaResID})
		require.NoError(t, err)
		school, err := resolver.EffectiveSchoolID(ctx, EntityPayment, Row{ReservationID: &anaResID})
		require.NoError(t, err)
		assert.True(t, p.Allows(school, owner))

		owner, err = resolver.EffectiveOwnerID(ctx, EntityPayment, Row{ReservationID: &jorgeResID})
		require.NoError(t, err)
		school, err = resolver.EffectiveSchoolID(ctx, EntityPayment, Row{ReservationID: &jorgeResID})
		require.NoError(t, err)
		assert.False(t, p.Allows(school, owner))
	})

	t.Run("reasignar la clase mueve el tenant efectivo de la reserva", func(t *testing.T) {
		// solo ADMIN puede disparar el cambio
		assert.ErrorIs(t, guard.AuthorizeSchoolReassign(limaAdmin, limaID, trujilloID), ErrScopeDenied)

		// simulamos la reasignación hecha por un ADMIN
		relations.classSchool[limaClassID] = trujilloID
		defer func() { relations.classSchool[limaClassID] = limaID }()

		// la reserva de Ana ahora pertenece efectivamente a Trujillo: Lima la
		// pierde y Trujillo la gana, sin tocar la fila de la reserva
		assert.ErrorIs(t, guard.AuthorizeMutate(ctx, limaAdmin, EntityReservation, OpUpdate,
			Row{ClassID: &limaClassID, OwnerUserID: &anaID}), ErrScopeDenied)
		assert.NoError(t, guard.AuthorizeMutate(ctx, trujilloAdmin, EntityReservation, OpUpdate,
			Row{ClassID: &limaClassID, OwnerUserID: &anaID}))
	})
}
