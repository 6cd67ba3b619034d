package tenancy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRelationStore simula las FKs clase/reserva en memoria.
type fakeRelationStore struct {
	classSchool     map[uuid.UUID]uuid.UUID    // classID → schoolID
	reservationRefs map[uuid.UUID][2]uuid.UUID // reservationID → {classID, userID}
}

func (f *fakeRelationStore) ClassSchoolID(_ context.Context, classID uuid.UUID) (uuid.UUID, error) {
	id, ok := f.classSchool[classID]
	if !ok {
		return uuid.Nil, ErrRelationUnresolvable
	}
	return id, nil
}

func (f *fakeRelationStore) ReservationRefs(_ context.Context, reservationID uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	v, ok := f.reservationRefs[reservationID]
	if !ok {
		return uuid.Nil, uuid.Nil, ErrRelationUnresolvable
	}
	return v[0], v[1], nil
}

func TestResolver_EffectiveSchoolID(t *testing.T) {
	ctx := context.Background()

	schoolID := uuid.New()
	classID := uuid.New()
	reservationID := uuid.New()
	ownerID := uuid.New()

	r := NewResolver(&fakeRelationStore{
		classSchool:     map[uuid.UUID]uuid.UUID{classID: schoolID},
		reservationRefs: map[uuid.UUID][2]uuid.UUID{reservationID: {classID, ownerID}},
	})

	t.Run("entidad directa usa su propia columna", func(t *testing.T) {
		got, err := r.EffectiveSchoolID(ctx, EntityClass, Row{SchoolID: &schoolID})
		require.NoError(t, err)
		assert.Equal(t, schoolID, *got)
	})

	t.Run("reserva salta a la clase", func(t *testing.T) {
		got, err := r.EffectiveSchoolID(ctx, EntityReservation, Row{ClassID: &classID})
		require.NoError(t, err)
		assert.Equal(t, schoolID, *got)
	})

	t.Run("pago recorre reserva y clase", func(t *testing.T) {
		got, err := r.EffectiveSchoolID(ctx, EntityPayment, Row{ReservationID: &reservationID})
		require.NoError(t, err)
		assert.Equal(t, schoolID, *got)
	})

	t.Run("reserva sin clase es irresoluble, no permitida", func(t *testing.T) {
		_, err := r.EffectiveSchoolID(ctx, EntityReservation, Row{})
		assert.ErrorIs(t, err, ErrRelationUnresolvable)
	})

	t.Run("clase padre inexistente es irresoluble", func(t *testing.T) {
		missing := uuid.New()
		_, err := r.EffectiveSchoolID(ctx, EntityReservation, Row{ClassID: &missing})
		assert.ErrorIs(t, err, ErrRelationUnresolvable)
	})

	t.Run("pago con reserva inexistente es irresoluble", func(t *testing.T) {
		missing := uuid.New()
		_, err := r.EffectiveSchoolID(ctx, EntityPayment, Row{ReservationID: &missing})
		assert.ErrorIs(t, err, ErrRelationUnresolvable)
	})
}

func TestResolver_EffectiveOwnerID(t *testing.T) {
	ctx := context.Background()

	classID := uuid.New()
	reservationID := uuid.New()
	ownerID := uuid.New()

	r := NewResolver(&fakeRelationStore{
		classSchool:     map[uuid.UUID]uuid.UUID{classID: uuid.New()},
		reservationRefs: map[uuid.UUID][2]uuid.UUID{reservationID: {classID, ownerID}},
	})

	t.Run("dueño del pago sale de la reserva", func(t *testing.T) {
		got, err := r.EffectiveOwnerID(ctx, EntityPayment, Row{ReservationID: &reservationID})
		require.NoError(t, err)
		assert.Equal(t, ownerID, *got)
	})

	t.Run("la escuela no tiene dueño a nivel usuario", func(t *testing.T) {
		got, err := r.EffectiveOwnerID(ctx, EntitySchool, Row{})
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
