package tenancy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProfileStore simula las filas de perfil sin base de datos.
type fakeProfileStore struct {
	schoolByOwner map[uuid.UUID]uuid.UUID
	instructors   map[uuid.UUID][2]uuid.UUID // userID → {instructorID, schoolID}
	students      map[uuid.UUID]struct {
		id     uuid.UUID
		school *uuid.UUID
	}
}

func (f *fakeProfileStore) SchoolIDByOwner(_ context.Context, userID uuid.UUID) (uuid.UUID, error) {
	id, ok := f.schoolByOwner[userID]
	if !ok {
		return uuid.Nil, ErrProfileNotFound
	}
	return id, nil
}

func (f *fakeProfileStore) InstructorByUser(_ context.Context, userID uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	v, ok := f.instructors[userID]
	if !ok {
		return uuid.Nil, uuid.Nil, ErrProfileNotFound
	}
	return v[0], v[1], nil
}

func (f *fakeProfileStore) StudentByUser(_ context.Context, userID uuid.UUID) (uuid.UUID, *uuid.UUID, error) {
	v, ok := f.students[userID]
	if !ok {
		return uuid.Nil, nil, ErrProfileNotFound
	}
	return v.id, v.school, nil
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw     string
		want    Role
		wantErr bool
	}{
		{"ADMIN", RoleAdmin, false},
		{"school_admin", RoleSchoolAdmin, false},
		{"  Instructor ", RoleInstructor, false},
		{"STUDENT", RoleStudent, false},
		{"", "", true},
		{"SUPERUSER", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.raw)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrIdentityMissing, "raw=%q", tt.raw)
			continue
		}
		require.NoError(t, err, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestResolveIdentity(t *testing.T) {
	ctx := context.Background()

	ownerID := uuid.New()
	schoolID := uuid.New()
	coachUserID := uuid.New()
	coachID := uuid.New()
	studentUserID := uuid.New()
	studentID := uuid.New()

	store := &fakeProfileStore{
		schoolByOwner: map[uuid.UUID]uuid.UUID{ownerID: schoolID},
		instructors:   map[uuid.UUID][2]uuid.UUID{coachUserID: {coachID, schoolID}},
		students: map[uuid.UUID]struct {
			id     uuid.UUID
			school *uuid.UUID
		}{
			studentUserID: {id: studentID, school: &schoolID},
		},
	}

	t.Run("admin sin lookups", func(t *testing.T) {
		ident, err := ResolveIdentity(ctx, store, "ADMIN", uuid.New())
		require.NoError(t, err)
		assert.Nil(t, ident.SchoolID)
	})

	t.Run("school_admin resuelve su escuela por owner", func(t *testing.T) {
		ident, err := ResolveIdentity(ctx, store, "SCHOOL_ADMIN", ownerID)
		require.NoError(t, err)
		require.NotNil(t, ident.SchoolID)
		assert.Equal(t, schoolID, *ident.SchoolID)
	})

	t.Run("school_admin sin escuela queda con alcance vacío", func(t *testing.T) {
		ident, err := ResolveIdentity(ctx, store, "SCHOOL_ADMIN", uuid.New())
		require.NoError(t, err)
		assert.Nil(t, ident.SchoolID)

		// y su predicado OWN_SCHOOL degrada a Deny
		p := PredicateFor(ident, EntityClass, OpRead)
		assert.Equal(t, ScopeDeny, p.Kind)
	})

	t.Run("instructor trae perfil y escuela", func(t *testing.T) {
		ident, err := ResolveIdentity(ctx, store, "INSTRUCTOR", coachUserID)
		require.NoError(t, err)
		require.NotNil(t, ident.InstructorID)
		assert.Equal(t, coachID, *ident.InstructorID)
		require.NotNil(t, ident.SchoolID)
		assert.Equal(t, schoolID, *ident.SchoolID)
	})

	t.Run("la afiliación del student no amplía su alcance", func(t *testing.T) {
		ident, err := ResolveIdentity(ctx, store, "STUDENT", studentUserID)
		require.NoError(t, err)
		require.NotNil(t, ident.SchoolID)

		// aunque tenga escuela, sus reservas siguen siendo OWN_RECORD
		assert.Equal(t, ScopeOwnRecord, ScopeFor(ident, EntityReservation, OpRead))
	})

	t.Run("user_id vacío es identidad faltante", func(t *testing.T) {
		_, err := ResolveIdentity(ctx, store, "ADMIN", uuid.Nil)
		assert.ErrorIs(t, err, ErrIdentityMissing)
	})

	t.Run("rol desconocido es identidad faltante", func(t *testing.T) {
		_, err := ResolveIdentity(ctx, store, "OWNER", uuid.New())
		assert.ErrorIs(t, err, ErrIdentityMissing)
	})
}
