// internals/tenancy/store.go
package tenancy

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ============================================
   Implementación GORM de ProfileStore + RelationStore.

   Consulta por nombre de tabla (sin importar los packages de features) para
   que el motor no dependa de los modelos. Padre e hijo se leen con el mismo
   handle que recibió el constructor: si el caller pasa su tx, la propagación
   ve el mismo snapshot que el resto del request.
   ============================================ */

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ ProfileStore = (*GormStore)(nil)
var _ RelationStore = (*GormStore)(nil)

func (s *GormStore) SchoolIDByOwner(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var row struct {
		SchoolID uuid.UUID `gorm:"column:school_id"`
	}
	err := s.db.WithContext(ctx).
		Table("schools").
		Select("school_id").
		Where("school_owner_user_id = ? AND school_deleted_at IS NULL", userID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, ErrProfileNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}
	return row.SchoolID, nil
}

func (s *GormStore) InstructorByUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	var row struct {
		InstructorID uuid.UUID `gorm:"column:instructor_id"`
		SchoolID     uuid.UUID `gorm:"column:instructor_school_id"`
	}
	err := s.db.WithContext(ctx).
		Table("instructors").
		Select("instructor_id, instructor_school_id").
		Where("instructor_user_id = ? AND instructor_deleted_at IS NULL", userID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, uuid.Nil, ErrProfileNotFound
	}
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return row.InstructorID, row.SchoolID, nil
}

func (s *GormStore) StudentByUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, *uuid.UUID, error) {
	var row struct {
		StudentID uuid.UUID  `gorm:"column:student_id"`
		SchoolID  *uuid.UUID `gorm:"column:student_school_id"`
	}
	err := s.db.WithContext(ctx).
		Table("students").
		Select("student_id, student_school_id").
		Where("student_user_id = ? AND student_deleted_at IS NULL", userID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, nil, ErrProfileNotFound
	}
	if err != nil {
		return uuid.Nil, nil, err
	}
	return row.StudentID, row.SchoolID, nil
}

func (s *GormStore) ClassSchoolID(ctx context.Context, classID uuid.UUID) (uuid.UUID, error) {
	var row struct {
		SchoolID uuid.UUID `gorm:"column:class_school_id"`
	}
	err := s.db.WithContext(ctx).
		Table("classes").
		Select("class_school_id").
		Where("class_id = ? AND class_deleted_at IS NULL", classID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, fmt.Errorf("%w: clase %s no existe", ErrRelationUnresolvable, classID)
	}
	if err != nil {
		return uuid.Nil, err
	}
	return row.SchoolID, nil
}

func (s *GormStore) ReservationRefs(ctx context.Context, reservationID uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	var row struct {
		ClassID uuid.UUID `gorm:"column:reservation_class_id"`
		UserID  uuid.UUID `gorm:"column:reservation_user_id"`
	}
	err := s.db.WithContext(ctx).
		Table("reservations").
		Select("reservation_class_id, reservation_user_id").
		Where("reservation_id = ? AND reservation_deleted_at IS NULL", reservationID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: reserva %s no existe", ErrRelationUnresolvable, reservationID)
	}
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return row.ClassID, row.UserID, nil
}
