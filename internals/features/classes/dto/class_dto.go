// internals/features/classes/dto/class_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	classModel "surfschool_backend/internals/features/classes/model"
)

type CreateClassRequest struct {
	// Solo ADMIN lo fija; para SCHOOL_ADMIN el server inyecta su escuela y un
	// valor distinto es conflicto (400).
	ClassSchoolID *uuid.UUID `json:"class_school_id"`

	ClassInstructorID *uuid.UUID `json:"class_instructor_id"`

	ClassTitle       string  `json:"class_title" validate:"required,min=3,max=120"`
	ClassDescription *string `json:"class_description" validate:"omitempty,max=2000"`

	ClassDate        time.Time `json:"class_date" validate:"required"`
	ClassDurationMin int       `json:"class_duration_min" validate:"required,gte=30,lte=480"`
	ClassCapacity    int       `json:"class_capacity" validate:"required,gte=1,lte=50"`
	ClassPrice       float64   `json:"class_price" validate:"gte=0"`
	ClassLevel       string    `json:"class_level" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
}

type UpdateClassRequest struct {
	// Reasignar de escuela cambia en cascada el alcance de reservas y pagos:
	// solo ADMIN.
	ClassSchoolID *uuid.UUID `json:"class_school_id"`

	ClassInstructorID *uuid.UUID `json:"class_instructor_id"`

	ClassTitle       *string    `json:"class_title" validate:"omitempty,min=3,max=120"`
	ClassDescription *string    `json:"class_description" validate:"omitempty,max=2000"`
	ClassDate        *time.Time `json:"class_date"`
	ClassDurationMin *int       `json:"class_duration_min" validate:"omitempty,gte=30,lte=480"`
	ClassCapacity    *int       `json:"class_capacity" validate:"omitempty,gte=1,lte=50"`
	ClassPrice       *float64   `json:"class_price" validate:"omitempty,gte=0"`
	ClassLevel       *string    `json:"class_level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
}

type ClassResponse struct {
	ClassID           uuid.UUID  `json:"class_id"`
	ClassSchoolID     uuid.UUID  `json:"class_school_id"`
	ClassInstructorID *uuid.UUID `json:"class_instructor_id,omitempty"`
	ClassTitle        string     `json:"class_title"`
	ClassDescription  *string    `json:"class_description,omitempty"`
	ClassDate         time.Time  `json:"class_date"`
	ClassDurationMin  int        `json:"class_duration_min"`
	ClassCapacity     int        `json:"class_capacity"`
	ClassPrice        float64    `json:"class_price"`
	ClassLevel        string     `json:"class_level"`
	ClassCreatedAt    time.Time  `json:"class_created_at"`
	ClassUpdatedAt    time.Time  `json:"class_updated_at"`

	// Cupos libres (capacidad menos participantes activos); solo en detail.
	ClassAvailableSpots *int `json:"class_available_spots,omitempty"`
}

func ToClassResponse(m classModel.ClassModel) ClassResponse {
	return ClassResponse{
		ClassID:           m.ClassID,
		ClassSchoolID:     m.ClassSchoolID,
		ClassInstructorID: m.ClassInstructorID,
		ClassTitle:        m.ClassTitle,
		ClassDescription:  m.ClassDescription,
		ClassDate:         m.ClassDate,
		ClassDurationMin:  m.ClassDurationMin,
		ClassCapacity:     m.ClassCapacity,
		ClassPrice:        m.ClassPrice,
		ClassLevel:        m.ClassLevel,
		ClassCreatedAt:    m.ClassCreatedAt,
		ClassUpdatedAt:    m.ClassUpdatedAt,
	}
}
