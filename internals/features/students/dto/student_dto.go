// internals/features/students/dto/student_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	studentModel "surfschool_backend/internals/features/students/model"
)

type CreateStudentRequest struct {
	// Opcional: el staff puede crear el perfil a nombre de otro usuario; un
	// STUDENT solo puede crearse el suyo (user_id ajeno = conflicto 400).
	StudentUserID *uuid.UUID `json:"student_user_id"`

	// Afiliación. Para SCHOOL_ADMIN se inyecta su escuela; un STUDENT que se
	// registra solo queda independiente (sin escuela).
	StudentSchoolID *uuid.UUID `json:"student_school_id"`

	StudentLevel *string `json:"student_level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	StudentNotes *string `json:"student_notes" validate:"omitempty,max=2000"`
}

type UpdateStudentRequest struct {
	StudentLevel *string `json:"student_level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	StudentNotes *string `json:"student_notes" validate:"omitempty,max=2000"`

	// Cambiar la afiliación reescribe el tenant del perfil: solo ADMIN.
	StudentSchoolID *uuid.UUID `json:"student_school_id"`
}

type StudentResponse struct {
	StudentID        uuid.UUID  `json:"student_id"`
	StudentUserID    uuid.UUID  `json:"student_user_id"`
	StudentSchoolID  *uuid.UUID `json:"student_school_id,omitempty"`
	StudentLevel     *string    `json:"student_level,omitempty"`
	StudentNotes     *string    `json:"student_notes,omitempty"`
	StudentCreatedAt time.Time  `json:"student_created_at"`
	StudentUpdatedAt time.Time  `json:"student_updated_at"`
}

func ToStudentResponse(m studentModel.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:        m.StudentID,
		StudentUserID:    m.StudentUserID,
		StudentSchoolID:  m.StudentSchoolID,
		StudentLevel:     m.StudentLevel,
		StudentNotes:     m.StudentNotes,
		StudentCreatedAt: m.StudentCreatedAt,
		StudentUpdatedAt: m.StudentUpdatedAt,
	}
}
