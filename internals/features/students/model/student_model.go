// internals/features/students/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentModel representa la tabla `students`.
// student_school_id es opcional: un estudiante "independiente" no pertenece a
// ninguna escuela y reserva clases donde quiera. La afiliación NO amplía su
// alcance de lectura (siempre OWN_RECORD).
type StudentModel struct {
	StudentID       uuid.UUID  `json:"student_id" gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey"`
	StudentUserID   uuid.UUID  `json:"student_user_id" gorm:"column:student_user_id;type:uuid;not null;uniqueIndex"`
	StudentSchoolID *uuid.UUID `json:"student_school_id,omitempty" gorm:"column:student_school_id;type:uuid;index"`

	StudentLevel *string `json:"student_level,omitempty" gorm:"column:student_level;type:varchar(20)"`
	StudentNotes *string `json:"student_notes,omitempty" gorm:"column:student_notes;type:text"`

	StudentCreatedAt time.Time      `json:"student_created_at" gorm:"column:student_created_at;type:timestamptz;not null;default:now()"`
	StudentUpdatedAt time.Time      `json:"student_updated_at" gorm:"column:student_updated_at;type:timestamptz;not null;default:now()"`
	StudentDeletedAt gorm.DeletedAt `json:"student_deleted_at,omitempty" gorm:"column:student_deleted_at;type:timestamptz;index"`
}

func (StudentModel) TableName() string {
	return "students"
}
