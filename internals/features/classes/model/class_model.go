// internals/features/classes/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ClassLevelBeginner     = "BEGINNER"
	ClassLevelIntermediate = "INTERMEDIATE"
	ClassLevelAdvanced     = "ADVANCED"
)

// ClassModel representa la tabla `classes`
type ClassModel struct {
	// PK & tenant
	ClassID       uuid.UUID `json:"class_id" gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClassSchoolID uuid.UUID `json:"class_school_id" gorm:"column:class_school_id;type:uuid;not null;index"`

	ClassInstructorID *uuid.UUID `json:"class_instructor_id,omitempty" gorm:"column:class_instructor_id;type:uuid;index"`

	ClassTitle       string  `json:"class_title" gorm:"column:class_title;type:varchar(120);not null"`
	ClassDescription *string `json:"class_description,omitempty" gorm:"column:class_description;type:text"`

	ClassDate        time.Time `json:"class_date" gorm:"column:class_date;type:timestamptz;not null"`
	ClassDurationMin int       `json:"class_duration_min" gorm:"column:class_duration_min;not null"`
	ClassCapacity    int       `json:"class_capacity" gorm:"column:class_capacity;not null"`
	ClassPrice       float64   `json:"class_price" gorm:"column:class_price;type:numeric(10,2);not null"`
	ClassLevel       string    `json:"class_level" gorm:"column:class_level;type:varchar(20);not null"`

	ClassCreatedAt time.Time      `json:"class_created_at" gorm:"column:class_created_at;type:timestamptz;not null;default:now()"`
	ClassUpdatedAt time.Time      `json:"class_updated_at" gorm:"column:class_updated_at;type:timestamptz;not null;default:now()"`
	ClassDeletedAt gorm.DeletedAt `json:"class_deleted_at,omitempty" gorm:"column:class_deleted_at;type:timestamptz;index"`
}

func (ClassModel) TableName() string {
	return "classes"
}
