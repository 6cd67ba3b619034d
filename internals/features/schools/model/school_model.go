// internals/features/schools/model/school_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolModel representa la tabla `schools`. La escuela es la frontera raíz
// del tenant: todo lo demás cuelga de su school_id, directo o por FK.
type SchoolModel struct {
	SchoolID uuid.UUID `json:"school_id" gorm:"column:school_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// Dueño: el usuario SCHOOL_ADMIN. La identidad se resuelve buscando por
	// esta columna, nunca desde un query param.
	SchoolOwnerUserID uuid.UUID `json:"school_owner_user_id" gorm:"column:school_owner_user_id;type:uuid;not null;uniqueIndex"`

	SchoolName        string  `json:"school_name" gorm:"column:school_name;type:varchar(120);not null"`
	SchoolLocation    string  `json:"school_location" gorm:"column:school_location;type:varchar(160);not null"`
	SchoolDescription *string `json:"school_description,omitempty" gorm:"column:school_description;type:text"`
	SchoolPhone       *string `json:"school_phone,omitempty" gorm:"column:school_phone;type:varchar(30)"`
	SchoolEmail       *string `json:"school_email,omitempty" gorm:"column:school_email;type:varchar(160)"`
	SchoolWebsite     *string `json:"school_website,omitempty" gorm:"column:school_website;type:text"`
	SchoolInstagram   *string `json:"school_instagram,omitempty" gorm:"column:school_instagram;type:varchar(80)"`
	SchoolAddress     *string `json:"school_address,omitempty" gorm:"column:school_address;type:text"`

	SchoolCreatedAt time.Time      `json:"school_created_at" gorm:"column:school_created_at;type:timestamptz;not null;default:now()"`
	SchoolUpdatedAt time.Time      `json:"school_updated_at" gorm:"column:school_updated_at;type:timestamptz;not null;default:now()"`
	SchoolDeletedAt gorm.DeletedAt `json:"school_deleted_at,omitempty" gorm:"column:school_deleted_at;type:timestamptz;index"`
}

func (SchoolModel) TableName() string {
	return "schools"
}
