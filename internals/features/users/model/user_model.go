// internals/features/users/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel representa la tabla `users`
type UserModel struct {
	UserID   uuid.UUID `json:"user_id" gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserEmail    string `json:"user_email" gorm:"column:user_email;type:varchar(160);not null;uniqueIndex"`
	UserPassword string `json:"-" gorm:"column:user_password;type:varchar(100);not null"`
	UserName     string `json:"user_name" gorm:"column:user_name;type:varchar(120);not null"`

	// Rol global: ADMIN | SCHOOL_ADMIN | INSTRUCTOR | STUDENT.
	// Inmutable durante la vida de la sesión; va dentro del JWT firmado.
	UserRole string `json:"user_role" gorm:"column:user_role;type:varchar(20);not null;default:'STUDENT'"`

	UserAge     *int    `json:"user_age,omitempty" gorm:"column:user_age"`
	UserCanSwim bool    `json:"user_can_swim" gorm:"column:user_can_swim;not null;default:false"`
	UserPhone   *string `json:"user_phone,omitempty" gorm:"column:user_phone;type:varchar(30)"`

	UserIsActive bool `json:"user_is_active" gorm:"column:user_is_active;not null;default:true"`

	UserCreatedAt time.Time      `json:"user_created_at" gorm:"column:user_created_at;type:timestamptz;not null;default:now()"`
	UserUpdatedAt time.Time      `json:"user_updated_at" gorm:"column:user_updated_at;type:timestamptz;not null;default:now()"`
	UserDeletedAt gorm.DeletedAt `json:"user_deleted_at,omitempty" gorm:"column:user_deleted_at;type:timestamptz;index"`
}

func (UserModel) TableName() string {
	return "users"
}
