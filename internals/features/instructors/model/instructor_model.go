// internals/features/instructors/model/instructor_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// InstructorModel representa la tabla `instructors`.
// Un usuario tiene a lo sumo un perfil de instructor (unique en user_id).
type InstructorModel struct {
	InstructorID       uuid.UUID `json:"instructor_id" gorm:"column:instructor_id;type:uuid;default:gen_random_uuid();primaryKey"`
	InstructorUserID   uuid.UUID `json:"instructor_user_id" gorm:"column:instructor_user_id;type:uuid;not null;uniqueIndex"`
	InstructorSchoolID uuid.UUID `json:"instructor_school_id" gorm:"column:instructor_school_id;type:uuid;not null;index"`

	InstructorBio             *string        `json:"instructor_bio,omitempty" gorm:"column:instructor_bio;type:text"`
	InstructorYearsExperience int            `json:"instructor_years_experience" gorm:"column:instructor_years_experience;not null;default:0"`
	InstructorSpecialties     pq.StringArray `json:"instructor_specialties" gorm:"column:instructor_specialties;type:text[]"`
	InstructorCertifications  pq.StringArray `json:"instructor_certifications" gorm:"column:instructor_certifications;type:text[]"`
	InstructorRating          float64        `json:"instructor_rating" gorm:"column:instructor_rating;not null;default:0"`
	InstructorTotalReviews    int            `json:"instructor_total_reviews" gorm:"column:instructor_total_reviews;not null;default:0"`

	InstructorCreatedAt time.Time      `json:"instructor_created_at" gorm:"column:instructor_created_at;type:timestamptz;not null;default:now()"`
	InstructorUpdatedAt time.Time      `json:"instructor_updated_at" gorm:"column:instructor_updated_at;type:timestamptz;not null;default:now()"`
	InstructorDeletedAt gorm.DeletedAt `json:"instructor_deleted_at,omitempty" gorm:"column:instructor_deleted_at;type:timestamptz;index"`
}

func (InstructorModel) TableName() string {
	return "instructors"
}
