// internals/features/instructors/dto/instructor_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	instructorModel "surfschool_backend/internals/features/instructors/model"
)

type CreateInstructorRequest struct {
	InstructorUserID uuid.UUID `json:"instructor_user_id" validate:"required"`

	// Ignorado salvo para ADMIN: el server inyecta la escuela de la sesión y un
	// valor distinto es conflicto (400), nunca corrección silenciosa.
	InstructorSchoolID *uuid.UUID `json:"instructor_school_id"`

	InstructorBio             *string  `json:"instructor_bio" validate:"omitempty,max=2000"`
	InstructorYearsExperience *int     `json:"instructor_years_experience" validate:"omitempty,gte=0,lte=60"`
	InstructorSpecialties     []string `json:"instructor_specialties" validate:"omitempty,dive,min=2,max=60"`
	InstructorCertifications  []string `json:"instructor_certifications" validate:"omitempty,dive,min=2,max=120"`
}

type UpdateInstructorRequest struct {
	InstructorBio             *string  `json:"instructor_bio" validate:"omitempty,max=2000"`
	InstructorYearsExperience *int     `json:"instructor_years_experience" validate:"omitempty,gte=0,lte=60"`
	InstructorSpecialties     []string `json:"instructor_specialties" validate:"omitempty,dive,min=2,max=60"`
	InstructorCertifications  []string `json:"instructor_certifications" validate:"omitempty,dive,min=2,max=120"`

	// Mover un instructor de escuela reescribe su tenant: solo ADMIN.
	InstructorSchoolID *uuid.UUID `json:"instructor_school_id"`
}

type InstructorResponse struct {
	InstructorID              uuid.UUID `json:"instructor_id"`
	InstructorUserID          uuid.UUID `json:"instructor_user_id"`
	InstructorSchoolID        uuid.UUID `json:"instructor_school_id"`
	InstructorBio             *string   `json:"instructor_bio,omitempty"`
	InstructorYearsExperience int       `json:"instructor_years_experience"`
	InstructorSpecialties     []string  `json:"instructor_specialties"`
	InstructorCertifications  []string  `json:"instructor_certifications"`
	InstructorRating          float64   `json:"instructor_rating"`
	InstructorTotalReviews    int       `json:"instructor_total_reviews"`
	InstructorCreatedAt       time.Time `json:"instructor_created_at"`
	InstructorUpdatedAt       time.Time `json:"instructor_updated_at"`
}

func ToInstructorResponse(m instructorModel.InstructorModel) InstructorResponse {
	return InstructorResponse{
		InstructorID:              m.InstructorID,
		InstructorUserID:          m.InstructorUserID,
		InstructorSchoolID:        m.InstructorSchoolID,
		InstructorBio:             m.InstructorBio,
		InstructorYearsExperience: m.InstructorYearsExperience,
		InstructorSpecialties:     []string(m.InstructorSpecialties),
		InstructorCertifications:  []string(m.InstructorCertifications),
		InstructorRating:          m.InstructorRating,
		InstructorTotalReviews:    m.InstructorTotalReviews,
		InstructorCreatedAt:       m.InstructorCreatedAt,
		InstructorUpdatedAt:       m.InstructorUpdatedAt,
	}
}
