// internals/features/schools/dto/school_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	schoolModel "surfschool_backend/internals/features/schools/model"
)

type CreateSchoolRequest struct {
	SchoolName        string  `json:"school_name" validate:"required,min=3,max=120"`
	SchoolLocation    string  `json:"school_location" validate:"required,min=2,max=160"`
	SchoolDescription *string `json:"school_description" validate:"omitempty,max=2000"`
	SchoolPhone       *string `json:"school_phone" validate:"omitempty,max=30"`
	SchoolEmail       *string `json:"school_email" validate:"omitempty,email,max=160"`
	SchoolWebsite     *string `json:"school_website" validate:"omitempty,url"`
	SchoolInstagram   *string `json:"school_instagram" validate:"omitempty,max=80"`
	SchoolAddress     *string `json:"school_address" validate:"omitempty,max=500"`

	// Solo ADMIN puede fijar el dueño; para SCHOOL_ADMIN se fuerza a su sesión.
	SchoolOwnerUserID *uuid.UUID `json:"school_owner_user_id"`
}

type UpdateSchoolRequest struct {
	SchoolName        *string `json:"school_name" validate:"omitempty,min=3,max=120"`
	SchoolLocation    *string `json:"school_location" validate:"omitempty,min=2,max=160"`
	SchoolDescription *string `json:"school_description" validate:"omitempty,max=2000"`
	SchoolPhone       *string `json:"school_phone" validate:"omitempty,max=30"`
	SchoolEmail       *string `json:"school_email" validate:"omitempty,email,max=160"`
	SchoolWebsite     *string `json:"school_website" validate:"omitempty,url"`
	SchoolInstagram   *string `json:"school_instagram" validate:"omitempty,max=80"`
	SchoolAddress     *string `json:"school_address" validate:"omitempty,max=500"`
}

type SchoolResponse struct {
	SchoolID          uuid.UUID `json:"school_id"`
	SchoolOwnerUserID uuid.UUID `json:"school_owner_user_id"`
	SchoolName        string    `json:"school_name"`
	SchoolLocation    string    `json:"school_location"`
	SchoolDescription *string   `json:"school_description,omitempty"`
	SchoolPhone       *string   `json:"school_phone,omitempty"`
	SchoolEmail       *string   `json:"school_email,omitempty"`
	SchoolWebsite     *string   `json:"school_website,omitempty"`
	SchoolInstagram   *string   `json:"school_instagram,omitempty"`
	SchoolAddress     *string   `json:"school_address,omitempty"`
	SchoolCreatedAt   time.Time `json:"school_created_at"`
	SchoolUpdatedAt   time.Time `json:"school_updated_at"`
}

func ToSchoolResponse(m schoolModel.SchoolModel) SchoolResponse {
	return SchoolResponse{
		SchoolID:          m.SchoolID,
		SchoolOwnerUserID: m.SchoolOwnerUserID,
		SchoolName:        m.SchoolName,
		SchoolLocation:    m.SchoolLocation,
		SchoolDescription: m.SchoolDescription,
		SchoolPhone:       m.SchoolPhone,
		SchoolEmail:       m.SchoolEmail,
		SchoolWebsite:     m.SchoolWebsite,
		SchoolInstagram:   m.SchoolInstagram,
		SchoolAddress:     m.SchoolAddress,
		SchoolCreatedAt:   m.SchoolCreatedAt,
		SchoolUpdatedAt:   m.SchoolUpdatedAt,
	}
}
