// internals/features/reservations/dto/reservation_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	reservationModel "surfschool_backend/internals/features/reservations/model"
)

type CreateReservationRequest struct {
	ReservationClassID uuid.UUID `json:"reservation_class_id" validate:"required"`

	// Opcional: el staff reserva a nombre de un estudiante. Un STUDENT con
	// user_id ajeno recibe conflicto (400), nunca corrección silenciosa.
	ReservationUserID *uuid.UUID `json:"reservation_user_id"`

	ReservationParticipants   int     `json:"reservation_participants" validate:"omitempty,gte=1,lte=20"`
	ReservationSpecialRequest *string `json:"reservation_special_request" validate:"omitempty,max=1000"`
}

type UpdateReservationRequest struct {
	ReservationStatus         *string `json:"reservation_status" validate:"omitempty,oneof=PENDING CONFIRMED PAID COMPLETED CANCELED"`
	ReservationParticipants   *int    `json:"reservation_participants" validate:"omitempty,gte=1,lte=20"`
	ReservationSpecialRequest *string `json:"reservation_special_request" validate:"omitempty,max=1000"`
}

type ReservationResponse struct {
	ReservationID             uuid.UUID `json:"reservation_id"`
	ReservationClassID        uuid.UUID `json:"reservation_class_id"`
	ReservationUserID         uuid.UUID `json:"reservation_user_id"`
	ReservationStatus         string    `json:"reservation_status"`
	ReservationParticipants   int       `json:"reservation_participants"`
	ReservationSpecialRequest *string   `json:"reservation_special_request,omitempty"`
	ReservationCreatedAt      time.Time `json:"reservation_created_at"`
	ReservationUpdatedAt      time.Time `json:"reservation_updated_at"`
}

func ToReservationResponse(m reservationModel.ReservationModel) ReservationResponse {
	return ReservationResponse{
		ReservationID:             m.ReservationID,
		ReservationClassID:        m.ReservationClassID,
		ReservationUserID:         m.ReservationUserID,
		ReservationStatus:         m.ReservationStatus,
		ReservationParticipants:   m.ReservationParticipants,
		ReservationSpecialRequest: m.ReservationSpecialRequest,
		ReservationCreatedAt:      m.ReservationCreatedAt,
		ReservationUpdatedAt:      m.ReservationUpdatedAt,
	}
}
