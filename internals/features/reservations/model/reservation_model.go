// internals/features/reservations/model/reservation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReservationStatusPending   = "PENDING"
	ReservationStatusConfirmed = "CONFIRMED"
	ReservationStatusPaid      = "PAID"
	ReservationStatusCompleted = "COMPLETED"
	ReservationStatusCanceled  = "CANCELED"
)

// ReservationModel representa la tabla `reservations`.
//
// A propósito NO tiene columna school_id: la escuela efectiva de una reserva
// es SIEMPRE la de su clase y se recalcula por request vía el resolver de
// relaciones. Una copia local quedaría obsoleta si reasignan la clase.
type ReservationModel struct {
	ReservationID      uuid.UUID `json:"reservation_id" gorm:"column:reservation_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ReservationClassID uuid.UUID `json:"reservation_class_id" gorm:"column:reservation_class_id;type:uuid;not null;index"`
	ReservationUserID  uuid.UUID `json:"reservation_user_id" gorm:"column:reservation_user_id;type:uuid;not null;index"`

	ReservationStatus         string  `json:"reservation_status" gorm:"column:reservation_status;type:varchar(20);not null;default:'PENDING'"`
	ReservationParticipants   int     `json:"reservation_participants" gorm:"column:reservation_participants;not null;default:1"`
	ReservationSpecialRequest *string `json:"reservation_special_request,omitempty" gorm:"column:reservation_special_request;type:text"`

	ReservationCreatedAt time.Time      `json:"reservation_created_at" gorm:"column:reservation_created_at;type:timestamptz;not null;default:now()"`
	ReservationUpdatedAt time.Time      `json:"reservation_updated_at" gorm:"column:reservation_updated_at;type:timestamptz;not null;default:now()"`
	ReservationDeletedAt gorm.DeletedAt `json:"reservation_deleted_at,omitempty" gorm:"column:reservation_deleted_at;type:timestamptz;index"`
}

func (ReservationModel) TableName() string {
	return "reservations"
}

// ValidTransition: máquina de estados de la reserva. El motor de tenancy
// decide QUIÉN puede escribir; esto decide QUÉ transición es legal.
func ValidTransition(from, to string) bool {
	switch from {
	case ReservationStatusPending:
		return to == ReservationStatusConfirmed || to == ReservationStatusCanceled
	case ReservationStatusConfirmed:
		return to == ReservationStatusPaid || to == ReservationStatusCanceled
	case ReservationStatusPaid:
		return to == ReservationStatusCompleted || to == ReservationStatusCanceled
	default:
		return false
	}
}
