// internals/features/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentStatusPaid     = "PAID"
	PaymentStatusUnpaid   = "UNPAID"
	PaymentStatusRefunded = "REFUNDED"
)

// PaymentModel representa la tabla `payments`.
// Sin user_id ni school_id propios: el dueño efectivo sale de la reserva y la
// escuela efectiva de reserva→clase, recalculados por request.
type PaymentModel struct {
	PaymentID            uuid.UUID `json:"payment_id" gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey"`
	PaymentReservationID uuid.UUID `json:"payment_reservation_id" gorm:"column:payment_reservation_id;type:uuid;not null;index"`

	PaymentAmount        float64           `json:"payment_amount" gorm:"column:payment_amount;type:numeric(10,2);not null"`
	PaymentStatus        string            `json:"payment_status" gorm:"column:payment_status;type:varchar(20);not null;default:'UNPAID'"`
	PaymentMethod        string            `json:"payment_method" gorm:"column:payment_method;type:varchar(40);not null;default:'manual'"`
	PaymentTransactionID *string           `json:"payment_transaction_id,omitempty" gorm:"column:payment_transaction_id;type:varchar(120)"`
	PaymentMetadata      datatypes.JSONMap `json:"payment_metadata,omitempty" gorm:"column:payment_metadata;type:jsonb"`

	PaymentCreatedAt time.Time      `json:"payment_created_at" gorm:"column:payment_created_at;type:timestamptz;not null;default:now()"`
	PaymentUpdatedAt time.Time      `json:"payment_updated_at" gorm:"column:payment_updated_at;type:timestamptz;not null;default:now()"`
	PaymentDeletedAt gorm.DeletedAt `json:"payment_deleted_at,omitempty" gorm:"column:payment_deleted_at;type:timestamptz;index"`
}

func (PaymentModel) TableName() string {
	return "payments"
}
