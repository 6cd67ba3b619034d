// internals/features/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	paymentModel "surfschool_backend/internals/features/payments/model"
)

type CreatePaymentRequest struct {
	PaymentReservationID uuid.UUID `json:"payment_reservation_id" validate:"required"`

	PaymentAmount        float64        `json:"payment_amount" validate:"required,gt=0"`
	PaymentMethod        *string        `json:"payment_method" validate:"omitempty,max=40"`
	PaymentTransactionID *string        `json:"payment_transaction_id" validate:"omitempty,max=120"`
	PaymentMetadata      map[string]any `json:"payment_metadata"`
}

type UpdatePaymentRequest struct {
	PaymentStatus        *string        `json:"payment_status" validate:"omitempty,oneof=PAID UNPAID REFUNDED"`
	PaymentMethod        *string        `json:"payment_method" validate:"omitempty,max=40"`
	PaymentTransactionID *string        `json:"payment_transaction_id" validate:"omitempty,max=120"`
	PaymentMetadata      map[string]any `json:"payment_metadata"`
}

type PaymentResponse struct {
	PaymentID            uuid.UUID      `json:"payment_id"`
	PaymentReservationID uuid.UUID      `json:"payment_reservation_id"`
	PaymentAmount        float64        `json:"payment_amount"`
	PaymentStatus        string         `json:"payment_status"`
	PaymentMethod        string         `json:"payment_method"`
	PaymentTransactionID *string        `json:"payment_transaction_id,omitempty"`
	PaymentMetadata      map[string]any `json:"payment_metadata,omitempty"`
	PaymentCreatedAt     time.Time      `json:"payment_created_at"`
	PaymentUpdatedAt     time.Time      `json:"payment_updated_at"`
}

func ToPaymentResponse(m paymentModel.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:            m.PaymentID,
		PaymentReservationID: m.PaymentReservationID,
		PaymentAmount:        m.PaymentAmount,
		PaymentStatus:        m.PaymentStatus,
		PaymentMethod:        m.PaymentMethod,
		PaymentTransactionID: m.PaymentTransactionID,
		PaymentMetadata:      map[string]any(m.PaymentMetadata),
		PaymentCreatedAt:     m.PaymentCreatedAt,
		PaymentUpdatedAt:     m.PaymentUpdatedAt,
	}
}

func ToJSONMap(m map[string]any) datatypes.JSONMap {
	if m == nil {
		return nil
	}
	return datatypes.JSONMap(m)
}
