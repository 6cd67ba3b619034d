package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{ReservationStatusPending, ReservationStatusConfirmed, true},
		{ReservationStatusPending, ReservationStatusCanceled, true},
		{ReservationStatusPending, ReservationStatusPaid, false},
		{ReservationStatusConfirmed, ReservationStatusPaid, true},
		{ReservationStatusConfirmed, ReservationStatusCanceled, true},
		{ReservationStatusConfirmed, ReservationStatusCompleted, false},
		{ReservationStatusPaid, ReservationStatusCompleted, true},
		{ReservationStatusPaid, ReservationStatusCanceled, true},
		{ReservationStatusPaid, ReservationStatusPending, false},
		{ReservationStatusCompleted, ReservationStatusCanceled, false},
		{ReservationStatusCanceled, ReservationStatusPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidTransition(tt.from, tt.to), "%s → %s", tt.from, tt.to)
	}
}
