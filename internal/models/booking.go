package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts d'une réservation. L'écrasement est volontairement permissif :
// pas de table de transitions, compatibilité avec le flux de création existant
const (
	BookingPending   = "Pending"
	BookingConfirmed = "Confirmed"
	BookingCancelled = "Cancelled"
	BookingCompleted = "Completed"
)

type Booking struct {
	ID        gocql.UUID `json:"id" db:"booking_id"`
	StationID gocql.UUID `json:"stationId" db:"station_id"`
	UserID    gocql.UUID `json:"userId" db:"user_id"`
	Status    string     `json:"status" db:"status"`
	StartTime time.Time  `json:"startTime" db:"start_time"`
	Hours     int        `json:"hours" db:"hours"`
	Amount    float64    `json:"amount" db:"amount"`
	PaymentID string     `json:"paymentId,omitempty" db:"payment_id"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}
