package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Review struct {
	ID        gocql.UUID `json:"id" db:"review_id"`
	UserID    gocql.UUID `json:"userId" db:"user_id"`
	StationID gocql.UUID `json:"stationId" db:"station_id"`
	Rating    int        `json:"rating" db:"rating"` // 1-5
	Comment   string     `json:"comment" db:"comment"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`

	// Associations résolues à la lecture, nil si l'enregistrement
	// lié a disparu
	User    *User    `json:"user,omitempty"`
	Station *Station `json:"station,omitempty"`
}
