package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts d'approbation d'une borne (cycle Pending → Approved | Rejected)
const (
	StationPending  = "Pending"
	StationApproved = "Approved"
	StationRejected = "Rejected"
)

type Station struct {
	ID             gocql.UUID `json:"id" db:"station_id"`
	Name           string     `json:"name" db:"name"`
	Address        string     `json:"address" db:"address"`
	City           string     `json:"city" db:"city"`
	Latitude       float64    `json:"latitude" db:"latitude"`
	Longitude      float64    `json:"longitude" db:"longitude"`
	OwnerID        gocql.UUID `json:"ownerId" db:"owner_id"`
	ConnectorType  string     `json:"connectorType" db:"connector_type"` // CCS2, CHAdeMO, Type2...
	PowerKW        float64    `json:"powerKw" db:"power_kw"`
	PricePerHour   float64    `json:"pricePerHour" db:"price_per_hour"`
	ApprovalStatus string     `json:"approvalStatus" db:"approval_status"`
	// Statut opérationnel libre ("Active", "Inactive", "Maintenance"...),
	// distinct du statut d'approbation
	Status    string    `json:"status" db:"status"`
	PhotoURL  string    `json:"photoUrl,omitempty" db:"photo_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
