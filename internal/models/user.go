package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Rôles reconnus par l'API
const (
	RoleAdmin         = "admin"
	RoleStationMaster = "station-master"
	RoleUser          = "user"
)

type User struct {
	ID         gocql.UUID `json:"id" db:"user_id"`
	Name       string     `json:"name" db:"name"`
	Email      string     `json:"email" db:"email"`
	Password   string     `json:"-" db:"password"`
	Role       string     `json:"role" db:"role"`
	Provider   string     `json:"provider,omitempty" db:"provider"`
	ProviderID string     `json:"-" db:"provider_id"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}
