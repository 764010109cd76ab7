package models

import (
	"time"

	"github.com/gocql/gocql"
)

type AuditLog struct {
	ID         gocql.UUID `json:"id" db:"log_id"`
	UserID     string     `json:"userId" db:"user_id"`
	UserEmail  string     `json:"userEmail" db:"user_email"`
	Action     string     `json:"action" db:"action"`
	Resource   string     `json:"resource" db:"resource"`
	ResourceID string     `json:"resourceId" db:"resource_id"`
	OldValue   string     `json:"oldValue,omitempty" db:"old_value"`
	NewValue   string     `json:"newValue,omitempty" db:"new_value"`
	Success    bool       `json:"success" db:"success"`
	Error      string     `json:"error,omitempty" db:"error"`
	IP         string     `json:"ip" db:"ip"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
}
