package utils

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"evcharge_back_end/internal/database"
	"evcharge_back_end/internal/models"
)

// LogAction enregistre une action dans les logs d'audit
func LogAction(c *gin.Context, action, resource string, resourceID string, oldValue, newValue interface{}) {
	entry := buildAuditLog(c, action, resource, resourceID, oldValue, newValue, true, "")
	go persistAuditLog(entry)
}

// LogFailedAction enregistre une action échouée dans les logs d'audit
func LogFailedAction(c *gin.Context, action, resource, resourceID, errorMsg string) {
	entry := buildAuditLog(c, action, resource, resourceID, nil, nil, false, errorMsg)
	go persistAuditLog(entry)
}

// buildAuditLog copie identité et IP hors du contexte avant de rendre la
// main : le *gin.Context est poolé, il ne doit pas survivre à la requête
func buildAuditLog(c *gin.Context, action, resource, resourceID string, oldValue, newValue interface{}, success bool, errorMsg string) models.AuditLog {
	userID, _ := c.Get("user_id")
	userEmail, _ := c.Get("email")

	// Sérialiser les valeurs
	var oldValueStr, newValueStr string
	if oldValue != nil {
		if oldBytes, err := json.Marshal(oldValue); err == nil {
			oldValueStr = string(oldBytes)
		}
	}
	if newValue != nil {
		if newBytes, err := json.Marshal(newValue); err == nil {
			newValueStr = string(newBytes)
		}
	}

	return models.AuditLog{
		ID:         gocql.TimeUUID(),
		UserID:     getStringValue(userID),
		UserEmail:  getStringValue(userEmail),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		OldValue:   oldValueStr,
		NewValue:   newValueStr,
		Success:    success,
		Error:      errorMsg,
		IP:         c.ClientIP(),
		CreatedAt:  time.Now(),
	}
}

// persistAuditLog écrit l'entrée de façon asynchrone
func persistAuditLog(entry models.AuditLog) {
	session, err := database.GetUsersSession()
	if err != nil {
		log.Printf("❌ Erreur enregistrement log audit: %v", err)
		return
	}

	if err := session.Query(`INSERT INTO audit_logs (log_id, user_id, user_email, action, resource,
		resource_id, old_value, new_value, success, error, ip, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.UserEmail, entry.Action, entry.Resource,
		entry.ResourceID, entry.OldValue, entry.NewValue, entry.Success,
		entry.Error, entry.IP, entry.CreatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur enregistrement log audit: %v", err)
	}
}

func getStringValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
