package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// L'entrée d'audit doit être un instantané autonome : identité, IP et
// valeurs sont copiées depuis le contexte avant l'écriture asynchrone
func TestBuildAuditLogCopiesRequestIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/admin/stations/s-1/approve", nil)
	c.Request.RemoteAddr = "203.0.113.7:4242"
	c.Set("user_id", "admin-1")
	c.Set("email", "admin@evcharge.app")

	entry := buildAuditLog(c, "approve", "station", "s-1", "Pending", "Approved", true, "")

	assert.Equal(t, "admin-1", entry.UserID)
	assert.Equal(t, "admin@evcharge.app", entry.UserEmail)
	assert.Equal(t, "203.0.113.7", entry.IP)
	assert.Equal(t, "approve", entry.Action)
	assert.Equal(t, "station", entry.Resource)
	assert.Equal(t, "s-1", entry.ResourceID)
	assert.Equal(t, `"Pending"`, entry.OldValue)
	assert.Equal(t, `"Approved"`, entry.NewValue)
	assert.True(t, entry.Success)
	assert.NotZero(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestBuildAuditLogFailedAction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/admin/stations/s-2/reject", nil)
	c.Set("user_id", "admin-1")

	entry := buildAuditLog(c, "reject", "station", "s-2", nil, nil, false, "borne introuvable")

	assert.False(t, entry.Success)
	assert.Equal(t, "borne introuvable", entry.Error)
	assert.Empty(t, entry.OldValue)
	assert.Empty(t, entry.NewValue)
	assert.Empty(t, entry.UserEmail)
}
