package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"evcharge_back_end/internal/models"
)

// RequireStationMaster vérifie que l'utilisateur a le rôle "station-master"
func RequireStationMaster(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != models.RoleStationMaster {
		c.JSON(http.StatusForbidden, gin.H{"error": "Station master access required"})
		c.Abort()
		return
	}
	c.Next()
}
