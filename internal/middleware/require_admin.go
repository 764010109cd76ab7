package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"evcharge_back_end/internal/models"
)

// RequireAdmin vérifie que l'utilisateur a le rôle "admin".
// Le refus arrive avant tout accès aux données
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		c.Abort()
		return
	}
	c.Next()
}
