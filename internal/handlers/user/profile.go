package user

import (
	"net/http"

	"evcharge_back_end/internal/cache"
	"evcharge_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// callerID extrait l'identité posée par le middleware JWT
func callerID(c *gin.Context) (gocql.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user identity"})
		return gocql.UUID{}, false
	}
	return gocql.UUID(id), true
}

// GetProfile retourne le profil de l'appelant, servi depuis le cache
func (h *Handler) GetProfile(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	u, err := cache.GetUserFromCache(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfile modifie le nom affiché de l'appelant
func (h *Handler) UpdateProfile(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": err.Error()})
		return
	}

	if err := h.Store.UpdateUserProfile(c.Request.Context(), id, req.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating profile"})
		return
	}

	cache.InvalidateUser(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// ChangePassword remplace le mot de passe après vérification de l'ancien
func (h *Handler) ChangePassword(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": err.Error()})
		return
	}

	u, err := h.Store.GetUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	valid, err := utils.VerifyPassword(req.CurrentPassword, u.Password)
	if err != nil || !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error changing password"})
		return
	}
	if err := h.Store.UpdateUserPassword(c.Request.Context(), id, hash); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error changing password"})
		return
	}

	cache.InvalidateUser(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
