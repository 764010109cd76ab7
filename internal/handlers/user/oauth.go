package user

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"evcharge_back_end/internal/models"
	"evcharge_back_end/internal/store"
	"evcharge_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/markbates/goth/gothic"
)

type ctxKey string

const ProviderKey ctxKey = "provider"

// BeginAuth démarre le flux OAuth (Google, Facebook)
func (h *Handler) BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CallbackAuth termine le flux OAuth : l'utilisateur est retrouvé par
// email ou créé à la volée avec le rôle "user", puis reçoit un JWT
func (h *Handler) CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(gothUser.Email)
	u, err := h.Store.GetUserByEmail(c.Request.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		u = &models.User{
			ID:         gocql.TimeUUID(),
			Name:       gothUser.Name,
			Email:      email,
			Role:       models.RoleUser,
			Provider:   provider,
			ProviderID: gothUser.UserID,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := h.Store.CreateUser(c.Request.Context(), *u); err != nil {
			log.Printf("❌ Erreur création compte OAuth %s: %v", email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating account"})
			return
		}
		log.Printf("✅ Compte OAuth créé: %s via %s", email, provider)
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error logging in"})
		return
	}

	token, err := utils.GenerateJWT(*u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error logging in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"userId":   u.ID.String(),
		"email":    u.Email,
		"name":     u.Name,
		"role":     u.Role,
		"provider": u.Provider,
	})
}
