// Package user expose la surface côté client : inscription, connexion,
// OAuth, profil et réservations.
package user

import (
	"log"
	"net/http"
	"strings"
	"time"

	"evcharge_back_end/internal/middleware"
	"evcharge_back_end/internal/models"
	"evcharge_back_end/internal/store"
	"evcharge_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

type Handler struct {
	Store *store.Store
}

func NewHandler(st *store.Store) *Handler {
	return &Handler{Store: st}
}

// Register crée un compte. Les rôles auto-attribuables sont limités à
// "user" et "station-master", jamais "admin"
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": err.Error()})
		return
	}

	role := models.RoleUser
	if req.Role == models.RoleStationMaster {
		role = models.RoleStationMaster
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := h.Store.GetUserByEmail(c.Request.Context(), email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating account"})
		return
	}

	u := models.User{
		ID:        gocql.TimeUUID(),
		Name:      req.Name,
		Email:     email,
		Password:  hash,
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.Store.CreateUser(c.Request.Context(), u); err != nil {
		log.Printf("❌ Erreur création compte %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating account"})
		return
	}

	token, err := utils.GenerateJWT(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating account"})
		return
	}

	log.Printf("✅ Compte créé: %s (%s)", email, role)
	c.JSON(http.StatusCreated, gin.H{
		"token":  token,
		"userId": u.ID.String(),
		"email":  u.Email,
		"name":   u.Name,
		"role":   u.Role,
	})
}

// Login authentifie par email/mot de passe. Même message pour compte
// inconnu et mot de passe erroné
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	u, err := h.Store.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		middleware.RecordFailedLogin(email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	ok, err := utils.VerifyPassword(req.Password, u.Password)
	if err != nil || !ok {
		middleware.RecordFailedLogin(email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(*u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error logging in"})
		return
	}

	middleware.ResetLoginAttempts(email)
	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": u.ID.String(),
		"email":  u.Email,
		"name":   u.Name,
		"role":   u.Role,
	})
}
