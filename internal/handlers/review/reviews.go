// Package review expose la surface publique des avis : listing global,
// avis d'une borne, création, plus le stub admin historique.
package review

import (
	"log"
	"net/http"

	"evcharge_back_end/internal/models"
	"evcharge_back_end/internal/reviews"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

type Handler struct {
	Reviews *reviews.Service
}

func NewHandler(svc *reviews.Service) *Handler {
	return &Handler{Reviews: svc}
}

// GetAllReviews retourne tous les avis aplatis, note croissante.
// Politique "avaler et vider" : toute erreur de lecture donne un 200
// avec liste vide, jamais un statut d'erreur
func (h *Handler) GetAllReviews(c *gin.Context) {
	views, err := h.Reviews.ListAll(c.Request.Context())
	if err != nil {
		log.Printf("❌ Erreur listing avis: %v", err)
		c.JSON(http.StatusOK, []reviews.View{})
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetStationReviews retourne les avis d'une borne. Une borne inconnue
// donne une liste vide, pas une erreur
func (h *Handler) GetStationReviews(c *gin.Context) {
	stationUUID, err := uuid.Parse(c.Param("stationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID"})
		return
	}

	list, err := h.Reviews.ListByStation(c.Request.Context(), gocql.UUID(stationUUID))
	if err != nil {
		log.Printf("❌ Erreur listing avis borne %s: %v", stationUUID, err)
		c.JSON(http.StatusOK, []models.Review{})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetAdminReviews est un stub conservé pour compatibilité : le frontend
// admin consomme /api/admin/reviews, celui-ci renvoie toujours une liste
// vide
func (h *Handler) GetAdminReviews(c *gin.Context) {
	c.JSON(http.StatusOK, []reviews.View{})
}

// CreateReview crée un avis sur une borne. La note est bornée 1-5 par le
// binding, avant toute écriture
func (h *Handler) CreateReview(c *gin.Context) {
	userUUID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user identity"})
		return
	}

	var req struct {
		StationID string `json:"stationId" binding:"required"`
		Rating    int    `json:"rating" binding:"required,min=1,max=5"`
		Comment   string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": err.Error()})
		return
	}

	stationUUID, err := uuid.Parse(req.StationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID"})
		return
	}

	r, err := h.Reviews.Create(c.Request.Context(), gocql.UUID(userUUID), gocql.UUID(stationUUID), req.Rating, req.Comment)
	if err != nil {
		log.Printf("❌ Erreur création avis: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating review"})
		return
	}

	log.Printf("⭐ Avis créé: %s pour borne %s (note: %d/5)", r.ID, req.StationID, req.Rating)
	c.JSON(http.StatusOK, gin.H{"message": "Review created successfully"})
}
