// Package admin expose la surface d'administration : statistiques,
// collections globales et cycle d'approbation des bornes.
package admin

import (
	"log"
	"net/http"

	"evcharge_back_end/internal/models"
	"evcharge_back_end/internal/reviews"
	"evcharge_back_end/internal/stations"
	"evcharge_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Store    *store.Store
	Workflow *stations.Workflow
	Reviews  *reviews.Service
}

func NewHandler(st *store.Store, wf *stations.Workflow, svc *reviews.Service) *Handler {
	return &Handler{Store: st, Workflow: wf, Reviews: svc}
}

// GetDashboardStats agrège les compteurs du tableau de bord admin
func (h *Handler) GetDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.Store.ListUsers(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing stats"})
		return
	}
	allStations, err := h.Store.ListStations(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing stats"})
		return
	}
	bookings, err := h.Store.ListBookings(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing stats"})
		return
	}

	activeBookings := 0
	revenue := 0.0
	for _, b := range bookings {
		if b.Status == models.BookingConfirmed {
			activeBookings++
		}
		if b.Status == models.BookingCompleted {
			revenue += b.Amount
		}
	}

	c.JSON(http.StatusOK, gin.H{"stats": gin.H{
		"totalUsers":     len(users),
		"totalStations":  len(allStations),
		"totalBookings":  len(bookings),
		"activeBookings": activeBookings,
		"revenue":        revenue,
	}})
}

// GetAllUsers retourne tous les utilisateurs, enveloppe {"users": ...}
func (h *Handler) GetAllUsers(c *gin.Context) {
	users, err := h.Store.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetAllBookings retourne toutes les réservations, enveloppe {"bookings": ...}
func (h *Handler) GetAllBookings(c *gin.Context) {
	bookings, err := h.Store.ListBookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetAllStations retourne toutes les bornes, enveloppe {"stations": ...}
func (h *Handler) GetAllStations(c *gin.Context) {
	list, err := h.Store.ListStations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving stations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stations": list})
}

// GetPendingStations retourne les bornes en attente d'approbation
func (h *Handler) GetPendingStations(c *gin.Context) {
	list, err := h.Workflow.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving stations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stations": list})
}

// GetAllReviews est l'équivalent admin du listing global : mêmes données,
// même politique "avaler et vider", tableau nu
func (h *Handler) GetAllReviews(c *gin.Context) {
	views, err := h.Reviews.ListAll(c.Request.Context())
	if err != nil {
		log.Printf("❌ Erreur listing avis admin: %v", err)
		c.JSON(http.StatusOK, []reviews.View{})
		return
	}
	c.JSON(http.StatusOK, views)
}
