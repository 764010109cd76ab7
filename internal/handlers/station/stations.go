// Package station expose la surface publique des bornes : listing des
// bornes approuvées, fiche détaillée, recherche et statut live.
package station

import (
	"log"
	"net/http"

	"evcharge_back_end/internal/cache"
	"evcharge_back_end/internal/models"
	"evcharge_back_end/internal/services"
	"evcharge_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

type Handler struct {
	Store *store.Store
}

func NewHandler(st *store.Store) *Handler {
	return &Handler{Store: st}
}

// GetStations retourne les bornes approuvées, enveloppe {"stations": ...}.
// Les bornes Pending et Rejected restent invisibles du public
func (h *Handler) GetStations(c *gin.Context) {
	list, err := h.Store.ListStationsByApprovalStatus(c.Request.Context(), models.StationApproved)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving stations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stations": list})
}

// GetStation retourne la fiche d'une borne, servie depuis le cache Redis
// quand il est chaud
func (h *Handler) GetStation(c *gin.Context) {
	stationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID"})
		return
	}

	st, err := cache.GetStationFromCache(c.Request.Context(), gocql.UUID(stationUUID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Station not found"})
		return
	}
	c.JSON(http.StatusOK, st)
}

// SearchStations interroge l'index Elasticsearch (nom, adresse, ville,
// type de connecteur)
func (h *Handler) SearchStations(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing search query"})
		return
	}

	results, err := services.SearchStations(query)
	if err != nil {
		log.Printf("❌ Erreur recherche bornes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stations": results})
}
