package stationmaster

import (
	"log"
	"net/http"

	"evcharge_back_end/internal/reviews"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// GetStationReviews retourne les avis d'une borne de l'appelant. La
// propriété est vérifiée avant toute lecture : borne inconnue ou borne
// d'un autre propriétaire donnent le même 404
func (h *Handler) GetStationReviews(c *gin.Context) {
	master, ok := masterID(c)
	if !ok {
		return
	}

	stationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Station not found or not owned by you"})
		return
	}

	list, err := h.Reviews.ListForStation(c.Request.Context(), master, gocql.UUID(stationUUID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Station not found or not owned by you"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetMyStationReviews agrège les avis de toutes les bornes de l'appelant,
// aplatis et triés par note croissante. Politique "avaler et vider" sur
// toute erreur de lecture
func (h *Handler) GetMyStationReviews(c *gin.Context) {
	master, ok := masterID(c)
	if !ok {
		return
	}

	views, err := h.Reviews.ListForMaster(c.Request.Context(), master)
	if err != nil {
		log.Printf("❌ Erreur listing avis station master %s: %v", master, err)
		c.JSON(http.StatusOK, []reviews.View{})
		return
	}
	c.JSON(http.StatusOK, views)
}
