package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"evcharge_back_end/internal/cache"
	"evcharge_back_end/internal/models"
	"evcharge_back_end/internal/services"
	"evcharge_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ApproveStation passe une borne Pending → Approved. Une borne inconnue
// fait échouer la mise à jour : 400 avec le message d'origine
func (h *Handler) ApproveStation(c *gin.Context) {
	stationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID"})
		return
	}
	id := gocql.UUID(stationUUID)

	if err := h.Workflow.Approve(c.Request.Context(), id); err != nil {
		utils.LogFailedAction(c, "approve", "station", id.String(), err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to approve station: " + err.Error()})
		return
	}

	utils.LogAction(c, "approve", "station", id.String(), models.StationPending, models.StationApproved)
	cache.InvalidateStation(c.Request.Context(), id)
	go h.notifyDecision(id, true)

	c.JSON(http.StatusOK, gin.H{"message": "Station approved successfully"})
}

// RejectStation passe une borne Pending → Rejected
func (h *Handler) RejectStation(c *gin.Context) {
	stationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID"})
		return
	}
	id := gocql.UUID(stationUUID)

	if err := h.Workflow.Reject(c.Request.Context(), id); err != nil {
		utils.LogFailedAction(c, "reject", "station", id.String(), err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to reject station: " + err.Error()})
		return
	}

	utils.LogAction(c, "reject", "station", id.String(), models.StationPending, models.StationRejected)
	cache.InvalidateStation(c.Request.Context(), id)
	go h.notifyDecision(id, false)

	c.JSON(http.StatusOK, gin.H{"message": "Station rejected successfully"})
}

// notifyDecision pousse les effets de bord d'une décision : index de
// recherche et email au propriétaire. Best effort, hors du chemin HTTP
func (h *Handler) notifyDecision(id gocql.UUID, approved bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := h.Store.GetStation(ctx, id)
	if err != nil {
		log.Printf("⚠️ Borne %s introuvable pour notification: %v", id, err)
		return
	}

	if approved {
		services.IndexStation(*st)
	} else {
		services.RemoveStationFromIndex(id.String())
	}

	owner, err := h.Store.GetUser(ctx, st.OwnerID)
	if err != nil {
		log.Printf("⚠️ Propriétaire de la borne %s introuvable: %v", id, err)
		return
	}

	subject := "❌ Votre borne a été refusée - EVCharge"
	if approved {
		subject = "✅ Votre borne est en ligne - EVCharge"
	}
	html := utils.GenerateStationDecisionHTML(*st, approved)
	if err := utils.SendNotificationEmail(owner.Email, subject, html, nil); err != nil {
		log.Printf("❌ Erreur envoi email décision borne: %v", err)
	}
}
