package user

import (
	"log"
	"net/http"
	"os"
	"time"

	"evcharge_back_end/internal/cache"
	"evcharge_back_end/internal/models"
	"evcharge_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// CreateBooking réserve un créneau sur une borne approuvée. Le montant est
// calculé côté serveur : heures × tarif horaire de la borne
func (h *Handler) CreateBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req struct {
		StationID string    `json:"stationId" binding:"required"`
		StartTime time.Time `json:"startTime" binding:"required"`
		Hours     int       `json:"hours" binding:"required,min=1"`
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

	st, err := cache.GetStationFromCache(c.Request.Context(), gocql.UUID(stationUUID))
	if err != nil || st.ApprovalStatus != models.StationApproved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Station not available for booking"})
		return
	}

	b := models.Booking{
		ID:        gocql.TimeUUID(),
		StationID: st.ID,
		UserID:    userID,
		Status:    models.BookingPending,
		StartTime: req.StartTime,
		Hours:     req.Hours,
		Amount:    float64(req.Hours) * st.PricePerHour,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.Store.CreateBooking(c.Request.Context(), b); err != nil {
		log.Printf("❌ Erreur création réservation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating booking"})
		return
	}

	log.Printf("✅ Réservation créée: %s sur borne %s (%.2f€)", b.ID, st.Name, b.Amount)
	c.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully", "booking": b})
}

// GetUserBookings retourne les réservations de l'appelant, tableau nu
func (h *Handler) GetUserBookings(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	list, err := h.Store.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving bookings", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetBooking retourne une réservation, visible par son auteur ou un admin
func (h *Handler) GetBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	b, err := h.Store.GetBooking(c.Request.Context(), gocql.UUID(bookingUUID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		return
	}
	if b.UserID != userID && c.GetString("role") != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking annule une réservation de l'appelant
func (h *Handler) CancelBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}
	id := gocql.UUID(bookingUUID)

	b, err := h.Store.GetBooking(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		return
	}
	if b.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := h.Store.UpdateBookingStatus(c.Request.Context(), id, models.BookingCancelled); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error cancelling booking", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}

// GetBookingReceipt rend le reçu PDF d'une réservation de l'appelant.
// Le QR de check-in est injecté dans la page frontend avant impression
func (h *Handler) GetBookingReceipt(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}
	id := gocql.UUID(bookingUUID)

	b, err := h.Store.GetBooking(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		return
	}
	if b.UserID != userID && c.GetString("role") != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	qr, err := utils.GenerateBookingQR(id.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating receipt"})
		return
	}

	frontendURL := os.Getenv("FRONTEND_RECEIPT_URL")
	pdf, err := utils.RenderBookingReceiptPDF(frontendURL, id.String(), utils.QRBase64(qr))
	if err != nil {
		log.Printf("❌ Erreur génération PDF reçu %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating receipt"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=receipt-"+id.String()+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}
