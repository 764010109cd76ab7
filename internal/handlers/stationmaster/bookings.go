package stationmaster

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"evcharge_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ConfirmBooking confirme une réservation d'une borne de l'appelant et
// envoie le mail de confirmation avec QR de check-in
func (h *Handler) ConfirmBooking(c *gin.Context) {
	master, ok := masterID(c)
	if !ok {
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}
	id := gocql.UUID(bookingUUID)

	if err := h.Bookings.Confirm(c.Request.Context(), master, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error confirming booking", "error": err.Error()})
		return
	}

	go h.sendConfirmationEmail(id)
	c.JSON(http.StatusOK, gin.H{"message": "Booking confirmed successfully"})
}

// CancelBooking annule une réservation d'une borne de l'appelant
func (h *Handler) CancelBooking(c *gin.Context) {
	master, ok := masterID(c)
	if !ok {
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	if err := h.Bookings.Cancel(c.Request.Context(), master, gocql.UUID(bookingUUID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error cancelling booking", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}

// CompleteBooking clôt une réservation après la session de charge
func (h *Handler) CompleteBooking(c *gin.Context) {
	master, ok := masterID(c)
	if !ok {
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}
	id := gocql.UUID(bookingUUID)

	if err := h.Bookings.Complete(c.Request.Context(), master, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error(), "error": fmt.Sprintf("%T", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking completed successfully", "bookingId": id.String()})
}

// sendConfirmationEmail envoie le mail de confirmation au client, avec le
// QR de check-in en pièce jointe. Best effort, hors du chemin HTTP
func (h *Handler) sendConfirmationEmail(bookingID gocql.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	b, err := h.Store.GetBooking(ctx, bookingID)
	if err != nil {
		log.Printf("⚠️ Réservation %s introuvable pour email: %v", bookingID, err)
		return
	}
	st, err := h.Store.GetStation(ctx, b.StationID)
	if err != nil {
		log.Printf("⚠️ Borne %s introuvable pour email: %v", b.StationID, err)
		return
	}
	user, err := h.Store.GetUser(ctx, b.UserID)
	if err != nil {
		log.Printf("⚠️ Client %s introuvable pour email: %v", b.UserID, err)
		return
	}

	qr, err := utils.GenerateBookingQR(bookingID.String())
	if err != nil {
		log.Printf("⚠️ Génération QR impossible pour %s: %v", bookingID, err)
		qr = nil
	}

	html := utils.GenerateBookingConfirmationHTML(*b, *st)
	if err := utils.SendNotificationEmail(user.Email, "✅ Réservation confirmée - EVCharge", html, qr); err != nil {
		log.Printf("❌ Erreur envoi email confirmation: %v", err)
	}
}
