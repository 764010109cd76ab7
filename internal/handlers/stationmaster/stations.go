// Package stationmaster expose la surface du station master : gestion de
// ses bornes, de leurs réservations et de leurs avis.
package stationmaster

import (
	"log"
	"net/http"
	"time"

	"evcharge_back_end/internal/bookings"
	"evcharge_back_end/internal/cache"
	"evcharge_back_end/internal/database"
	"evcharge_back_end/internal/models"
	"evcharge_back_end/internal/reviews"
	"evcharge_back_end/internal/services"
	"evcharge_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

type Handler struct {
	Store    *store.Store
	Reviews  *reviews.Service
	Bookings *bookings.Workflow
}

func NewHandler(st *store.Store, svc *reviews.Service, wf *bookings.Workflow) *Handler {
	return &Handler{Store: st, Reviews: svc, Bookings: wf}
}

// masterID extrait l'identité du station master posée par le middleware JWT
func masterID(c *gin.Context) (gocql.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user identity"})
		return gocql.UUID{}, false
	}
	return gocql.UUID(id), true
}

// ownedStation charge une borne et vérifie qu'elle appartient bien à
// l'appelant. Toute défaillance donne le même 404, sans distinguer
// "inexistante" de "pas à vous"
func (h *Handler) ownedStation(c *gin.Context, master gocql.UUID) (*models.Station, bool) {
	stationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Station not found or not owned by you"})
		return nil, false
	}

	st, err := h.Store.GetStation(c.Request.Context(), gocql.UUID(stationUUID))
	if err != nil || st.OwnerID != master {
		c.JSON(http.StatusNotFound, gin.H{"message": "Station not found or not owned by you"})
		return nil, false
	}
	return st, true
}

// GetMyStations retourne les bornes de l'appelant, tableau nu
func (h *Handler) GetMyStations(c *gin.Context) {
	master, ok := masterID(c)
	if !ok {
		return
	}

	list, err := h.Store.ListStationsByOwner(c.Request.Context(), master)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving stations", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateStation enregistre une nouvelle borne en attente d'approbation
func (h *Handler) CreateStation(c *gin.Context) {
	master, ok := masterID(c)
	if !ok {
		return
	}

	var req struct {
		Name          string  `json:"name" binding:"required"`
		Address       string  `json:"address" binding:"required"`
		City          string  `json:"city"`
		Latitude      float64 `json:"latitude"`
		Longitude     float64 `json:"longitude"`
		ConnectorType string  `json:"connectorType"`
		PowerKW       float64 `json:"powerKw"`
		PricePerHour  float64 `json:"pricePerHour" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": err.Error()})
		return
	}

	st := models.Station{
		ID:             gocql.TimeUUID(),
		Name:           req.Name,
		Address:        req.Address,
		City:           req.City,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		OwnerID:        master,
		ConnectorType:  req.ConnectorType,
		PowerKW:        req.PowerKW,
		PricePerHour:   req.PricePerHour,
		ApprovalStatus: models.StationPending,
		Status:         "Active",
		CreatedAt:      time.Now(),
	}

	if err := h.Store.CreateStation(c.Request.Context(), st); err != nil {
		log.Printf("❌ Erreur création borne: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating station"})
		return
	}

	log.Printf("🔌 Borne créée: %s (%s), en attente d'approbation", st.Name, st.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Station created successfully, pending approval", "station": st})
}

// UpdateStation modifie les champs éditables d'une borne de l'appelant
func (h *Handler) UpdateStation(c *gin.Context) {
	master, ok := masterID(c)
	if !ok {
		return
	}
	st, ok := h.ownedStation(c, master)
	if !ok {
		return
	}

	var req struct {
		Name          string  `json:"name"`
		Address       string  `json:"address"`
		City          string  `json:"city"`
		Latitude      float64 `json:"latitude"`
		Longitude     float64 `json:"longitude"`
		ConnectorType string  `json:"connectorType"`
		PowerKW       float64 `json:"powerKw"`
		PricePerHour  float64 `json:"pricePerHour"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": err.Error()})
		return
	}

	if req.Name != "" {
		st.Name = req.Name
	}
	if req.Address != "" {
		st.Address = req.Address
	}
	if req.City != "" {
		st.City = req.City
	}
	if req.Latitude != 0 {
		st.Latitude = req.Latitude
	}
	if req.Longitude != 0 {
		st.Longitude = req.Longitude
	}
	if req.ConnectorType != "" {
		st.ConnectorType = req.ConnectorType
	}
	if req.PowerKW != 0 {
		st.PowerKW = req.PowerKW
	}
	if req.PricePerHour != 0 {
		st.PricePerHour = req.PricePerHour
	}

	if err := h.Store.UpdateStation(c.Request.Context(), *st); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating station", "error": err.Error()})
		return
	}

	cache.InvalidateStation(c.Request.Context(), st.ID)
	if st.ApprovalStatus == models.StationApproved {
		go services.IndexStation(*st)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Station updated successfully", "station": st})
}

// UpdateStationStatus change le statut opérationnel d'une borne et le
// diffuse aux clients WebSocket via Redis pub/sub
func (h *Handler) UpdateStationStatus(c *gin.Context) {
	master, ok := masterID(c)
	if !ok {
		return
	}
	st, ok := h.ownedStation(c, master)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": err.Error()})
		return
	}

	if err := h.Store.UpdateStationStatus(c.Request.Context(), st.ID, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating station status", "error": err.Error()})
		return
	}

	cache.InvalidateStation(c.Request.Context(), st.ID)
	if err := database.Redis.Publish(c.Request.Context(), "station:"+st.ID.String(), req.Status).Err(); err != nil {
		log.Printf("⚠️ Publication statut borne %s impossible: %v", st.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Station status updated successfully", "status": req.Status})
}

// UploadStationPhoto stocke la photo dans MinIO et mémorise le chemin objet
func (h *Handler) UploadStationPhoto(c *gin.Context) {
	master, ok := masterID(c)
	if !ok {
		return
	}
	st, ok := h.ownedStation(c, master)
	if !ok {
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photo provided"})
		return
	}

	objectPath, err := services.UploadStationPhoto(c.Request.Context(), st.ID.String(), file)
	if err != nil {
		log.Printf("❌ Erreur upload photo borne %s: %v", st.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading photo"})
		return
	}

	if err := h.Store.UpdateStationPhoto(c.Request.Context(), st.ID, objectPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving photo"})
		return
	}
	cache.InvalidateStation(c.Request.Context(), st.ID)

	signedURL, err := services.GenerateSignedURL(c.Request.Context(), objectPath, 24*time.Hour)
	if err != nil {
		log.Printf("⚠️ URL signée indisponible pour %s: %v", objectPath, err)
	}

	log.Printf("📤 Photo enregistrée pour la borne %s: %s", st.ID, objectPath)
	c.JSON(http.StatusOK, gin.H{"message": "Photo uploaded successfully", "photoUrl": signedURL})
}

// GetStationBookings retourne les réservations d'une borne de l'appelant
func (h *Handler) GetStationBookings(c *gin.Context) {
	master, ok := masterID(c)
	if !ok {
		return
	}
	st, ok := h.ownedStation(c, master)
	if !ok {
		return
	}

	list, err := h.Store.ListStationBookings(c.Request.Context(), st.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving bookings", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// Test permet de vérifier que la surface station master répond
func (h *Handler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Station Master API is working"})
}
