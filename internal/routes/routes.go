// Package routes câble la surface HTTP complète de l'API EVCharge.
package routes

import (
	"evcharge_back_end/internal/handlers/admin"
	"evcharge_back_end/internal/handlers/payement"
	"evcharge_back_end/internal/handlers/review"
	"evcharge_back_end/internal/handlers/station"
	"evcharge_back_end/internal/handlers/stationmaster"
	"evcharge_back_end/internal/handlers/user"
	"evcharge_back_end/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers regroupe les surfaces de l'API, injectées depuis main
type Handlers struct {
	Users         *user.Handler
	Reviews       *review.Handler
	Admin         *admin.Handler
	StationMaster *stationmaster.Handler
	Stations      *station.Handler
	Payments      *payement.Handler
}

func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:5174", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")

	// Authentification
	api.POST("/auth/register", h.Users.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), h.Users.Login)
	api.GET("/auth/me", middleware.AuthRequired(), h.Users.GetProfile)
	api.GET("/auth/:provider", h.Users.BeginAuth)
	api.GET("/auth/:provider/callback", h.Users.CallbackAuth)

	// Bornes publiques
	api.GET("/stations", h.Stations.GetStations)
	api.GET("/stations/search", h.Stations.SearchStations)
	api.GET("/stations/:id", h.Stations.GetStation)
	api.GET("/stations/:id/live", h.Stations.StationLive)

	// Avis
	api.GET("/reviews", h.Reviews.GetAllReviews)
	api.GET("/reviews/station/:stationId", h.Reviews.GetStationReviews)

	// Routes authentifiées
	auth := api.Group("")
	auth.Use(middleware.AuthRequired())
	{
		auth.POST("/reviews", h.Reviews.CreateReview)

		auth.GET("/users/profile", h.Users.GetProfile)
		auth.PUT("/users/profile", h.Users.UpdateProfile)
		auth.POST("/users/change-password", h.Users.ChangePassword)

		auth.POST("/bookings", h.Users.CreateBooking)
		auth.GET("/bookings", h.Users.GetUserBookings)
		auth.GET("/bookings/user", h.Users.GetUserBookings)
		auth.GET("/bookings/:id", h.Users.GetBooking)
		auth.DELETE("/bookings/:id", h.Users.CancelBooking)
		auth.GET("/bookings/:id/receipt", h.Users.GetBookingReceipt)

		auth.POST("/payment/create-order", h.Payments.CreateOrder)
	}

	// Webhook Stripe : signature vérifiée dans le handler, pas de JWT
	api.POST("/payment/webhook", h.Payments.StripeWebhook)

	// Surface admin
	adm := api.Group("/admin")
	adm.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adm.GET("/dashboard-stats", h.Admin.GetDashboardStats)
		adm.GET("/users", h.Admin.GetAllUsers)
		adm.GET("/bookings", h.Admin.GetAllBookings)
		adm.GET("/stations", h.Admin.GetAllStations)
		adm.GET("/stations/pending", h.Admin.GetPendingStations)
		adm.PUT("/stations/:id/approve", h.Admin.ApproveStation)
		adm.PUT("/stations/:id/reject", h.Admin.RejectStation)
		adm.GET("/reviews", h.Admin.GetAllReviews)
	}

	// Stub conservé pour compatibilité frontend
	api.GET("/reviews/admin", middleware.AuthRequired(), middleware.RequireAdmin, h.Reviews.GetAdminReviews)

	// Surface station master
	sm := api.Group("/station-master")
	sm.Use(middleware.AuthRequired(), middleware.RequireStationMaster)
	{
		sm.GET("/test", h.StationMaster.Test)
		sm.GET("/stations", h.StationMaster.GetMyStations)
		sm.POST("/stations", h.StationMaster.CreateStation)
		sm.PUT("/stations/:id", h.StationMaster.UpdateStation)
		sm.PUT("/stations/:id/status", h.StationMaster.UpdateStationStatus)
		sm.POST("/stations/:id/photo", h.StationMaster.UploadStationPhoto)
		sm.GET("/stations/:id/bookings", h.StationMaster.GetStationBookings)
		sm.GET("/stations/:id/reviews", h.StationMaster.GetStationReviews)
		sm.GET("/reviews", h.StationMaster.GetMyStationReviews)
		sm.PUT("/bookings/:id/confirm", h.StationMaster.ConfirmBooking)
		sm.PUT("/bookings/:id/cancel", h.StationMaster.CancelBooking)
		sm.PUT("/bookings/:id/complete", h.StationMaster.CompleteBooking)
	}
}
