package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "safarpay/internal/config"
	"safarpay/internal/domain"
	h "safarpay/internal/http/handlers"
	"safarpay/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Init(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	secret := h.JWTSecret()

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		trips := api.Group("/trips")
		trips.GET("/public", h.GetPublicTrips)
		tripsAuthed := trips.Group("", middleware.RequireAuth(secret))
		tripsAuthed.POST("", middleware.RequireRole(domain.RoleOwner), h.CreateTrip)
		tripsAuthed.GET("/mine", middleware.RequireRole(domain.RoleOwner), h.GetMyTrips)
		tripsAuthed.DELETE("/:id", middleware.RequireRole(domain.RoleOwner), h.DeleteTrip)

		bookings := api.Group("/bookings", middleware.RequireAuth(secret))
		bookings.POST("/registerBooking", h.RegisterBooking)
		bookings.GET("/mine", h.GetMyBookings)
		bookings.GET("/:id/eticket", h.GetBookingETicket)

		settlements := api.Group("/settlements", middleware.RequireAuth(secret))
		settlements.GET("/owner", h.GetOwnerSettlement)
		settlements.GET("/history", h.GetSettlementHistory)
		settlements.POST("/request", h.RequestSettlement)
		settlements.GET("/:id/receipt", h.GetSettlementReceipt)

		admin := settlements.Group("", middleware.RequireRole(domain.RoleAdmin))
		admin.GET("/approvals", h.GetPendingApprovals)
		admin.POST("/approve/:id", h.ApproveSettlement)
	}

	return r
}
